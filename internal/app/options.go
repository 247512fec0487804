package service

import (
	"time"

	"github.com/okian/winedex/internal/adapters/repository"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the collection store. Start opens an in-memory store
// when none is given.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClassifier sets the classifier used for cards and stored rarity.
func WithClassifier(c *classify.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeedSampleData seeds the sample collection on Start when the store
// is empty.
func WithSeedSampleData(seed bool) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithClock sets the clock used to stamp dateAdded.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSystemMetrics toggles the background runtime metrics collector.
func WithSystemMetrics(enabled bool) Option {
	return func(s *Service) {
		s.systemMetrics = enabled
	}
}
