package repository

import "github.com/okian/winedex/pkg/logger"

// Option applies a configuration option to a store backend.
type Option func(*settings)

type settings struct {
	logger logger.Logger
}

func newSettings(opts []Option) settings {
	s := settings{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger used by the backend.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
