package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/pkg/logger"
	"github.com/okian/winedex/pkg/metrics"
)

// MemoryStore keeps the collection in process. Readers load an immutable
// snapshot; writers publish a new one.
type MemoryStore struct {
	current atomic.Pointer[[]types.Wine]
	closed  atomic.Bool
	logger  logger.Logger
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{logger: newSettings(opts).logger}
	empty := []types.Wine{}
	s.current.Store(&empty)
	return s
}

// Backend implements Store.
func (s *MemoryStore) Backend() string { return BackendMemory }

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (wines []types.Wine, err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendMemory, "load", start, err) }(time.Now())
	if s.closed.Load() {
		return nil, ErrClosed
	}
	return snapshot(*s.current.Load())
}

// Replace implements Store.
func (s *MemoryStore) Replace(ctx context.Context, wines []types.Wine) (err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendMemory, "replace", start, err) }(time.Now())
	if s.closed.Load() {
		return ErrClosed
	}
	next, err := snapshot(wines)
	if err != nil {
		return err
	}
	s.current.Store(&next)
	s.logger.Debug(ctx, "collection replaced", logger.Int("wines", len(next)))
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Replace(ctx, nil)
}

// Close implements Store. Later calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}
