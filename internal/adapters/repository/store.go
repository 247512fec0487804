// Package repository persists the wine collection. Every backend stores
// whole snapshots: callers read the full list and hand back a full
// replacement, never a partial update.
package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/okian/winedex/internal/domain/types"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

const dataDirPerm = 0o750

// Store provides whole-collection access to the persisted wines.
type Store interface {
	// Load returns the full collection ordered by id. An empty store
	// yields an empty, non-nil slice.
	Load(ctx context.Context) ([]types.Wine, error)

	// Replace atomically swaps the stored collection for wines.
	// Returns ErrDuplicateID when two wines share an id.
	Replace(ctx context.Context, wines []types.Wine) error

	// Clear removes every wine.
	Clear(ctx context.Context) error

	// Backend names the implementation, e.g. "sqlite".
	Backend() string

	Close() error
}

// Open returns the backend named by backend. File-based backends keep
// their data under dataDir, which is created if missing.
func Open(ctx context.Context, backend, dataDir string, opts ...Option) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendMemory:
		return NewMemoryStore(opts...), nil
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(ctx, filepath.Join(dataDir, "winedex.db"), opts...)
	case BackendBadger:
		if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenBadger(filepath.Join(dataDir, "badger"), opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// snapshot deep-copies wines sorted by id and rejects duplicate ids.
func snapshot(wines []types.Wine) ([]types.Wine, error) {
	out := make([]types.Wine, len(wines))
	for i, w := range wines {
		out[i] = w.Clone()
	}
	slices.SortStableFunc(out, func(a, b types.Wine) int { return a.ID - b.ID })
	for i := 1; i < len(out); i++ {
		if out[i].ID == out[i-1].ID {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, out[i].ID)
		}
	}
	return out, nil
}

// Find returns the wine with id from wines.
func Find(wines []types.Wine, id int) (types.Wine, error) {
	for _, w := range wines {
		if w.ID == id {
			return w, nil
		}
	}
	return types.Wine{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}
