package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/winedex/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	stores := map[string]Store{}
	for _, backend := range []string{BackendMemory, BackendSQLite, BackendBadger} {
		s, err := Open(ctx, backend, t.TempDir())
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = s.Close() })
		stores[backend] = s
	}
	return stores
}

func TestStore_EmptyLoad(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			wines, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, wines)
			assert.Empty(t, wines)
			assert.Equal(t, name, s.Backend())
		})
	}
}

func TestStore_ReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			sample := SampleWines()
			// Out of id order on purpose.
			input := []types.Wine{sample[2], sample[0], sample[1]}
			require.NoError(t, s.Replace(ctx, input))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})
			assert.Equal(t, sample[0].Name, got[0].Name)
			require.NotNil(t, got[0].Palate)
			assert.Equal(t, types.BodyFull, got[0].Palate.Body)
			assert.True(t, got[0].DateAdded.Equal(sample[0].DateAdded))

			// Whole-list replacement drops wines not in the new list.
			require.NoError(t, s.Replace(ctx, []types.Wine{sample[4]}))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 5, got[0].ID)
		})
	}
}

func TestStore_ReplaceRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			sample := SampleWines()
			require.NoError(t, s.Replace(ctx, sample[:2]))

			dup := []types.Wine{sample[0], sample[0]}
			err := s.Replace(ctx, dup)
			assert.True(t, errors.Is(err, ErrDuplicateID))

			// The previous snapshot survives a rejected write.
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 2)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Replace(ctx, SampleWines()))
			require.NoError(t, s.Clear(ctx))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Close())
			require.NoError(t, s.Close())

			_, err := s.Load(ctx)
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.Replace(ctx, nil), ErrClosed)
		})
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	sample := SampleWines()
	require.NoError(t, s.Replace(ctx, sample))

	sample[0].Name = "changed after write"
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Château Margaux", got[0].Name)

	got[0].Palate.Body = types.BodyLight
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.BodyFull, again[0].Palate.Body)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "postgres", t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestFind(t *testing.T) {
	wines := SampleWines()
	w, err := Find(wines, 3)
	require.NoError(t, err)
	assert.Equal(t, "Riesling", w.Grape)

	_, err = Find(wines, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
