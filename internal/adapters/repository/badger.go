package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/pkg/logger"
	"github.com/okian/winedex/pkg/metrics"
)

// collectionKey holds the whole collection as one JSON array.
var collectionKey = []byte("winedex:collection")

// BadgerStore keeps the collection as a single value, so every write is
// one atomic key update.
type BadgerStore struct {
	db     *badger.DB
	logger logger.Logger
	closed atomic.Bool
}

// OpenBadger opens (or creates) a badger database in dir.
func OpenBadger(dir string, opts ...Option) (*BadgerStore, error) {
	bopts := badger.DefaultOptions(dir)
	bopts.Logger = nil
	bopts.SyncWrites = true
	bopts.CompactL0OnClose = true

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := &BadgerStore{db: db, logger: newSettings(opts).logger}
	s.logger.Info(context.Background(), "badger store opened", logger.String("path", dir))
	return s, nil
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return BackendBadger }

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context) (wines []types.Wine, err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendBadger, "load", start, err) }(time.Now())
	if s.closed.Load() {
		return nil, ErrClosed
	}

	wines = []types.Wine{}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(collectionKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &wines)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return wines, nil
}

// Replace implements Store.
func (s *BadgerStore) Replace(ctx context.Context, wines []types.Wine) (err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendBadger, "replace", start, err) }(time.Now())
	if s.closed.Load() {
		return ErrClosed
	}
	next, err := snapshot(wines)
	if err != nil {
		return err
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	if err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(collectionKey, data)
	}); err != nil {
		return fmt.Errorf("store collection: %w", err)
	}
	s.logger.Debug(ctx, "collection replaced", logger.Int("wines", len(next)))
	return nil
}

// Clear implements Store. It drops the key rather than writing an empty list.
func (s *BadgerStore) Clear(ctx context.Context) (err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendBadger, "clear", start, err) }(time.Now())
	if s.closed.Load() {
		return ErrClosed
	}
	if err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(collectionKey)
	}); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	s.logger.Info(ctx, "collection cleared")
	return nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
