package kv

import (
	"context"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"
)

type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(path string) (*PebbleStore, error) {
	opts := &pebble.Options{}
	if path == "" {
		opts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, errors.Wrap(err, "can't open pebble db")
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *PebbleStore) Set(key, val []byte) error {
	return s.db.Set(key, val, pebble.Sync)
}

func (s *PebbleStore) WriteBatch(ctx context.Context, entries []Entry) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := batch.Set(e.Key, e.Value, nil); err != nil {
			return errors.Wrap(err, "can't add entry to pebble batch")
		}
	}
	return errors.Wrap(batch.Commit(pebble.Sync), "can't commit pebble batch")
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
