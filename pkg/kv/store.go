package kv

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("key not found")

type Entry struct {
	Key   []byte
	Value []byte
}

// Store is the key value backend graph snapshots and the h3 edge index are
// written to.
type Store interface {
	Get(key []byte) ([]byte, error)
	Set(key, val []byte) error
	WriteBatch(ctx context.Context, entries []Entry) error
	Close() error
}

type Backend string

const (
	BackendBadger Backend = "badger"
	BackendPebble Backend = "pebble"
)

// Open opens the store at path. An empty path keeps everything in memory.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendBadger:
		return NewBadgerStore(path)
	case BackendPebble:
		return NewPebbleStore(path)
	}
	return nil, fmt.Errorf("unknown kv backend %q", backend)
}
