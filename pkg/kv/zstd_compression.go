package kv

import (
	"github.com/DataDog/zstd"
)

// values stored in the kv are zstd frames at the default level.

func compress(bb []byte) ([]byte, error) {
	return zstd.CompressLevel(nil, bb, zstd.DefaultCompression)
}

func decompress(bbCompressed []byte) ([]byte, error) {
	return zstd.Decompress(nil, bbCompressed)
}
