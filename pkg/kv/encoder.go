package kv

import (
	"github.com/kelindar/binary"
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
)

// KVEdge is the h3 index entry of a real shadow graph edge.
type KVEdge struct {
	EdgeID    datastructure.Index
	From      datastructure.Index
	To        datastructure.Index
	WayID     int64
	CenterLoc [2]float64 // [lat, lon]
}

func encodeEdges(sw []KVEdge) ([]byte, error) {
	bb, err := binary.Marshal(sw)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func loadEdges(bbCompressed []byte) ([]KVEdge, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var sw []KVEdge
	err = binary.Unmarshal(bb, &sw)
	return sw, err
}

func encodeMeta(meta SnapshotMeta) ([]byte, error) {
	return binary.Marshal(meta)
}

func decodeMeta(bb []byte) (SnapshotMeta, error) {
	var meta SnapshotMeta
	err := binary.Unmarshal(bb, &meta)
	return meta, err
}
