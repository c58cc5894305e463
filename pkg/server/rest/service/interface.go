package service

import (
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/kv"
)

type Graph interface {
	GetVertex(id datastructure.Index) (datastructure.Vertex, error)
	GetEdge(id datastructure.Index) (datastructure.Edge, error)
	ForOutEdgesOf(v datastructure.Index, handle func(e datastructure.Edge))
	ForInEdgesOf(v datastructure.Index, handle func(e datastructure.Edge))
	Metadata() datastructure.Metadata
	StronglyConnectedComponents() datastructure.Components
}

type VertexIndex interface {
	Nearest(lat, lon float64, k int) []datastructure.Index
}

type KVDB interface {
	GetEdgesWithinRadius(lat, lon, radiusMeters float64) ([]kv.KVEdge, error)
}
