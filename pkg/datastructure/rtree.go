package datastructure

import (
	"github.com/dhconnelly/rtreego"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	rtreeTolerance   = 1e-7
)

type rtreeVertex struct {
	id  Index
	loc rtreego.Point
}

func (v *rtreeVertex) Bounds() rtreego.Rect {
	return v.loc.ToRect(rtreeTolerance)
}

// VertexIndex answers nearest vertex queries over a built shadow graph.
type VertexIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewVertexIndex bulk loads vertices into an rtree. Helper vertices are only
// indexed when withHelpers is set.
func NewVertexIndex(vertices []Vertex, withHelpers bool) *VertexIndex {
	items := make([]rtreego.Spatial, 0, len(vertices))
	for _, v := range vertices {
		if v.Helper && !withHelpers {
			continue
		}
		items = append(items, &rtreeVertex{id: v.ID, loc: rtreego.Point{v.Lat, v.Lon}})
	}
	return &VertexIndex{
		tree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, items...),
		size: len(items),
	}
}

func (vi *VertexIndex) Len() int {
	return vi.size
}

// Nearest returns up to k vertex ids ordered by increasing distance to (lat, lon).
func (vi *VertexIndex) Nearest(lat, lon float64, k int) []Index {
	if k <= 0 || vi.size == 0 {
		return []Index{}
	}
	found := vi.tree.NearestNeighbors(k, rtreego.Point{lat, lon})
	ids := make([]Index, 0, len(found))
	for _, s := range found {
		if s == nil {
			continue
		}
		ids = append(ids, s.(*rtreeVertex).id)
	}
	return ids
}
