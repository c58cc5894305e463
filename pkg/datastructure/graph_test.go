package datastructure_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSquare(t *testing.T) *datastructure.ShadowGraph {
	g := datastructure.NewShadowGraph()
	a, _ := g.EnsureVertex(1, datastructure.NewCoordinate(0, 0))
	b, _ := g.EnsureVertex(2, datastructure.NewCoordinate(0, 1))
	c, _ := g.EnsureVertex(3, datastructure.NewCoordinate(1, 1))
	h := g.AddHelperVertex(datastructure.NewCoordinate(0.5, 0.5))

	for _, e := range []datastructure.Edge{
		{From: a, To: b, OsmWayID: 10, AnchorFrom: 1, AnchorTo: 2, Direction: 1,
			Geometry: []datastructure.Coordinate{{0, 0}, {0, 1}},
			Tags:     datastructure.EdgeTags{Width: datastructure.Some(3.5)}},
		{From: b, To: c, OsmWayID: 11, AnchorFrom: 2, AnchorTo: 3, Direction: 1,
			Geometry: []datastructure.Coordinate{{0, 1}, {1, 1}}},
		{From: a, To: h, Helper: true, Geometry: []datastructure.Coordinate{{0, 0}, {0.5, 0.5}}},
		{From: h, To: c, OsmWayID: 12, AnchorFrom: 1, AnchorTo: 3, Direction: 1,
			Geometry: []datastructure.Coordinate{{0, 0}, {1, 1}}},
	} {
		_, err := g.AddEdge(e)
		require.NoError(t, err)
	}
	return g
}

func TestEnsureVertexIsIdempotent(t *testing.T) {
	g := datastructure.NewShadowGraph()
	first, created := g.EnsureVertex(42, datastructure.NewCoordinate(1, 2))
	assert.True(t, created)
	second, created := g.EnsureVertex(42, datastructure.NewCoordinate(9, 9))
	assert.False(t, created)
	assert.Equal(t, first, second)

	v, err := g.GetVertex(first)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Lat)
	osmID, ok := v.OsmNodeID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), osmID)
}

func TestEnsureVertexConcurrent(t *testing.T) {
	g := datastructure.NewShadowGraph()
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := int64(0); id < 200; id++ {
				g.EnsureVertex(id, datastructure.NewCoordinate(float64(id), 0))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, g.NumVertices())
	seen := make(map[int64]bool)
	for _, v := range g.GetVertices() {
		assert.False(t, seen[v.OsmID], "duplicate vertex for osm node %d", v.OsmID)
		seen[v.OsmID] = true
	}
}

func TestAddEdgeRejectsSelfLoopAndParallelEdge(t *testing.T) {
	g := buildSquare(t)
	a, _ := g.VertexByOsmID(1)
	b, _ := g.VertexByOsmID(2)

	_, err := g.AddEdge(datastructure.Edge{From: a, To: a})
	assert.ErrorIs(t, err, datastructure.ErrSelfLoop)

	_, err = g.AddEdge(datastructure.Edge{From: a, To: b})
	assert.ErrorIs(t, err, datastructure.ErrDuplicateEdge)

	_, err = g.AddEdge(datastructure.Edge{From: b, To: a})
	assert.NoError(t, err)

	_, err = g.AddEdge(datastructure.Edge{From: a, To: 99})
	assert.ErrorIs(t, err, datastructure.ErrVertexNotFound)
}

func TestHelperAccessors(t *testing.T) {
	g := buildSquare(t)
	helper, err := g.GetVertex(3)
	require.NoError(t, err)
	_, ok := helper.OsmNodeID()
	assert.False(t, ok)

	e, err := g.GetEdge(2)
	require.NoError(t, err)
	_, ok = e.WayTags()
	assert.False(t, ok)
	_, ok = e.WayID()
	assert.False(t, ok)

	e, err = g.GetEdge(0)
	require.NoError(t, err)
	tags, ok := e.WayTags()
	assert.True(t, ok)
	assert.Equal(t, "3.5", tags.Width.String())

	meta := g.Metadata()
	assert.Equal(t, 1, meta.HelperVertexCount)
	assert.Equal(t, 1, meta.HelperEdgeCount)
}

func TestAdjacency(t *testing.T) {
	g := buildSquare(t)
	a, _ := g.VertexByOsmID(1)
	c, _ := g.VertexByOsmID(3)

	assert.Equal(t, 2, g.OutDegree(a))
	assert.Equal(t, 0, g.InDegree(a))
	assert.Equal(t, 2, g.InDegree(c))

	var targets []datastructure.Index
	g.ForOutEdgesOf(a, func(e datastructure.Edge) {
		targets = append(targets, e.To)
	})
	assert.Len(t, targets, 2)
}

func TestSaveAndLoadGraph(t *testing.T) {
	g := buildSquare(t)
	path := filepath.Join(t.TempDir(), "graph.bin")
	require.NoError(t, g.SaveToFile(path))

	loaded, err := datastructure.LoadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, g.GetVertices(), loaded.GetVertices())
	assert.Equal(t, g.GetEdges(), loaded.GetEdges())

	a, _ := loaded.VertexByOsmID(1)
	b, _ := loaded.VertexByOsmID(2)
	assert.True(t, loaded.HasEdge(a, b))
}

func TestVertexIndexNearest(t *testing.T) {
	g := buildSquare(t)
	idx := datastructure.NewVertexIndex(g.GetVertices(), false)
	assert.Equal(t, 3, idx.Len())

	nearest := idx.Nearest(0.9, 0.95, 1)
	require.Len(t, nearest, 1)
	v, _ := g.GetVertex(nearest[0])
	assert.Equal(t, int64(3), v.OsmID)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []datastructure.Coordinate{{-7.55, 110.8}, {-7.56, 110.81}}
	decoded, err := datastructure.DecodePolyline(datastructure.CreatePolyline(coords))
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.InDelta(t, coords[1].Lat, decoded[1].Lat, 1e-5)
}
