package shadow

import (
	"sync"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/geo"
)

// Fractions along the traced geometry where helper vertices are placed.
const (
	SelfLoopFirstHelperFraction  = 0.1
	SelfLoopSecondHelperFraction = 0.6
	MultiEdgeHelperFraction      = 0.5

	// helpers closer than this to each other or to the segment source are
	// spread out northward by helperOffsetDegrees each.
	minHelperSeparationMeters = 0.01
	helperOffsetDegrees       = 1e-6
)

// Segment is one traced piece of a primitive way between two significant nodes.
type Segment struct {
	WayID     int64
	RawIndex  int
	Nodes     []int64
	Direction int8
}

func (s Segment) Source() int64 {
	return s.Nodes[0]
}

func (s Segment) Dest() int64 {
	return s.Nodes[len(s.Nodes)-1]
}

// assembler is the single writer of the shadow graph. The check for an
// existing edge and the insertion of its replacement happen under one lock.
type assembler struct {
	mu    sync.Mutex
	graph *datastructure.ShadowGraph
	nodes map[int64]datastructure.RawNode
}

func newAssembler(nodes map[int64]datastructure.RawNode) *assembler {
	return &assembler{
		graph: datastructure.NewShadowGraph(),
		nodes: nodes,
	}
}

func (a *assembler) ensureVertex(osmID int64) datastructure.Index {
	id, _ := a.graph.EnsureVertex(osmID, a.nodes[osmID].Coordinate())
	return id
}

func (a *assembler) geometry(nodes []int64) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0, len(nodes))
	for _, id := range nodes {
		coords = append(coords, a.nodes[id].Coordinate())
	}
	return coords
}

// addSegment inserts seg as a real edge. Self loops are split with two helper
// vertices: s -> h1 (helper), h1 -> h2 (real), h2 -> s (helper). A segment
// parallel to an existing edge is rerouted: s -> h (helper), h -> d (real).
func (a *assembler) addSegment(seg Segment, tags datastructure.EdgeTags) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	src := a.ensureVertex(seg.Source())
	dst := a.ensureVertex(seg.Dest())
	geom := a.geometry(seg.Nodes)

	edge := datastructure.Edge{
		OsmWayID:   seg.WayID,
		AnchorFrom: seg.Source(),
		AnchorTo:   seg.Dest(),
		Tags:       tags,
		Geometry:   geom,
		GeomLength: geo.PolylineLength(geom),
		Direction:  seg.Direction,
	}

	switch {
	case src == dst:
		pts := helperPoints(geom, SelfLoopFirstHelperFraction, SelfLoopSecondHelperFraction)
		h1Coord, h2Coord := pts[0], pts[1]
		h1 := a.graph.AddHelperVertex(h1Coord)
		h2 := a.graph.AddHelperVertex(h2Coord)

		if _, err := a.graph.AddEdge(helperEdge(src, h1, geom[0], h1Coord)); err != nil {
			return err
		}
		edge.From, edge.To = h1, h2
		if _, err := a.graph.AddEdge(edge); err != nil {
			return err
		}
		_, err := a.graph.AddEdge(helperEdge(h2, dst, h2Coord, geom[len(geom)-1]))
		return err

	case a.graph.HasEdge(src, dst):
		hCoord := helperPoints(geom, MultiEdgeHelperFraction)[0]
		h := a.graph.AddHelperVertex(hCoord)

		if _, err := a.graph.AddEdge(helperEdge(src, h, geom[0], hCoord)); err != nil {
			return err
		}
		edge.From, edge.To = h, dst
		_, err := a.graph.AddEdge(edge)
		return err

	default:
		edge.From, edge.To = src, dst
		_, err := a.graph.AddEdge(edge)
		return err
	}
}

// helperPoints places one helper per fraction along geom. On degenerate
// geometry, where the points would coincide, they are offset from geom[0].
func helperPoints(geom []datastructure.Coordinate, fractions ...float64) []datastructure.Coordinate {
	pts := make([]datastructure.Coordinate, 0, len(fractions))
	for _, f := range fractions {
		pts = append(pts, geo.PointAlongPolyline(geom, f))
	}
	if !tooClose(append([]datastructure.Coordinate{geom[0]}, pts...)) {
		return pts
	}
	for i := range pts {
		pts[i] = datastructure.NewCoordinate(geom[0].Lat+float64(i+1)*helperOffsetDegrees, geom[0].Lon)
	}
	return pts
}

func tooClose(coords []datastructure.Coordinate) bool {
	for i := 0; i < len(coords); i++ {
		for j := i + 1; j < len(coords); j++ {
			d := geo.CalculateHaversineDistance(coords[i].Lat, coords[i].Lon, coords[j].Lat, coords[j].Lon) * 1000
			if d < minHelperSeparationMeters {
				return true
			}
		}
	}
	return false
}

func helperEdge(from, to datastructure.Index, fromCoord, toCoord datastructure.Coordinate) datastructure.Edge {
	geom := []datastructure.Coordinate{fromCoord, toCoord}
	return datastructure.Edge{
		From:       from,
		To:         to,
		Geometry:   geom,
		GeomLength: geo.PolylineLength(geom),
		Helper:     true,
	}
}
