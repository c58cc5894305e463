package datastructure

import (
	"errors"
	"sync"
)

var (
	ErrDuplicateEdge  = errors.New("edge with the same source and destination already exists")
	ErrSelfLoop       = errors.New("edge source and destination are the same vertex")
	ErrVertexNotFound = errors.New("vertex not found")
	ErrEdgeNotFound   = errors.New("edge not found")
)

// Vertex is either a significant osm node or a helper vertex. Helper vertices
// have no osm id.
type Vertex struct {
	ID     Index
	OsmID  int64
	Lat    float64
	Lon    float64
	Helper bool
}

func NewVertex(id Index, osmID int64, lat, lon float64) Vertex {
	return Vertex{
		ID:    id,
		OsmID: osmID,
		Lat:   lat,
		Lon:   lon,
	}
}

func NewHelperVertex(id Index, lat, lon float64) Vertex {
	return Vertex{
		ID:     id,
		Lat:    lat,
		Lon:    lon,
		Helper: true,
	}
}

func (v Vertex) OsmNodeID() (int64, bool) {
	if v.Helper {
		return 0, false
	}
	return v.OsmID, true
}

func (v Vertex) Coordinate() Coordinate {
	return NewCoordinate(v.Lat, v.Lon)
}

/*
Edge of the shadow graph.

Real edges carry the way id, normalized tags and the traced geometry. The
geometry always runs between the significant osm nodes AnchorFrom and AnchorTo,
which are the edge endpoints unless the edge was rerouted through a helper vertex.
Helper edges only carry a two point geometry.
*/
type Edge struct {
	ID         Index
	From       Index
	To         Index
	OsmWayID   int64
	AnchorFrom int64
	AnchorTo   int64
	Tags       EdgeTags
	Geometry   []Coordinate
	GeomLength float64 // meters
	Direction  int8
	Helper     bool
}

func (e Edge) WayID() (int64, bool) {
	if e.Helper {
		return 0, false
	}
	return e.OsmWayID, true
}

func (e Edge) WayTags() (EdgeTags, bool) {
	if e.Helper {
		return EdgeTags{}, false
	}
	return e.Tags, true
}

type edgeKey struct {
	from Index
	to   Index
}

// ShadowGraph is an arena backed directed graph without parallel edges and
// without self loops. All methods are safe for concurrent use.
type ShadowGraph struct {
	mu        sync.RWMutex
	vertices  []Vertex
	edges     []Edge
	outEdges  [][]Index
	inEdges   [][]Index
	osmVertex map[int64]Index
	edgeSet   map[edgeKey]Index
}

func NewShadowGraph() *ShadowGraph {
	return &ShadowGraph{
		vertices:  make([]Vertex, 0),
		edges:     make([]Edge, 0),
		outEdges:  make([][]Index, 0),
		inEdges:   make([][]Index, 0),
		osmVertex: make(map[int64]Index),
		edgeSet:   make(map[edgeKey]Index),
	}
}

// EnsureVertex returns the vertex of osm node osmID, creating it first if it
// doesn't exist yet. created reports whether this call created it.
func (g *ShadowGraph) EnsureVertex(osmID int64, coord Coordinate) (id Index, created bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id, ok := g.osmVertex[osmID]; ok {
		return id, false
	}
	id = Index(len(g.vertices))
	g.appendVertex(NewVertex(id, osmID, coord.Lat, coord.Lon))
	g.osmVertex[osmID] = id
	return id, true
}

func (g *ShadowGraph) AddHelperVertex(coord Coordinate) Index {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := Index(len(g.vertices))
	g.appendVertex(NewHelperVertex(id, coord.Lat, coord.Lon))
	return id
}

func (g *ShadowGraph) appendVertex(v Vertex) {
	g.vertices = append(g.vertices, v)
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
}

// AddEdge inserts e and returns its id. The graph rejects self loops and a second
// edge between the same ordered vertex pair.
func (g *ShadowGraph) AddEdge(e Edge) (Index, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.validVertex(e.From) || !g.validVertex(e.To) {
		return InvalidIndex, ErrVertexNotFound
	}
	if e.From == e.To {
		return InvalidIndex, ErrSelfLoop
	}
	key := edgeKey{e.From, e.To}
	if _, ok := g.edgeSet[key]; ok {
		return InvalidIndex, ErrDuplicateEdge
	}

	e.ID = Index(len(g.edges))
	g.edges = append(g.edges, e)
	g.edgeSet[key] = e.ID
	g.outEdges[e.From] = append(g.outEdges[e.From], e.ID)
	g.inEdges[e.To] = append(g.inEdges[e.To], e.ID)
	return e.ID, nil
}

func (g *ShadowGraph) validVertex(id Index) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

func (g *ShadowGraph) HasEdge(from, to Index) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edgeSet[edgeKey{from, to}]
	return ok
}

func (g *ShadowGraph) EdgeBetween(from, to Index) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.edgeSet[edgeKey{from, to}]
	if !ok {
		return Edge{}, false
	}
	return g.edges[id], true
}

func (g *ShadowGraph) VertexByOsmID(osmID int64) (Index, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.osmVertex[osmID]
	return id, ok
}

func (g *ShadowGraph) GetVertex(id Index) (Vertex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.validVertex(id) {
		return Vertex{}, ErrVertexNotFound
	}
	return g.vertices[id], nil
}

func (g *ShadowGraph) GetEdge(id Index) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, ErrEdgeNotFound
	}
	return g.edges[id], nil
}

func (g *ShadowGraph) NumVertices() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

func (g *ShadowGraph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// GetVertices returns a copy of all vertices ordered by id.
func (g *ShadowGraph) GetVertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()
	vs := make([]Vertex, len(g.vertices))
	copy(vs, g.vertices)
	return vs
}

// GetEdges returns a copy of all edges ordered by id.
func (g *ShadowGraph) GetEdges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	es := make([]Edge, len(g.edges))
	copy(es, g.edges)
	return es
}

func (g *ShadowGraph) ForOutEdgesOf(v Index, handle func(e Edge)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.validVertex(v) {
		return
	}
	for _, id := range g.outEdges[v] {
		handle(g.edges[id])
	}
}

func (g *ShadowGraph) ForInEdgesOf(v Index, handle func(e Edge)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.validVertex(v) {
		return
	}
	for _, id := range g.inEdges[v] {
		handle(g.edges[id])
	}
}

func (g *ShadowGraph) OutDegree(v Index) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.validVertex(v) {
		return 0
	}
	return len(g.outEdges[v])
}

func (g *ShadowGraph) InDegree(v Index) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.validVertex(v) {
		return 0
	}
	return len(g.inEdges[v])
}

type Metadata struct {
	VertexCount       int
	EdgeCount         int
	HelperVertexCount int
	HelperEdgeCount   int
	MeanOutDegree     float64
}

func (g *ShadowGraph) Metadata() Metadata {
	g.mu.RLock()
	defer g.mu.RUnlock()

	m := Metadata{
		VertexCount: len(g.vertices),
		EdgeCount:   len(g.edges),
	}
	for _, v := range g.vertices {
		if v.Helper {
			m.HelperVertexCount++
		}
	}
	for _, e := range g.edges {
		if e.Helper {
			m.HelperEdgeCount++
		}
	}
	if m.VertexCount > 0 {
		m.MeanOutDegree = float64(m.EdgeCount) / float64(m.VertexCount)
	}
	return m
}
