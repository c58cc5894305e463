package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/geo"
	"github.com/lintang-b-s/shadowgraph/pkg/kv"
	"github.com/lintang-b-s/shadowgraph/pkg/server"
)

type GraphService struct {
	graph Graph
	index VertexIndex
	kv    KVDB
	meta  kv.SnapshotMeta

	sccOnce sync.Once
	scc     datastructure.Components
}

func NewGraphService(graph Graph, index VertexIndex, kvdb KVDB, meta kv.SnapshotMeta) *GraphService {
	return &GraphService{graph: graph, index: index, kv: kvdb, meta: meta}
}

type GraphInfo struct {
	Snapshot         kv.SnapshotMeta
	Metadata         datastructure.Metadata
	Components       int
	LargestComponent int
}

func (uc *GraphService) GraphInfo(ctx context.Context) GraphInfo {
	uc.sccOnce.Do(func() {
		uc.scc = uc.graph.StronglyConnectedComponents()
	})
	return GraphInfo{
		Snapshot:         uc.meta,
		Metadata:         uc.graph.Metadata(),
		Components:       uc.scc.Count(),
		LargestComponent: uc.scc.Largest(),
	}
}

// Vertex returns vertex id with its outgoing and incoming edges.
func (uc *GraphService) Vertex(ctx context.Context, id datastructure.Index) (datastructure.Vertex, []datastructure.Edge, []datastructure.Edge, error) {
	v, err := uc.graph.GetVertex(id)
	if errors.Is(err, datastructure.ErrVertexNotFound) {
		return datastructure.Vertex{}, nil, nil, server.WrapErrorf(err, server.ErrNotFound, "vertex %d not found", id)
	}
	if err != nil {
		return datastructure.Vertex{}, nil, nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	out := make([]datastructure.Edge, 0)
	uc.graph.ForOutEdgesOf(id, func(e datastructure.Edge) {
		out = append(out, e)
	})
	in := make([]datastructure.Edge, 0)
	uc.graph.ForInEdgesOf(id, func(e datastructure.Edge) {
		in = append(in, e)
	})
	return v, out, in, nil
}

func (uc *GraphService) Edge(ctx context.Context, id datastructure.Index) (datastructure.Edge, error) {
	e, err := uc.graph.GetEdge(id)
	if errors.Is(err, datastructure.ErrEdgeNotFound) {
		return datastructure.Edge{}, server.WrapErrorf(err, server.ErrNotFound, "edge %d not found", id)
	}
	if err != nil {
		return datastructure.Edge{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return e, nil
}

// NearestVertices returns up to k vertices closest to (lat, lon) with their
// distance in meters.
func (uc *GraphService) NearestVertices(ctx context.Context, lat, lon float64, k int) ([]datastructure.Vertex, []float64, error) {
	ids := uc.index.Nearest(lat, lon, k)
	vertices := make([]datastructure.Vertex, 0, len(ids))
	dists := make([]float64, 0, len(ids))
	for _, id := range ids {
		v, err := uc.graph.GetVertex(id)
		if err != nil {
			return nil, nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
		}
		vertices = append(vertices, v)
		dists = append(dists, geo.CalculateHaversineDistance(lat, lon, v.Lat, v.Lon)*1000)
	}
	if len(vertices) == 0 {
		return nil, nil, server.NewErrorf(server.ErrNotFound, "no vertex near (%f, %f)", lat, lon)
	}
	return vertices, dists, nil
}

// NearbyEdges returns up to k real edges whose geometry passes within radius
// meters of (lat, lon), closest first, with the distance to each.
func (uc *GraphService) NearbyEdges(ctx context.Context, lat, lon, radius float64, k int) ([]datastructure.Edge, []float64, error) {
	candidates, err := uc.kv.GetEdgesWithinRadius(lat, lon, radius)
	if err != nil {
		return nil, nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	type nearby struct {
		edge datastructure.Edge
		dist float64
	}
	found := make([]nearby, 0, len(candidates))
	query := datastructure.NewCoordinate(lat, lon)
	for _, c := range candidates {
		e, err := uc.graph.GetEdge(c.EdgeID)
		if err != nil {
			return nil, nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
		}
		_, dist := geo.ProjectPointToPolyline(query, e.Geometry)
		if dist <= radius {
			found = append(found, nearby{e, dist})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist == found[j].dist {
			return found[i].edge.ID < found[j].edge.ID
		}
		return found[i].dist < found[j].dist
	})
	if len(found) > k {
		found = found[:k]
	}

	edges := make([]datastructure.Edge, len(found))
	dists := make([]float64, len(found))
	for i, n := range found {
		edges[i] = n.edge
		dists[i] = n.dist
	}
	return edges, dists, nil
}
