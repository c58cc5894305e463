package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type GraphService interface {
	GraphInfo(ctx context.Context) service.GraphInfo
	Vertex(ctx context.Context, id datastructure.Index) (datastructure.Vertex, []datastructure.Edge, []datastructure.Edge, error)
	Edge(ctx context.Context, id datastructure.Index) (datastructure.Edge, error)
	NearestVertices(ctx context.Context, lat, lon float64, k int) ([]datastructure.Vertex, []float64, error)
	NearbyEdges(ctx context.Context, lat, lon, radius float64, k int) ([]datastructure.Edge, []float64, error)
}

type GraphHandler struct {
	svc GraphService
}

func GraphRouter(r *chi.Mux, svc GraphService) {
	handler := &GraphHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Get("/graph", handler.GraphInfo)
			r.Get("/vertices/{id}", handler.Vertex)
			r.Post("/vertices/nearest", handler.NearestVertices)
			r.Get("/edges/{id}", handler.Edge)
			r.Post("/edges/nearby", handler.NearbyEdges)
		})
	})
}

// GraphInfoResponse model info
//
//	@Description	snapshot metadata and size of the served shadow graph
type GraphInfoResponse struct {
	BuildID           string  `json:"build_id"`
	Dataset           string  `json:"dataset"`
	CreatedAt         int64   `json:"created_at"`
	NetworkType       string  `json:"network_type"`
	Handedness        string  `json:"handedness"`
	VertexCount       int     `json:"vertex_count"`
	EdgeCount         int     `json:"edge_count"`
	HelperVertexCount int     `json:"helper_vertex_count"`
	HelperEdgeCount   int     `json:"helper_edge_count"`
	MeanOutDegree     float64 `json:"mean_out_degree"`
	StrongComponents  int     `json:"strong_components"`
	LargestComponent  int     `json:"largest_component"`
}

func RenderGraphInfoResponse(info service.GraphInfo) *GraphInfoResponse {
	return &GraphInfoResponse{
		BuildID:           info.Snapshot.BuildID,
		Dataset:           info.Snapshot.Dataset,
		CreatedAt:         info.Snapshot.CreatedAt,
		NetworkType:       info.Snapshot.NetworkType,
		Handedness:        info.Snapshot.Handedness,
		VertexCount:       info.Metadata.VertexCount,
		EdgeCount:         info.Metadata.EdgeCount,
		HelperVertexCount: info.Metadata.HelperVertexCount,
		HelperEdgeCount:   info.Metadata.HelperEdgeCount,
		MeanOutDegree:     info.Metadata.MeanOutDegree,
		StrongComponents:  info.Components,
		LargestComponent:  info.LargestComponent,
	}
}

// GraphInfo
//
//	@Summary		metadata of the served shadow graph
//	@Description	build id, dataset, handedness verdict and vertex/edge counts of the loaded snapshot
//	@Tags			graph
//	@Produce		application/json
//	@Router			/graph [get]
//	@Success		200	{object}	GraphInfoResponse
func (h *GraphHandler) GraphInfo(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderGraphInfoResponse(h.svc.GraphInfo(r.Context())))
}

// VertexResponse model info
//
//	@Description	vertex of the shadow graph. osm_id is null for helper vertices
type VertexResponse struct {
	ID       datastructure.Index `json:"id"`
	OsmID    *int64              `json:"osm_id"`
	Lat      float64             `json:"lat"`
	Lon      float64             `json:"lon"`
	Helper   bool                `json:"helper"`
	Distance *float64            `json:"distance,omitempty"`
	OutEdges []EdgeResponse      `json:"out_edges,omitempty"`
	InEdges  []EdgeResponse      `json:"in_edges,omitempty"`
}

// EdgeResponse model info
//
//	@Description	edge of the shadow graph. path is the google encoded polyline of its geometry
type EdgeResponse struct {
	ID         datastructure.Index     `json:"id"`
	Source     datastructure.Index     `json:"source"`
	Target     datastructure.Index     `json:"target"`
	Helper     bool                    `json:"helper"`
	OsmWayID   *int64                  `json:"osm_way_id"`
	Direction  int8                    `json:"direction,omitempty"`
	GeomLength float64                 `json:"geom_length"`
	Tags       *datastructure.EdgeTags `json:"tags,omitempty"`
	Path       string                  `json:"path"`
	Distance   *float64                `json:"distance,omitempty"`
}

func renderVertex(v datastructure.Vertex) VertexResponse {
	resp := VertexResponse{ID: v.ID, Lat: v.Lat, Lon: v.Lon, Helper: v.Helper}
	if id, ok := v.OsmNodeID(); ok {
		resp.OsmID = &id
	}
	return resp
}

func renderEdge(e datastructure.Edge) EdgeResponse {
	resp := EdgeResponse{
		ID:         e.ID,
		Source:     e.From,
		Target:     e.To,
		Helper:     e.Helper,
		Direction:  e.Direction,
		GeomLength: e.GeomLength,
		Path:       datastructure.CreatePolyline(e.Geometry),
	}
	if id, ok := e.WayID(); ok {
		resp.OsmWayID = &id
	}
	if tags, ok := e.WayTags(); ok {
		resp.Tags = &tags
	}
	return resp
}

func renderEdges(edges []datastructure.Edge) []EdgeResponse {
	resp := make([]EdgeResponse, 0, len(edges))
	for _, e := range edges {
		resp = append(resp, renderEdge(e))
	}
	return resp
}

func pathID(r *http.Request) (datastructure.Index, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id < 0 {
		return datastructure.InvalidIndex, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return datastructure.Index(id), nil
}

// Vertex
//
//	@Summary		get a vertex with its incident edges
//	@Tags			graph
//	@Param			id	path	int	true	"vertex id"
//	@Produce		application/json
//	@Router			/vertices/{id} [get]
//	@Success		200	{object}	VertexResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *GraphHandler) Vertex(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	v, out, in, err := h.svc.Vertex(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	resp := renderVertex(v)
	resp.OutEdges = renderEdges(out)
	resp.InEdges = renderEdges(in)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// Edge
//
//	@Summary		get an edge
//	@Tags			graph
//	@Param			id	path	int	true	"edge id"
//	@Produce		application/json
//	@Router			/edges/{id} [get]
//	@Success		200	{object}	EdgeResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *GraphHandler) Edge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	e, err := h.svc.Edge(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, renderEdge(e))
}

// NearestVerticesRequest model info
//
//	@Description	request body for nearest vertex search
type NearestVerticesRequest struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
	K   int     `json:"k" validate:"required,gt=0,lte=100"`
}

func (s *NearestVerticesRequest) Bind(r *http.Request) error {
	if s.K == 0 {
		s.K = 1
	}
	return nil
}

// NearestVerticesResponse model info
//
//	@Description	vertices nearest to the query point, closest first. distance in meters
type NearestVerticesResponse struct {
	Vertices []VertexResponse `json:"vertices"`
}

// NearestVertices
//
//	@Summary		k nearest vertices of a point
//	@Tags			graph
//	@Param			body	body	NearestVerticesRequest	true	"query point"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/vertices/nearest [post]
//	@Success		200	{object}	NearestVerticesResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *GraphHandler) NearestVertices(w http.ResponseWriter, r *http.Request) {
	data := &NearestVerticesRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := validateRequest(data); err != nil {
		render.Render(w, r, err)
		return
	}

	vertices, dists, err := h.svc.NearestVertices(r.Context(), data.Lat, data.Lon, data.K)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	resp := &NearestVerticesResponse{Vertices: make([]VertexResponse, 0, len(vertices))}
	for i, v := range vertices {
		vr := renderVertex(v)
		vr.Distance = &dists[i]
		resp.Vertices = append(resp.Vertices, vr)
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// NearbyEdgesRequest model info
//
//	@Description	request body for nearby edge search. radius in meters
type NearbyEdgesRequest struct {
	Lat    float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon    float64 `json:"lon" validate:"required,lt=180,gt=-180"`
	Radius float64 `json:"radius" validate:"required,gt=0,lte=5000"`
	K      int     `json:"k" validate:"required,gt=0,lte=100"`
}

func (s *NearbyEdgesRequest) Bind(r *http.Request) error {
	if s.Radius == 0 || s.K == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// NearbyEdgesResponse model info
//
//	@Description	real edges within radius of the query point, closest first. distance in meters
type NearbyEdgesResponse struct {
	Edges []EdgeResponse `json:"edges"`
}

// NearbyEdges
//
//	@Summary		edges within a radius of a point
//	@Tags			graph
//	@Param			body	body	NearbyEdgesRequest	true	"query point, radius and k"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/edges/nearby [post]
//	@Success		200	{object}	NearbyEdgesResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *GraphHandler) NearbyEdges(w http.ResponseWriter, r *http.Request) {
	data := &NearbyEdgesRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := validateRequest(data); err != nil {
		render.Render(w, r, err)
		return
	}

	edges, dists, err := h.svc.NearbyEdges(r.Context(), data.Lat, data.Lon, data.Radius, data.K)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	resp := &NearbyEdgesResponse{Edges: make([]EdgeResponse, 0, len(edges))}
	for i, e := range edges {
		er := renderEdge(e)
		er.Distance = &dists[i]
		resp.Edges = append(resp.Edges, er)
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func validateRequest(data interface{}) render.Renderer {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		return ErrValidation(err, vv)
	}
	return nil
}
