package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/kv"
	"github.com/lintang-b-s/shadowgraph/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*chi.Mux, *Metrics) {
	g := datastructure.NewShadowGraph()
	a, _ := g.EnsureVertex(10, datastructure.NewCoordinate(-7.7700, 110.3700))
	b, _ := g.EnsureVertex(20, datastructure.NewCoordinate(-7.7700, 110.3720))
	h := g.AddHelperVertex(datastructure.NewCoordinate(-7.7710, 110.3710))
	_, err := g.AddEdge(datastructure.Edge{
		From: a, To: b, OsmWayID: 7, AnchorFrom: 10, AnchorTo: 20, Direction: 1,
		Tags:     datastructure.EdgeTags{Lanes: datastructure.Some(2), Name: "Jalan Colombo"},
		Geometry: []datastructure.Coordinate{{Lat: -7.7700, Lon: 110.3700}, {Lat: -7.7700, Lon: 110.3720}},
	})
	require.NoError(t, err)
	_, err = g.AddEdge(datastructure.Edge{
		From: b, To: h, Helper: true,
		Geometry: []datastructure.Coordinate{{Lat: -7.7700, Lon: 110.3720}, {Lat: -7.7710, Lon: 110.3710}},
	})
	require.NoError(t, err)

	store, err := kv.Open(kv.BackendPebble, "")
	require.NoError(t, err)
	kvdb := kv.NewKVDB(store, nil)
	t.Cleanup(func() { kvdb.Close() })
	require.NoError(t, kvdb.BuildH3IndexedEdges(context.Background(), g))

	svc := service.NewGraphService(g, datastructure.NewVertexIndex(g.GetVertices(), true), kvdb,
		kv.SnapshotMeta{BuildID: "abc", Dataset: "yogyakarta", Handedness: "counter_clockwise"})

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	GraphRouter(r, svc)
	return r, m
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGraphInfoHandler(t *testing.T) {
	r, _ := newRouter(t)
	rec := do(t, r, http.MethodGet, "/api/graph", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GraphInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "yogyakarta", resp.Dataset)
	assert.Equal(t, "counter_clockwise", resp.Handedness)
	assert.Equal(t, 3, resp.VertexCount)
	assert.Equal(t, 1, resp.HelperEdgeCount)
}

func TestVertexHandler(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(t, r, http.MethodGet, "/api/vertices/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp VertexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.OsmID)
	assert.Equal(t, int64(20), *resp.OsmID)
	assert.Len(t, resp.InEdges, 1)
	assert.Len(t, resp.OutEdges, 1)
	assert.True(t, resp.OutEdges[0].Helper)
	assert.Nil(t, resp.OutEdges[0].OsmWayID)

	rec = do(t, r, http.MethodGet, "/api/vertices/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"osm_id":null`)

	rec = do(t, r, http.MethodGet, "/api/vertices/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/vertices/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEdgeHandler(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(t, r, http.MethodGet, "/api/edges/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp EdgeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.OsmWayID)
	assert.Equal(t, int64(7), *resp.OsmWayID)
	require.NotNil(t, resp.Tags)
	assert.Equal(t, "Jalan Colombo", resp.Tags.Name)
	lanes, ok := resp.Tags.Lanes.Get()
	assert.True(t, ok)
	assert.Equal(t, 2, lanes)
	assert.True(t, resp.Tags.Width.IsMissing())

	coords, err := datastructure.DecodePolyline(resp.Path)
	require.NoError(t, err)
	assert.Len(t, coords, 2)

	rec = do(t, r, http.MethodGet, "/api/edges/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNearestVerticesHandler(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(t, r, http.MethodPost, "/api/vertices/nearest", `{"lat": -7.7709, "lon": 110.3710, "k": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp NearestVerticesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Vertices, 2)
	assert.True(t, resp.Vertices[0].Helper)
	require.NotNil(t, resp.Vertices[0].Distance)

	rec = do(t, r, http.MethodPost, "/api/vertices/nearest", `{"lat": 95, "lon": 110.3710, "k": 2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestNearbyEdgesHandler(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(t, r, http.MethodPost, "/api/edges/nearby", `{"lat": -7.77005, "lon": 110.3710, "radius": 30, "k": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp NearbyEdgesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Edges, 1)
	assert.Equal(t, datastructure.Index(0), resp.Edges[0].ID)

	rec = do(t, r, http.MethodPost, "/api/edges/nearby", `{"lat": -7.77005, "lon": 110.3710}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/edges/nearby", `{"lat": -7.77005, "lon": 110.3710, "radius": 9000, "k": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromeHttpMiddleware(t *testing.T) {
	r, m := newRouter(t)
	do(t, r, http.MethodGet, "/api/vertices/0", "")
	do(t, r, http.MethodGet, "/api/vertices/1", "")
	do(t, r, http.MethodGet, "/api/vertices/42", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/vertices/{id}", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/vertices/{id}", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}
