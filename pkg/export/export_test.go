package export_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph(t *testing.T) *datastructure.ShadowGraph {
	g := datastructure.NewShadowGraph()
	a, _ := g.EnsureVertex(1, datastructure.NewCoordinate(0, 0))
	b, _ := g.EnsureVertex(3, datastructure.NewCoordinate(0, 0.002))
	h := g.AddHelperVertex(datastructure.NewCoordinate(0.0005, 0.001))

	_, err := g.AddEdge(datastructure.Edge{
		From: a, To: b, OsmWayID: 10, AnchorFrom: 1, AnchorTo: 3, Direction: 1,
		Tags: datastructure.EdgeTags{
			Lanes:   datastructure.Some(2),
			Width:   datastructure.Missing[float64](),
			Highway: "residential",
			Name:    "Jalan Kaliurang",
		},
		Geometry: []datastructure.Coordinate{
			datastructure.NewCoordinate(0, 0),
			datastructure.NewCoordinate(0, 0.001),
			datastructure.NewCoordinate(0, 0.002),
		},
		GeomLength: 222.39,
	})
	require.NoError(t, err)
	_, err = g.AddEdge(datastructure.Edge{
		From: b, To: h, Helper: true,
		Geometry: []datastructure.Coordinate{
			datastructure.NewCoordinate(0, 0.002),
			datastructure.NewCoordinate(0.0005, 0.001),
		},
	})
	require.NoError(t, err)
	return g
}

func readCSV(t *testing.T, fname string) [][]string {
	f, err := os.Open(fname)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportGraphToCSV(t *testing.T) {
	g := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "network")

	err := export.ExportGraphToCSV(path, g, map[string]string{"handedness": "counter_clockwise"}, false)
	require.NoError(t, err)

	nodes := readCSV(t, path+"_nodes.csv")
	require.Len(t, nodes, 4)
	assert.Equal(t, []string{"id", "osm_id", "lat", "lon", "pointgeom", "helper"}, nodes[0])
	assert.Equal(t, "1", nodes[1][1])
	assert.Equal(t, "POINT(0 0)", nodes[1][4])
	assert.Equal(t, "", nodes[3][1])
	assert.Equal(t, "true", nodes[3][5])

	edges := readCSV(t, path+"_edges.csv")
	require.Len(t, edges, 3)
	header := edges[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %s not found", name)
		return -1
	}
	assert.Equal(t, "10", edges[1][col("osm_id")])
	assert.Equal(t, "2", edges[1][col("lanes")])
	assert.Equal(t, "", edges[1][col("width")])
	assert.Equal(t, "Jalan Kaliurang", edges[1][col("name")])
	assert.Equal(t, "LINESTRING(0 0,0.001 0,0.002 0)", edges[1][col("edgegeom")])
	assert.Equal(t, "1", edges[1][col("parsing_direction")])
	assert.Equal(t, "3", edges[1][col("anchor_to")])
	assert.Equal(t, "", edges[2][col("osm_id")])
	assert.Equal(t, "true", edges[2][col("helper")])

	props := readCSV(t, path+"_graph.csv")
	kv := map[string]string{}
	for _, row := range props[1:] {
		kv[row[0]] = row[1]
	}
	assert.Equal(t, "3", kv["vertices"])
	assert.Equal(t, "2", kv["edges"])
	assert.Equal(t, "1", kv["helper_vertices"])
	assert.Equal(t, "1", kv["helper_edges"])
	assert.Equal(t, "counter_clockwise", kv["handedness"])
}

func TestExportGraphToCSVRemoveInternalData(t *testing.T) {
	g := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "network")

	require.NoError(t, export.ExportGraphToCSV(path, g, nil, true))

	nodes := readCSV(t, path+"_nodes.csv")
	assert.NotContains(t, nodes[0], "helper")

	edges := readCSV(t, path+"_edges.csv")
	for _, name := range []string{"helper", "parsing_direction", "anchor_from", "anchor_to"} {
		assert.NotContains(t, edges[0], name)
	}
	assert.Len(t, edges[1], len(edges[0]))
}

func TestExportGraphToCSVBadPath(t *testing.T) {
	g := sampleGraph(t)
	err := export.ExportGraphToCSV(filepath.Join(t.TempDir(), "missing", "network"), g, nil, false)
	assert.Error(t, err)
}

func TestExportGraphToCSVReportsFlushError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	dir := t.TempDir()
	require.NoError(t, os.Symlink("/dev/full", filepath.Join(dir, "network_nodes.csv")))

	err := export.ExportGraphToCSV(filepath.Join(dir, "network"), sampleGraph(t), nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't flush csv")
}

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Geometry struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	} `json:"features"`
}

func TestGeoJSON(t *testing.T) {
	g := sampleGraph(t)

	t.Run("vertices", func(t *testing.T) {
		bb, err := export.GeoJSON(g, export.SeriesVertices, 0)
		require.NoError(t, err)
		var fc featureCollection
		require.NoError(t, json.Unmarshal(bb, &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		require.Len(t, fc.Features, 3)
		assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
		assert.Equal(t, true, fc.Features[2].Properties["helper"])
	})

	t.Run("edges are straight", func(t *testing.T) {
		bb, err := export.GeoJSON(g, export.SeriesEdges, 0)
		require.NoError(t, err)
		var fc featureCollection
		require.NoError(t, json.Unmarshal(bb, &fc))
		require.Len(t, fc.Features, 2)
		var coords [][]float64
		require.NoError(t, json.Unmarshal(fc.Features[0].Geometry.Coordinates, &coords))
		assert.Len(t, coords, 2)
	})

	t.Run("edge geometry simplified", func(t *testing.T) {
		bb, err := export.GeoJSON(g, export.SeriesEdgeGeom, 7)
		require.NoError(t, err)
		var fc featureCollection
		require.NoError(t, json.Unmarshal(bb, &fc))
		var coords [][]float64
		require.NoError(t, json.Unmarshal(fc.Features[0].Geometry.Coordinates, &coords))
		// middle point is collinear
		assert.Len(t, coords, 2)
		assert.Equal(t, "residential", fc.Features[0].Properties["tags"].(map[string]interface{})["highway"])
	})

	t.Run("unknown series", func(t *testing.T) {
		_, err := export.GeoJSON(g, export.Series("buildings"), 0)
		assert.Error(t, err)
	})
}

func TestWriteGeoJSON(t *testing.T) {
	g := sampleGraph(t)
	fname := filepath.Join(t.TempDir(), "edges.geojson")
	require.NoError(t, export.WriteGeoJSON(fname, g, export.SeriesEdgeGeom, 0))
	info, err := os.Stat(fname)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestParseSeries(t *testing.T) {
	s, err := export.ParseSeries("edgegeom")
	require.NoError(t, err)
	assert.Equal(t, export.SeriesEdgeGeom, s)
	_, err = export.ParseSeries("shadowgeom")
	assert.Error(t, err)
}
