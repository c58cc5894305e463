package export

import (
	"fmt"
	"os"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/lintang-b-s/shadowgraph/pkg/geo"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

type Series string

const (
	// SeriesVertices draws every vertex as a point.
	SeriesVertices Series = "vertices"
	// SeriesEdges draws every edge as a straight line between its vertices.
	SeriesEdges Series = "edges"
	// SeriesEdgeGeom draws the traced street geometry of every edge.
	SeriesEdgeGeom Series = "edgegeom"
)

func ParseSeries(s string) (Series, error) {
	switch Series(s) {
	case SeriesVertices, SeriesEdges, SeriesEdgeGeom:
		return Series(s), nil
	}
	return "", fmt.Errorf("unknown geojson series %q", s)
}

func toPositions(coords []datastructure.Coordinate) [][]float64 {
	pts := make([][]float64, len(coords))
	for i, c := range coords {
		pts[i] = []float64{c.Lon, c.Lat}
	}
	return pts
}

// GeoJSON renders one series of g as a feature collection. simplifyMeters > 0
// simplifies edge geometries with douglas peucker first.
func GeoJSON(g *datastructure.ShadowGraph, series Series, simplifyMeters float64) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	switch series {
	case SeriesVertices:
		for _, v := range g.GetVertices() {
			f := geojson.NewPointFeature([]float64{v.Lon, v.Lat})
			f.SetProperty("id", v.ID)
			f.SetProperty("helper", v.Helper)
			if id, ok := v.OsmNodeID(); ok {
				f.SetProperty("osm_id", id)
			}
			fc.AddFeature(f)
		}
	case SeriesEdges, SeriesEdgeGeom:
		vertices := g.GetVertices()
		for _, e := range g.GetEdges() {
			coords := e.Geometry
			if series == SeriesEdges {
				coords = []datastructure.Coordinate{vertices[e.From].Coordinate(), vertices[e.To].Coordinate()}
			} else if simplifyMeters > 0 {
				coords = geo.RamesDouglasPeucker(coords, simplifyMeters)
			}
			f := geojson.NewLineStringFeature(toPositions(coords))
			f.SetProperty("id", e.ID)
			f.SetProperty("source", e.From)
			f.SetProperty("target", e.To)
			f.SetProperty("helper", e.Helper)
			if tags, ok := e.WayTags(); ok {
				f.SetProperty("osm_id", e.OsmWayID)
				f.SetProperty("parsing_direction", e.Direction)
				f.SetProperty("geomlength", e.GeomLength)
				f.SetProperty("tags", tags)
			}
			fc.AddFeature(f)
		}
	default:
		return nil, fmt.Errorf("unknown geojson series %q", series)
	}
	return fc.MarshalJSON()
}

func WriteGeoJSON(fname string, g *datastructure.ShadowGraph, series Series, simplifyMeters float64) error {
	bb, err := GeoJSON(g, series, simplifyMeters)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(fname, bb, 0o644), "Can't write geojson")
}
