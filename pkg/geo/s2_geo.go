package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
)

func toS2Point(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

func fromS2Point(p s2.Point) datastructure.Coordinate {
	ll := s2.LatLngFromPoint(p)
	return datastructure.NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
}

func toS2Polyline(coords []datastructure.Coordinate) *s2.Polyline {
	line := make(s2.Polyline, 0, len(coords))
	for _, c := range coords {
		line = append(line, toS2Point(c))
	}
	return &line
}

// PointAlongPolyline returns the point whose distance from the first vertex,
// measured along the geodesic polyline, is fraction of the total length.
// fraction is clamped to [0, 1].
func PointAlongPolyline(coords []datastructure.Coordinate, fraction float64) datastructure.Coordinate {
	if len(coords) == 0 {
		return datastructure.Coordinate{}
	}
	if len(coords) == 1 {
		return coords[0]
	}
	if fraction <= 0 {
		return coords[0]
	}
	if fraction >= 1 {
		return coords[len(coords)-1]
	}
	p, _ := toS2Polyline(coords).Interpolate(fraction)
	return fromS2Point(p)
}

// ProjectPointToPolyline returns the point on coords closest to c and the
// distance between them in meters.
func ProjectPointToPolyline(c datastructure.Coordinate, coords []datastructure.Coordinate) (datastructure.Coordinate, float64) {
	if len(coords) == 0 {
		return c, 0
	}
	if len(coords) == 1 {
		return coords[0], CalculateHaversineDistance(c.Lat, c.Lon, coords[0].Lat, coords[0].Lon) * 1000
	}
	projected, _ := toS2Polyline(coords).Project(toS2Point(c))
	proj := fromS2Point(projected)
	return proj, CalculateHaversineDistance(c.Lat, c.Lon, proj.Lat, proj.Lon) * 1000
}

// perpendicularDistance is the distance in meters from p to the segment ab.
func perpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	angle := s2.DistanceFromSegment(toS2Point(p), toS2Point(a), toS2Point(b))
	return angle.Radians() * earthRadiusM
}
