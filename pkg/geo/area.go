package geo

import "github.com/lintang-b-s/shadowgraph/pkg/datastructure"

// SignedArea computes the shoelace area of ring in the lon/lat plane.
// Positive means counterclockwise, negative clockwise. The ring may or may not
// repeat its first point at the end.
func SignedArea(ring []datastructure.Coordinate) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += a.Lon*b.Lat - b.Lon*a.Lat
	}
	return sum / 2
}

func IsClosed(points []datastructure.Coordinate) bool {
	return len(points) > 2 && points[0].Equal(points[len(points)-1])
}
