package geo

import (
	"math"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
)

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = 6371007
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance returns the great circle distance in kilometers.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// PolylineLength returns the length of coords in meters.
func PolylineLength(coords []datastructure.Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += CalculateHaversineDistance(coords[i-1].Lat, coords[i-1].Lon, coords[i].Lat, coords[i].Lon)
	}
	return length * 1000
}

// DensifyPolyline returns coords with extra points inserted so that no two
// consecutive points are more than stepMeters apart.
func DensifyPolyline(coords []datastructure.Coordinate, stepMeters float64) []datastructure.Coordinate {
	if len(coords) < 2 || stepMeters <= 0 {
		return coords
	}
	dense := make([]datastructure.Coordinate, 0, len(coords))
	dense = append(dense, coords[0])
	for i := 1; i < len(coords); i++ {
		a, b := coords[i-1], coords[i]
		segLen := CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
		n := int(math.Ceil(segLen / stepMeters))
		for j := 1; j < n; j++ {
			f := float64(j) / float64(n)
			dense = append(dense, datastructure.NewCoordinate(a.Lat+(b.Lat-a.Lat)*f, a.Lon+(b.Lon-a.Lon)*f))
		}
		dense = append(dense, b)
	}
	return dense
}
