package datastructure

import (
	"github.com/twpayne/go-polyline"
)

type Index int32

const InvalidIndex Index = -1

type Coordinate struct {
	Lat float64
	Lon float64
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

func (c Coordinate) Equal(other Coordinate) bool {
	return c.Lat == other.Lat && c.Lon == other.Lon
}

// CreatePolyline encodes coords with the google polyline algorithm.
func CreatePolyline(coords []Coordinate) string {
	s := make([][]float64, 0, len(coords))
	for _, c := range coords {
		s = append(s, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(s))
}

func DecodePolyline(encoded string) ([]Coordinate, error) {
	s, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, 0, len(s))
	for _, c := range s {
		coords = append(coords, NewCoordinate(c[0], c[1]))
	}
	return coords, nil
}
