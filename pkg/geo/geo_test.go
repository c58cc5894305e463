package geo

import (
	"testing"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDouglasPecker(t *testing.T) {
	lineCoords := []datastructure.Coordinate{
		{Lat: -7.565837, Lon: 110.831586},
		{Lat: -7.566063, Lon: 110.832379},
		{Lat: -7.566406, Lon: 110.833232},
	}

	simplified := RamesDouglasPeucker(lineCoords, DOUGLAS_PEUCKER_THRESHOLDS)
	assert.LessOrEqual(t, len(simplified), 2)
	assert.Equal(t, lineCoords[0], simplified[0])
}

func TestSignedArea(t *testing.T) {
	ccw := []datastructure.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 0}}
	// {lat, lon}: (0,0) -> (0,1) -> (1,1) walks east then north.
	assert.Greater(t, SignedArea(ccw), 0.0)

	cw := []datastructure.Coordinate{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 0}, {Lat: 1, Lon: 1}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 0}}
	assert.Less(t, SignedArea(cw), 0.0)

	assert.InDelta(t, SignedArea(ccw), -SignedArea(cw), 1e-12)
	assert.Equal(t, 0.0, SignedArea(ccw[:2]))
}

func TestPointAlongPolyline(t *testing.T) {
	line := []datastructure.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
	mid := PointAlongPolyline(line, 0.5)
	assert.InDelta(t, 0.0, mid.Lat, 1e-9)
	assert.InDelta(t, 0.5, mid.Lon, 1e-9)

	assert.Equal(t, line[0], PointAlongPolyline(line, -1))
	assert.Equal(t, line[1], PointAlongPolyline(line, 2))
}

func TestProjectPointToPolyline(t *testing.T) {
	line := []datastructure.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
	proj, dist := ProjectPointToPolyline(datastructure.NewCoordinate(0.001, 0.5), line)
	assert.InDelta(t, 0.0, proj.Lat, 1e-9)
	assert.InDelta(t, 0.5, proj.Lon, 1e-9)
	assert.InDelta(t, 111.2, dist, 1.0)
}

func TestPolylineLength(t *testing.T) {
	line := []datastructure.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}, {Lat: 0, Lon: 0.002}}
	assert.InDelta(t, 222.4, PolylineLength(line), 1.0)
}

func TestDensifyPolyline(t *testing.T) {
	line := []datastructure.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.002}}
	dense := DensifyPolyline(line, 50)
	require.Len(t, dense, 6)
	assert.Equal(t, line[0], dense[0])
	assert.Equal(t, line[1], dense[len(dense)-1])
	for i := 1; i < len(dense); i++ {
		assert.LessOrEqual(t, PolylineLength(dense[i-1:i+1]), 50.0)
	}

	assert.Equal(t, line, DensifyPolyline(line, 0))
	same := []datastructure.Coordinate{{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}}
	assert.Equal(t, same, DensifyPolyline(same, 50))
}
