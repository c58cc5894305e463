package geo

import (
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
)

const (
	DOUGLAS_PEUCKER_THRESHOLDS = 7.0 // 7 meter
)

type span struct {
	from, to int
}

// https://cartography-playground.gitlab.io/playgrounds/douglas-peucker-algorithm/

// RamesDouglasPeucker drops every point closer than threshold meters to the
// simplified line. Endpoints are always kept.
func RamesDouglasPeucker(coords []datastructure.Coordinate, threshold float64) []datastructure.Coordinate {
	n := len(coords)
	if n < 3 {
		return coords
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	spans := []span{{0, n - 1}}
	for len(spans) > 0 {
		s := spans[len(spans)-1]
		spans = spans[:len(spans)-1]

		split, splitDist := -1, threshold
		for i := s.from + 1; i < s.to; i++ {
			if d := perpendicularDistance(coords[s.from], coords[s.to], coords[i]); d > splitDist {
				split, splitDist = i, d
			}
		}
		if split < 0 {
			continue
		}
		keep[split] = true
		spans = append(spans, span{s.from, split}, span{split, s.to})
	}

	simplified := make([]datastructure.Coordinate, 0, n)
	for i, c := range coords {
		if keep[i] {
			simplified = append(simplified, c)
		}
	}
	return simplified
}
