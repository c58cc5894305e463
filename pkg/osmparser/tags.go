package osmparser

import (
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
)

var (
	onewayYes = map[string]struct{}{
		"yes":  {},
		"true": {},
		"1":    {},
	}
	onewayReverse = map[string]struct{}{
		"-1":      {},
		"reverse": {},
	}
	onewayNo = map[string]struct{}{
		"no":          {},
		"false":       {},
		"0":           {},
		"reversible":  {},
		"alternating": {},
	}
	onewayJunction = map[string]struct{}{
		"roundabout": {},
		"circular":   {},
	}
	onewayHighway = map[string]struct{}{
		"motorway": {},
	}
)

// ParseOneway resolves the direction of travel from the oneway, junction and
// highway tags. reverse is only set for oneway ways drawn against their
// direction of travel.
func ParseOneway(tags map[string]string) (oneway, reverse bool) {
	value := strings.ToLower(strings.TrimSpace(tags["oneway"]))
	if _, ok := onewayYes[value]; ok {
		return true, false
	}
	if _, ok := onewayReverse[value]; ok {
		return true, true
	}
	if _, ok := onewayNo[value]; ok {
		return false, false
	}
	if _, ok := onewayJunction[tags["junction"]]; ok {
		return true, false
	}
	if _, ok := onewayHighway[tags["highway"]]; ok {
		return true, false
	}
	return false, false
}

// ParseWidth parses the width tag in meters. An optional trailing "m" unit is
// accepted. Negative widths are taken as their absolute value.
func ParseWidth(tags map[string]string) datastructure.Optional[float64] {
	raw, ok := tags["width"]
	if !ok {
		return datastructure.Missing[float64]()
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "m"))
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(width) || math.IsInf(width, 0) {
		return datastructure.Missing[float64]()
	}
	return datastructure.Some(math.Abs(width))
}

// ParseLanes parses tagName as a lane count.
func ParseLanes(tags map[string]string, tagName string) datastructure.Optional[int] {
	raw, ok := tags[tagName]
	if !ok {
		return datastructure.Missing[int]()
	}
	lanes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return datastructure.Missing[int]()
	}
	return datastructure.Some(lanes)
}

// NormalizeTags converts the raw tag map of a way into the typed tag set stored
// on real edges.
func NormalizeTags(way datastructure.RawWay) datastructure.EdgeTags {
	return datastructure.EdgeTags{
		Width:         ParseWidth(way.Tags),
		Lanes:         ParseLanes(way.Tags, "lanes"),
		LanesForward:  ParseLanes(way.Tags, "lanes:forward"),
		LanesBackward: ParseLanes(way.Tags, "lanes:backward"),
		LanesBothWays: ParseLanes(way.Tags, "lanes:both_ways"),
		Oneway:        way.Oneway,
		Reverse:       way.Reverse,
		Highway:       way.Tags["highway"],
		Name:          way.Tags["name"],
	}
}
