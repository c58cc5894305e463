package osmparser

import (
	"testing"

	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestParseWidth(t *testing.T) {
	tests := []struct {
		name    string
		tags    map[string]string
		want    float64
		missing bool
	}{
		{name: "plain", tags: map[string]string{"width": "3.5"}, want: 3.5},
		{name: "negative", tags: map[string]string{"width": "-3"}, want: 3},
		{name: "unit", tags: map[string]string{"width": "4 m"}, want: 4},
		{name: "absent", tags: map[string]string{}, missing: true},
		{name: "garbage", tags: map[string]string{"width": "narrow"}, missing: true},
		{name: "empty", tags: map[string]string{"width": ""}, missing: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWidth(tt.tags)
			if tt.missing {
				assert.True(t, got.IsMissing())
				return
			}
			v, ok := got.Get()
			assert.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParseLanes(t *testing.T) {
	tags := map[string]string{
		"lanes":          "3",
		"lanes:forward":  "2",
		"lanes:backward": "1;2",
	}
	assert.Equal(t, datastructure.Some(3), ParseLanes(tags, "lanes"))
	assert.Equal(t, datastructure.Some(2), ParseLanes(tags, "lanes:forward"))
	assert.True(t, ParseLanes(tags, "lanes:backward").IsMissing())
	assert.True(t, ParseLanes(tags, "lanes:both_ways").IsMissing())
}

func TestParseOneway(t *testing.T) {
	tests := []struct {
		tags    map[string]string
		oneway  bool
		reverse bool
	}{
		{map[string]string{"oneway": "yes"}, true, false},
		{map[string]string{"oneway": "-1"}, true, true},
		{map[string]string{"oneway": "no", "junction": "roundabout"}, false, false},
		{map[string]string{"junction": "roundabout"}, true, false},
		{map[string]string{"highway": "motorway"}, true, false},
		{map[string]string{"highway": "residential"}, false, false},
		{map[string]string{"oneway": "reversible"}, false, false},
	}
	for _, tt := range tests {
		oneway, reverse := ParseOneway(tt.tags)
		assert.Equal(t, tt.oneway, oneway, "%v", tt.tags)
		assert.Equal(t, tt.reverse, reverse, "%v", tt.tags)
	}
}

func TestNormalizeTagsRoundTrip(t *testing.T) {
	way := datastructure.NewRawWay(1, []int64{1, 2}, map[string]string{
		"highway":       "primary",
		"width":         "-3",
		"lanes":         "two",
		"lanes:forward": "1",
	}, true, false)

	tags := NormalizeTags(way)
	assert.Equal(t, datastructure.Some(3.0), tags.Width)
	assert.True(t, tags.Lanes.IsMissing())
	assert.True(t, tags.Oneway)
	assert.Equal(t, "primary", tags.Highway)

	again := NormalizeTags(datastructure.NewRawWay(1, []int64{1, 2}, tags.ToMap(), tags.Oneway, tags.Reverse))
	assert.Equal(t, tags, again)
}
