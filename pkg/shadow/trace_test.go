package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sigOf(ids ...int64) SignificanceSet {
	s := make(SignificanceSet)
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func TestTraceSegmentSimple(t *testing.T) {
	way := PrimitiveWay{WayID: 1, Nodes: []int64{1, 2, 3, 4, 5}}
	sig := sigOf(1, 3, 5)

	path, ok := TraceSegment(way, 0, 1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, path)

	path, ok = TraceSegment(way, 2, 1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{3, 4, 5}, path)

	path, ok = TraceSegment(way, 4, -1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{5, 4, 3}, path)

	_, ok = TraceSegment(way, 4, 1, sig)
	assert.False(t, ok)
	_, ok = TraceSegment(way, 0, -1, sig)
	assert.False(t, ok)
}

func TestTraceSegmentNoDestination(t *testing.T) {
	way := PrimitiveWay{WayID: 1, Nodes: []int64{1, 2, 3}}
	_, ok := TraceSegment(way, 0, 1, sigOf(1))
	assert.False(t, ok)

	_, ok = TraceSegment(way, 0, 2, sigOf(1, 3))
	assert.False(t, ok)
}

func TestTraceSegmentCircularWraps(t *testing.T) {
	way := PrimitiveWay{WayID: 1, Nodes: []int64{1, 2, 3, 4, 1}, Circular: true}

	path, ok := TraceSegment(way, 2, 1, sigOf(1, 3))
	assert.True(t, ok)
	assert.Equal(t, []int64{3, 4, 1}, path)

	path, ok = TraceSegment(way, 0, -1, sigOf(1, 3))
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 4, 3}, path)

	// a single significant node traces back to itself
	path, ok = TraceSegment(way, 0, 1, sigOf(1))
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3, 4, 1}, path)

	_, ok = TraceSegment(way, 1, 1, sigOf())
	assert.False(t, ok)
}

func TestTraceFromCircularClosingNode(t *testing.T) {
	way := PrimitiveWay{WayID: 1, Nodes: []int64{1, 2, 3, 4, 1}, Circular: true}
	sig := sigOf(1, 2)

	// 1 sits at both ends of the node list, both occurrences resolve to the
	// same place on the ring
	path, ok := TraceFrom(way, 1, 1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 2}, path)

	path, ok = TraceFrom(way, 1, -1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 4, 3, 2}, path)

	_, ok = TraceFrom(way, 99, 1, sig)
	assert.False(t, ok)
}

func TestTraceFromPrefersShorterOccurrence(t *testing.T) {
	sig := sigOf(1, 3, 6)

	// second occurrence of 1 reaches 6 in one step, the first needs two to reach 3
	way := PrimitiveWay{WayID: 1, Nodes: []int64{5, 1, 2, 3, 1, 6}}
	path, ok := TraceFrom(way, 1, 1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 6}, path)

	// only the second occurrence has a significant node behind it
	path, ok = TraceFrom(way, 1, -1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 3}, path)

	// the shorter trace is at the first occurrence
	way = PrimitiveWay{WayID: 2, Nodes: []int64{1, 3, 4, 5, 1, 2, 6}}
	path, ok = TraceFrom(way, 1, 1, sig)
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 3}, path)
}
