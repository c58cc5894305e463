package shadow

// TraceSegment walks way from position start in direction dir (+1 or -1) and
// returns the node ids up to and including the next significant node.
// Circular ways wrap around, so a trace may end at its own start node.
func TraceSegment(way PrimitiveWay, start, dir int, sig SignificanceSet) ([]int64, bool) {
	if dir != 1 && dir != -1 {
		return nil, false
	}
	n := len(way.Nodes)
	if start < 0 || start >= n {
		return nil, false
	}

	if !way.Circular {
		path := []int64{way.Nodes[start]}
		for idx := start + dir; idx >= 0 && idx < n; idx += dir {
			path = append(path, way.Nodes[idx])
			if sig.Contains(way.Nodes[idx]) {
				return path, true
			}
		}
		return nil, false
	}

	ring := way.Nodes[:n-1]
	m := len(ring)
	p := start % m
	path := []int64{ring[p]}
	for k := 1; k <= m; k++ {
		q := ((p+dir*k)%m + m) % m
		path = append(path, ring[q])
		if sig.Contains(ring[q]) {
			return path, true
		}
	}
	return nil, false
}

// TraceFrom traces from the node startID. When startID occurs more than once in
// the way, every occurrence is tried and the shortest trace wins.
func TraceFrom(way PrimitiveWay, startID int64, dir int, sig SignificanceSet) ([]int64, bool) {
	var best []int64
	for i, id := range way.Nodes {
		if id != startID {
			continue
		}
		path, ok := TraceSegment(way, i, dir, sig)
		if !ok || len(path) < 2 {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best, best != nil
}
