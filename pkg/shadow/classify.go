package shadow

// SignificanceSet holds the osm node ids that become graph vertices.
type SignificanceSet map[int64]struct{}

func (s SignificanceSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s SignificanceSet) add(id int64) {
	s[id] = struct{}{}
}

// Classify marks a node significant when
//   - it belongs to more than one primitive way,
//   - it ends a primitive way and has at most one distinct neighbor,
//   - it is a loop node of its raw way.
//
// A circular way left without any significant node gets its first node marked,
// otherwise the ring would vanish from the graph.
func Classify(ways []PrimitiveWay, loopNodes []int64) SignificanceSet {
	sig := make(SignificanceSet)

	wayCount := make(map[int64]int)
	neighbors := make(map[int64]map[int64]struct{})
	addNeighbor := func(a, b int64) {
		if neighbors[a] == nil {
			neighbors[a] = make(map[int64]struct{}, 2)
		}
		neighbors[a][b] = struct{}{}
	}

	for _, w := range ways {
		distinct := w.Nodes
		if w.Circular {
			distinct = w.Nodes[:len(w.Nodes)-1]
		}
		for _, id := range distinct {
			wayCount[id]++
		}
		for i := 1; i < len(w.Nodes); i++ {
			addNeighbor(w.Nodes[i-1], w.Nodes[i])
			addNeighbor(w.Nodes[i], w.Nodes[i-1])
		}
	}

	for id, count := range wayCount {
		if count > 1 {
			sig.add(id)
		}
	}
	for _, w := range ways {
		for _, end := range [2]int64{w.Nodes[0], w.Nodes[len(w.Nodes)-1]} {
			if len(neighbors[end]) <= 1 {
				sig.add(end)
			}
		}
	}
	for _, id := range loopNodes {
		sig.add(id)
	}

	for _, w := range ways {
		if !w.Circular {
			continue
		}
		anchored := false
		for _, id := range w.Nodes {
			if sig.Contains(id) {
				anchored = true
				break
			}
		}
		if !anchored {
			sig.add(w.Nodes[0])
		}
	}
	return sig
}
