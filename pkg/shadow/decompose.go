package shadow

import (
	"github.com/lintang-b-s/shadowgraph/pkg/datastructure"
)

// PrimitiveWay is a piece of a raw way that is either simple (all node ids
// distinct) or circular (only the first and last node ids are equal).
type PrimitiveWay struct {
	WayID    int64
	RawIndex int
	Nodes    []int64
	Circular bool
	Oneway   bool
	Reverse  bool
}

type Decomposition struct {
	Ways []PrimitiveWay
	// LoopNodes are nodes repeated inside the raw way, excluding the closing
	// node of a circular way.
	LoopNodes []int64
	// DuplicateNodes counts consecutive repeated node ids that were collapsed.
	DuplicateNodes int
}

// DecomposeWay splits way into primitive ways. Consecutive primitive ways share
// their boundary node, so together they cover the raw node sequence.
//
// [10,20,30,40,50,30] becomes [10,20,30] and [30,40,50,30].
func DecomposeWay(way datastructure.RawWay, rawIndex int) (Decomposition, error) {
	var dec Decomposition
	if len(way.Nodes) < 2 {
		return dec, newStructuralError(KindDegenerateWay, way.ID, 0)
	}

	nodes := make([]int64, 0, len(way.Nodes))
	for i, id := range way.Nodes {
		if i > 0 && id == way.Nodes[i-1] {
			dec.DuplicateNodes++
			continue
		}
		nodes = append(nodes, id)
	}
	if len(nodes) < 2 {
		return dec, newStructuralError(KindDegenerateWay, way.ID, nodes[0])
	}

	closed := nodes[0] == nodes[len(nodes)-1]
	emit := func(part []int64, circular bool) {
		cp := make([]int64, len(part))
		copy(cp, part)
		dec.Ways = append(dec.Ways, PrimitiveWay{
			WayID:    way.ID,
			RawIndex: rawIndex,
			Nodes:    cp,
			Circular: circular,
			Oneway:   way.Oneway,
			Reverse:  way.Reverse,
		})
	}

	runStart := 0
	seen := map[int64]int{nodes[0]: 0}
	loopSeen := make(map[int64]struct{})
	for i := 1; i < len(nodes); i++ {
		id := nodes[i]
		j, repeated := seen[id]
		if !repeated {
			seen[id] = i
			continue
		}

		closing := closed && i == len(nodes)-1 && j == 0
		if !closing {
			if _, ok := loopSeen[id]; !ok {
				loopSeen[id] = struct{}{}
				dec.LoopNodes = append(dec.LoopNodes, id)
			}
		}
		if j > runStart {
			emit(nodes[runStart:j+1], false)
		}
		emit(nodes[j:i+1], true)

		runStart = i
		seen = map[int64]int{id: i}
	}
	if len(nodes)-1 > runStart {
		emit(nodes[runStart:], false)
	}
	return dec, nil
}
