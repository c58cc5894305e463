package datastructure

import (
	"github.com/lintang-b-s/shadowgraph/pkg/util"
)

// Components is the strongly connected component decomposition of a graph.
type Components struct {
	// Of maps every vertex to the id of its component.
	Of    []int32
	Sizes []int
	// CondensationAdj[c] lists the components reachable over one edge from c.
	CondensationAdj [][]int32
}

func (c Components) Count() int {
	return len(c.Sizes)
}

func (c Components) Largest() int {
	largest := 0
	for _, size := range c.Sizes {
		largest = util.Max(largest, size)
	}
	return largest
}

// StronglyConnectedComponents runs kosaraju over the current graph.
func (g *ShadowGraph) StronglyConnectedComponents() Components {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := len(g.vertices)
	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			g.dfs(Index(v), &order, visited, false)
		}
	}
	order = util.ReverseG[Index](order)

	visited = make([]bool, n)
	comps := Components{Of: make([]int32, n), Sizes: make([]int, 0)}
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]Index, 0)
		g.dfs(v, &component, visited, true)
		id := int32(len(comps.Sizes))
		for _, u := range component {
			comps.Of[u] = id
		}
		comps.Sizes = append(comps.Sizes, len(component))
	}

	comps.CondensationAdj = make([][]int32, len(comps.Sizes))
	seen := make(map[[2]int32]struct{})
	for _, e := range g.edges {
		from, to := comps.Of[e.From], comps.Of[e.To]
		if from == to {
			continue
		}
		if _, ok := seen[[2]int32{from, to}]; ok {
			continue
		}
		seen[[2]int32{from, to}] = struct{}{}
		comps.CondensationAdj[from] = append(comps.CondensationAdj[from], to)
	}
	return comps
}

func (g *ShadowGraph) dfs(v Index, output *[]Index, visited []bool, reversed bool) {
	visited[v] = true

	if !reversed {
		for _, eID := range g.outEdges[v] {
			to := g.edges[eID].To
			if !visited[to] {
				g.dfs(to, output, visited, reversed)
			}
		}
	} else {
		for _, eID := range g.inEdges[v] {
			from := g.edges[eID].From
			if !visited[from] {
				g.dfs(from, output, visited, reversed)
			}
		}
	}

	*output = append(*output, v)
}
