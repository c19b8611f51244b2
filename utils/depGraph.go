package utils

import (
	"container/list"
)

// DepGraph is a dependency graph over dense node ids [0, v). An edge s -> t
// means s has to complete before t.
type DepGraph struct {
	adjList [][]int
	v       int
}

func NewDepGraph(v int) *DepGraph {
	g := &DepGraph{
		adjList: make([][]int, v),
		v:       v,
	}

	for i := 0; i < v; i++ {
		g.adjList[i] = make([]int, 0)
	}

	return g
}

func (g *DepGraph) Len() int {
	return g.v
}

func (g *DepGraph) AddEdge(s int, t int) {
	if s == t {
		return
	}
	g.adjList[s] = append(g.adjList[s], t)
}

// IsCyclic reports whether the graph has a cycle, including self loops
// introduced through longer paths.
func (g *DepGraph) IsCyclic() bool {
	return len(g.TopoSort()) != g.v
}

// TopoSort returns the nodes in a topological order (Kahn). Nodes on a cycle
// are left out, so the result is shorter than Len() iff the graph is cyclic.
func (g *DepGraph) TopoSort() []int {
	result := make([]int, 0, g.v)

	inDegree := make([]int, g.v)

	for i := 0; i < g.v; i++ {
		for _, w := range g.adjList[i] {
			inDegree[w]++
		}
	}

	queue := list.New()

	for i := 0; i < g.v; i++ {
		if inDegree[i] == 0 {
			queue.PushBack(i)
		}
	}

	for queue.Len() != 0 {
		e := queue.Front()
		i := e.Value.(int)
		queue.Remove(e)

		result = append(result, i)
		for _, k := range g.adjList[i] {
			inDegree[k]--
			if inDegree[k] == 0 {
				queue.PushBack(k)
			}
		}
	}

	return result
}

// Levels groups the nodes by their longest distance from a source node.
// Nil is returned for a cyclic graph.
func (g *DepGraph) Levels() [][]int {
	order := g.TopoSort()
	if len(order) != g.v {
		return nil
	}
	depth := make([]int, g.v)
	maxDepth := -1
	for _, i := range order {
		for _, k := range g.adjList[i] {
			if depth[i]+1 > depth[k] {
				depth[k] = depth[i] + 1
			}
		}
	}
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}
	levels := make([][]int, maxDepth+1)
	for i, d := range depth {
		levels[d] = append(levels[d], i)
	}
	return levels
}
