package graph

import (
	"container/heap"
	"context"
	"math"

	"github.com/siherrmann/moviegraph/model"
)

// TraversalResult contains a node and its shortest weighted distance from the source
type TraversalResult struct {
	Node     model.Node
	Distance float64
	Path     []string // Path from source to this node
}

// queueItem is a tentative distance in the Dijkstra frontier
type queueItem struct {
	node     int
	distance float64
	seq      int
}

// frontier is a min-heap on distance. Equal distances pop in push order.
type frontier []queueItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].distance != f[j].distance {
		return f[i].distance < f[j].distance
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(queueItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}

// ShortestPaths runs single-source Dijkstra from source and returns every
// reachable node, the source first, in the order the nodes were finalized.
// Distances are therefore non-decreasing across the returned slice.
func ShortestPaths(ctx context.Context, g *SimilarityGraph, source string) ([]*TraversalResult, error) {
	src, ok := g.index[source]
	if !ok {
		return nil, model.UnknownMovie(source)
	}

	n := len(g.nodes)
	dist := make([]float64, n)
	prev := make([]int, n)
	done := make([]bool, n)
	paths := make([][]string, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0

	seq := 0
	f := &frontier{{node: src, distance: 0, seq: seq}}
	results := make([]*TraversalResult, 0, n)

	for f.Len() > 0 {
		if len(results)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := heap.Pop(f).(queueItem)
		if done[current.node] {
			continue // Stale entry
		}
		done[current.node] = true

		if prev[current.node] < 0 {
			paths[current.node] = []string{g.nodes[current.node].Title}
		} else {
			parent := paths[prev[current.node]]
			path := make([]string, len(parent), len(parent)+1)
			copy(path, parent)
			paths[current.node] = append(path, g.nodes[current.node].Title)
		}

		results = append(results, &TraversalResult{
			Node:     g.nodes[current.node],
			Distance: current.distance,
			Path:     paths[current.node],
		})

		for _, he := range g.adj[current.node] {
			if done[he.to] {
				continue
			}
			candidate := current.distance + he.weight
			if candidate < dist[he.to] {
				dist[he.to] = candidate
				prev[he.to] = current.node
				seq++
				heap.Push(f, queueItem{node: he.to, distance: candidate, seq: seq})
			}
		}
	}

	return results, nil
}
