// Package graph holds the movie similarity graph, its builder and the
// shortest-path search over it.
//
// A graph built from a catalog is complete: every pair of distinct movies is
// connected by one undirected edge, so construction costs O(n²) time and
// memory in the number of movies. This quadratic cost is the scalability
// limit of the whole system. Sparse graphs can be created with FromEdges and
// are searched by the same general Dijkstra implementation.
//
// A SimilarityGraph is never mutated after construction and is safe for
// concurrent readers.
package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/siherrmann/moviegraph/model"
)

// halfEdge is one direction of an undirected edge in an adjacency list
type halfEdge struct {
	to     int
	weight float64
}

// SimilarityGraph is an immutable undirected weighted graph over movie titles
type SimilarityGraph struct {
	nodes     []model.Node
	index     map[string]int
	adj       [][]halfEdge // sorted by target index
	edgeCount int
}

func newGraph(nodes []model.Node) (*SimilarityGraph, error) {
	g := &SimilarityGraph{
		nodes: make([]model.Node, len(nodes)),
		index: make(map[string]int, len(nodes)),
		adj:   make([][]halfEdge, len(nodes)),
	}
	copy(g.nodes, nodes)

	for i, n := range g.nodes {
		if _, exists := g.index[n.Title]; exists {
			return nil, fmt.Errorf("duplicate node %q", n.Title)
		}
		g.index[n.Title] = i
	}

	return g, nil
}

// FromEdges creates a graph from explicit nodes and undirected edges.
// It rejects duplicate nodes, unknown endpoints, self loops, duplicate edges
// and weights that are negative or NaN.
func FromEdges(nodes []model.Node, edges []model.Edge) (*SimilarityGraph, error) {
	g, err := newGraph(nodes)
	if err != nil {
		return nil, err
	}

	seen := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		from, ok := g.index[e.Source]
		if !ok {
			return nil, fmt.Errorf("edge %q-%q: unknown node %q", e.Source, e.Target, e.Source)
		}
		to, ok := g.index[e.Target]
		if !ok {
			return nil, fmt.Errorf("edge %q-%q: unknown node %q", e.Source, e.Target, e.Target)
		}
		if from == to {
			return nil, fmt.Errorf("edge %q-%q: self loop", e.Source, e.Target)
		}
		if err := checkWeight(e.Weight); err != nil {
			return nil, fmt.Errorf("edge %q-%q: %w", e.Source, e.Target, err)
		}

		key := [2]int{min(from, to), max(from, to)}
		if seen[key] {
			return nil, fmt.Errorf("edge %q-%q: duplicate edge", e.Source, e.Target)
		}
		seen[key] = true

		g.adj[from] = append(g.adj[from], halfEdge{to: to, weight: e.Weight})
		g.adj[to] = append(g.adj[to], halfEdge{to: from, weight: e.Weight})
		g.edgeCount++
	}

	for i := range g.adj {
		sort.Slice(g.adj[i], func(a, b int) bool { return g.adj[i][a].to < g.adj[i][b].to })
	}

	return g, nil
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || w < 0 {
		return fmt.Errorf("weight must be a non-negative number, got %v", w)
	}
	return nil
}

// NodeCount returns the number of movies in the graph
func (g *SimilarityGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges
func (g *SimilarityGraph) EdgeCount() int {
	return g.edgeCount
}

// HasNode reports whether title is a node of the graph
func (g *SimilarityGraph) HasNode(title string) bool {
	_, ok := g.index[title]
	return ok
}

// Node returns the node attributes of title
func (g *SimilarityGraph) Node(title string) (model.Node, bool) {
	i, ok := g.index[title]
	if !ok {
		return model.Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns a copy of all nodes in graph order
func (g *SimilarityGraph) Nodes() []model.Node {
	nodes := make([]model.Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Weight returns the weight of the edge between a and b
func (g *SimilarityGraph) Weight(a, b string) (float64, bool) {
	from, ok := g.index[a]
	if !ok {
		return 0, false
	}
	to, ok := g.index[b]
	if !ok {
		return 0, false
	}
	return g.weight(from, to)
}

func (g *SimilarityGraph) weight(from, to int) (float64, bool) {
	list := g.adj[from]
	i := sort.Search(len(list), func(i int) bool { return list[i].to >= to })
	if i < len(list) && list[i].to == to {
		return list[i].weight, true
	}
	return 0, false
}

// Neighbors returns the titles adjacent to title in graph order
func (g *SimilarityGraph) Neighbors(title string) ([]string, error) {
	i, ok := g.index[title]
	if !ok {
		return nil, model.UnknownMovie(title)
	}

	neighbors := make([]string, len(g.adj[i]))
	for k, he := range g.adj[i] {
		neighbors[k] = g.nodes[he.to].Title
	}
	return neighbors, nil
}

// Edges returns every undirected edge once, the source preceding the target in graph order
func (g *SimilarityGraph) Edges() []model.Edge {
	edges := make([]model.Edge, 0, g.edgeCount)
	for from, list := range g.adj {
		for _, he := range list {
			if he.to <= from {
				continue
			}
			edges = append(edges, model.Edge{
				Source: g.nodes[from].Title,
				Target: g.nodes[he.to].Title,
				Weight: he.weight,
			})
		}
	}
	return edges
}
