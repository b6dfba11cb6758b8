package graph

import (
	"github.com/siherrmann/moviegraph/model"
)

// Induced returns the subgraph over titles containing only the edges whose
// endpoints are both in titles. Nodes keep the order of titles, repeated
// titles are ignored. An edge's source is the endpoint listed first.
func Induced(g *SimilarityGraph, titles []string) (*model.Subgraph, error) {
	sub := &model.Subgraph{
		Nodes: make([]model.Node, 0, len(titles)),
		Edges: []model.Edge{},
	}

	members := make([]int, 0, len(titles))
	seen := make(map[int]bool, len(titles))
	for _, title := range titles {
		i, ok := g.index[title]
		if !ok {
			return nil, model.UnknownMovie(title)
		}
		if seen[i] {
			continue
		}

		// Connect to the members added before this one
		for _, earlier := range members {
			if w, ok := g.weight(earlier, i); ok {
				sub.Edges = append(sub.Edges, model.Edge{
					Source: g.nodes[earlier].Title,
					Target: title,
					Weight: w,
				})
			}
		}

		seen[i] = true
		members = append(members, i)
		sub.Nodes = append(sub.Nodes, g.nodes[i])
	}

	return sub, nil
}
