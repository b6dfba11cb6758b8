package model

// Node is a movie vertex with the attributes needed for filtering and rendering
type Node struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Genre  string  `json:"genre"`
	Year   int     `json:"year"`
}

// Edge is an undirected weighted connection between two movies.
// Weight encodes dissimilarity, lower means more similar.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Subgraph is a small renderable graph handed to plotting consumers
type Subgraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// HasNode reports whether the subgraph contains title
func (s *Subgraph) HasNode(title string) bool {
	for _, n := range s.Nodes {
		if n.Title == title {
			return true
		}
	}
	return false
}

// Degree returns the number of subgraph edges touching title
func (s *Subgraph) Degree(title string) int {
	degree := 0
	for _, e := range s.Edges {
		if e.Source == title || e.Target == title {
			degree++
		}
	}
	return degree
}
