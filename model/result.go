package model

// Recommendation is a recommended movie and its weighted-path distance from the start movie
type Recommendation struct {
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
}

// RecommendationResult is ordered by ascending distance
type RecommendationResult []Recommendation

// Titles returns the recommended titles in result order
func (r RecommendationResult) Titles() []string {
	titles := make([]string, len(r))
	for i, rec := range r {
		titles[i] = rec.Title
	}
	return titles
}

// SearchResult is a title search hit
type SearchResult struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
}
