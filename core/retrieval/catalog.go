package retrieval

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/moviegraph/core/graph"
	"github.com/siherrmann/moviegraph/core/weight"
	"github.com/siherrmann/moviegraph/model"
)

// Catalog is an immutable snapshot of the movie records and the similarity
// graph derived from them. Every engine call receives the catalog it reads,
// so a new snapshot can be built and swapped in while queries run on the old one.
type Catalog struct {
	ID      uuid.UUID
	BuiltAt time.Time
	Policy  string
	Graph   *graph.SimilarityGraph

	records map[string]model.Movie
	titles  []string
}

// NewCatalog validates records and builds their similarity graph.
// The records are copied, later changes to the input do not affect the catalog.
func NewCatalog(ctx context.Context, records map[string]*model.Movie, policy *weight.Policy, config model.BuildConfig) (*Catalog, error) {
	if policy == nil {
		policy = weight.Default()
	}

	g, err := graph.Build(ctx, records, policy, config)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		ID:      uuid.New(),
		BuiltAt: time.Now(),
		Policy:  policy.Name,
		Graph:   g,
		records: make(map[string]model.Movie, len(records)),
		titles:  make([]string, 0, len(records)),
	}
	for title, m := range records {
		c.records[title] = *m
		c.titles = append(c.titles, title)
	}
	sort.Strings(c.titles)

	return c, nil
}

// Len returns the number of movies in the catalog
func (c *Catalog) Len() int {
	return len(c.titles)
}

// Movie returns a copy of the record for title
func (c *Catalog) Movie(title string) (model.Movie, bool) {
	m, ok := c.records[title]
	return m, ok
}

// Titles returns all titles in ascending order
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.titles))
	copy(titles, c.titles)
	return titles
}

// Years returns the distinct release years in ascending order
func (c *Catalog) Years() []int {
	seen := make(map[int]bool)
	years := []int{}
	for _, m := range c.records {
		if !seen[m.Year] {
			seen[m.Year] = true
			years = append(years, m.Year)
		}
	}
	sort.Ints(years)
	return years
}
