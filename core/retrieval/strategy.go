package retrieval

import (
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/siherrmann/moviegraph/model"
)

// SampleStrategy picks the movies shown on a landing page.
// It is independent of the recommendation engine.
type SampleStrategy interface {
	Sample(c *Catalog, n int) []model.Movie
}

// RandomSampleStrategy picks a uniform random sample without replacement
type RandomSampleStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSampleStrategy creates a random strategy with a fixed seed
func NewRandomSampleStrategy(seed uint64) *RandomSampleStrategy {
	return &RandomSampleStrategy{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Sample returns up to n distinct movies
func (s *RandomSampleStrategy) Sample(c *Catalog, n int) []model.Movie {
	titles := c.Titles()
	n = min(max(n, 0), len(titles))

	s.mu.Lock()
	// Partial Fisher-Yates over the sorted titles
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(titles)-i)
		titles[i], titles[j] = titles[j], titles[i]
	}
	s.mu.Unlock()

	movies := make([]model.Movie, n)
	for i := range movies {
		movies[i] = c.records[titles[i]]
	}
	return movies
}

// MostRecentStrategy picks the latest releases, newest first.
// Movies without a release date are skipped. If ReleaseYear is set only
// releases from that year are considered.
type MostRecentStrategy struct {
	ReleaseYear int
}

// Sample returns up to n movies ordered by release date, newest first, then by title
func (s MostRecentStrategy) Sample(c *Catalog, n int) []model.Movie {
	movies := []model.Movie{}
	for _, title := range c.titles {
		m := c.records[title]
		if m.ReleaseDate.IsZero() {
			continue
		}
		if s.ReleaseYear != 0 && m.ReleaseDate.Year() != s.ReleaseYear {
			continue
		}
		movies = append(movies, m)
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].ReleaseDate.After(movies[j].ReleaseDate)
	})

	if n < 0 {
		n = 0
	}
	if len(movies) > n {
		movies = movies[:n]
	}
	return movies
}

// Paginate splits items into pages of perPage items, the last page may be shorter
func Paginate[T any](items []T, perPage int) [][]T {
	if perPage <= 0 || len(items) == 0 {
		return [][]T{}
	}

	pages := make([][]T, 0, (len(items)+perPage-1)/perPage)
	for start := 0; start < len(items); start += perPage {
		end := min(start+perPage, len(items))
		pages = append(pages, items[start:end])
	}
	return pages
}
