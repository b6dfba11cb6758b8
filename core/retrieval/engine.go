package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/siherrmann/moviegraph/core/graph"
	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/metrics"
	"github.com/siherrmann/moviegraph/model"
)

var errNoCatalog = errors.New("catalog is not loaded")

// Engine answers recommendation queries against a Catalog.
// It holds no catalog state and is safe for concurrent use.
type Engine struct {
	log     *slog.Logger
	metrics metrics.Recorder
}

// NewEngine creates a new recommendation engine
func NewEngine(logger *slog.Logger, recorder metrics.Recorder) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if recorder == nil {
		recorder = metrics.Default()
	}
	return &Engine{
		log:     logger,
		metrics: recorder,
	}
}

// Recommend returns the config.Limit movies closest to startTitle by
// shortest weighted-path distance, nearest first. A nil config uses
// model.DefaultQueryConfig. The start movie is never part of the result and
// a year filter keeps only movies from exactly that year. Ties in distance
// keep the order in which the shortest-path search finalized the movies.
func (e *Engine) Recommend(ctx context.Context, c *Catalog, startTitle string, config *model.QueryConfig) (result model.RecommendationResult, err error) {
	done := metrics.TimeQuery(e.metrics, "recommend")
	defer func() { done(err == nil, len(result)) }()

	if c == nil || c.Graph == nil {
		return nil, helper.NewError("recommend", errNoCatalog)
	}
	if config == nil {
		defaultConfig := model.DefaultQueryConfig()
		config = &defaultConfig
	}
	if !c.Graph.HasNode(startTitle) {
		return nil, model.UnknownMovie(startTitle)
	}
	if config.Limit <= 0 {
		return model.RecommendationResult{}, nil
	}

	paths, err := graph.ShortestPaths(ctx, c.Graph, startTitle)
	if err != nil {
		return nil, helper.NewError("shortest paths", err)
	}

	candidates := make([]candidate, 0, len(paths))
	for order, p := range paths {
		if p.Node.Title == startTitle {
			continue
		}
		if config.Year != nil && p.Node.Year != *config.Year {
			continue
		}
		candidates = append(candidates, candidate{
			rec: model.Recommendation{
				Title:    p.Node.Title,
				Distance: p.Distance,
			},
			order: order,
		})
	}

	result = selectTopK(candidates, config.Limit)

	e.log.Debug(
		"Computed recommendations",
		slog.String("start", startTitle),
		slog.Int("candidates", len(candidates)),
		slog.Int("results", len(result)),
		slog.String("catalog_id", c.ID.String()),
	)

	return result, nil
}

// Neighborhood returns the subgraph induced by the recommended movies for
// rendering. It does not compute any new distances.
func (e *Engine) Neighborhood(c *Catalog, result model.RecommendationResult) (*model.Subgraph, error) {
	if c == nil || c.Graph == nil {
		return nil, helper.NewError("neighborhood", errNoCatalog)
	}
	return graph.Induced(c.Graph, result.Titles())
}

// Search returns the movies whose title contains term, ignoring case, in title order
func (e *Engine) Search(c *Catalog, term string) (results []model.SearchResult, err error) {
	done := metrics.TimeQuery(e.metrics, "search")
	defer func() { done(err == nil, len(results)) }()

	if c == nil {
		return nil, helper.NewError("search", errNoCatalog)
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, helper.NewError("search", errors.New("search term is empty"))
	}

	needle := strings.ToLower(term)
	results = []model.SearchResult{}
	for _, title := range c.titles {
		if strings.Contains(strings.ToLower(title), needle) {
			results = append(results, model.SearchResult{
				Title:  title,
				Rating: c.records[title].Rating,
			})
		}
	}

	return results, nil
}
