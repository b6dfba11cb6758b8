package moviegraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/siherrmann/moviegraph/core/pipeline"
	"github.com/siherrmann/moviegraph/core/retrieval"
	"github.com/siherrmann/moviegraph/core/weight"
	"github.com/siherrmann/moviegraph/database"
	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/metrics"
	"github.com/siherrmann/moviegraph/model"
)

// Moviegraph provides a unified interface to the record stores, the graph
// builder and the recommendation engine
type Moviegraph struct {
	DB     *helper.Database          // Optional record store connection
	Movies *database.MoviesDBHandler // Optional, set by ConnectDatabase
	Engine *retrieval.Engine

	config  *helper.EngineConfiguration
	policy  *weight.Policy
	metrics metrics.Recorder
	catalog atomic.Pointer[retrieval.Catalog]
	// Logging
	log *slog.Logger
}

// Option configures a Moviegraph
type Option func(*Moviegraph)

// WithLogger replaces the default pretty logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Moviegraph) {
		m.log = logger
	}
}

// WithMetrics sets the recorder for builds and queries
func WithMetrics(recorder metrics.Recorder) Option {
	return func(m *Moviegraph) {
		m.metrics = recorder
	}
}

// WithPolicy overrides the weight policy named in the configuration
func WithPolicy(policy *weight.Policy) Option {
	return func(m *Moviegraph) {
		m.policy = policy
	}
}

// NewMoviegraph creates a new Moviegraph without a loaded catalog.
// A nil config reads the configuration from the environment.
func NewMoviegraph(config *helper.EngineConfiguration, opts ...Option) (*Moviegraph, error) {
	if config == nil {
		var err error
		config, err = helper.NewEngineConfiguration()
		if err != nil {
			return nil, helper.NewError("engine configuration", err)
		}
	}

	m := &Moviegraph{config: config}
	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = helper.NewLogger(os.Stdout, slog.LevelInfo)
	}
	if m.metrics == nil {
		m.metrics = metrics.Default()
	}
	if m.policy == nil {
		policy, err := weight.ByName(config.WeightPolicy, time.Now())
		if err != nil {
			return nil, helper.NewError("weight policy", err)
		}
		m.policy = policy
	}

	m.Engine = retrieval.NewEngine(m.log, m.metrics)

	return m, nil
}

// ConnectDatabase opens the record store and prepares the movies table
func (m *Moviegraph) ConnectDatabase(config *helper.DatabaseConfiguration) error {
	db, err := helper.NewDatabase("moviegraph", config, m.log)
	if err != nil {
		return helper.NewError("connect database", err)
	}

	// force=false to not reload if functions already exist
	movies, err := database.NewMoviesDBHandler(db, false)
	if err != nil {
		db.Close()
		return helper.NewError("create movies handler", err)
	}

	m.DB = db
	m.Movies = movies
	return nil
}

// Close closes the database connection
func (m *Moviegraph) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Policy returns the weight policy used for builds
func (m *Moviegraph) Policy() *weight.Policy {
	return m.policy
}

// Catalog returns the current catalog or nil before the first load
func (m *Moviegraph) Catalog() *retrieval.Catalog {
	return m.catalog.Load()
}

// Load builds a catalog from records and makes it the current one.
// On error the previous catalog stays in place.
func (m *Moviegraph) Load(ctx context.Context, records map[string]*model.Movie) (*retrieval.Catalog, error) {
	start := time.Now()
	c, err := retrieval.NewCatalog(ctx, records, m.policy, model.BuildConfig{Workers: m.config.BuildWorkers})
	if err != nil {
		m.metrics.ObserveBuild(false, len(records), 0, time.Since(start).Seconds())
		m.log.Error("Failed to build catalog", slog.String("error", err.Error()))
		return nil, helper.NewError("build catalog", err)
	}
	m.metrics.ObserveBuild(true, c.Len(), c.Graph.EdgeCount(), time.Since(start).Seconds())

	previous := m.catalog.Swap(c)

	attrs := []any{
		slog.String("catalog_id", c.ID.String()),
		slog.String("policy", c.Policy),
		slog.Int("movies", c.Len()),
		slog.Int("edges", c.Graph.EdgeCount()),
		slog.Duration("took", time.Since(start)),
	}
	if previous != nil {
		attrs = append(attrs, slog.String("replaced", previous.ID.String()))
	}
	m.log.Info("Loaded catalog", attrs...)

	return c, nil
}

// LoadPipeline processes the pipeline and loads the resulting records
func (m *Moviegraph) LoadPipeline(ctx context.Context, p *pipeline.Pipeline) (*retrieval.Catalog, error) {
	records, err := p.Process(ctx)
	if err != nil {
		return nil, helper.NewError("process pipeline", err)
	}
	return m.Load(ctx, records)
}

// LoadCSV loads the catalog from a ';'-separated movie file.
// An empty path uses the configured CSV path.
func (m *Moviegraph) LoadCSV(ctx context.Context, path string) (*retrieval.Catalog, error) {
	if path == "" {
		path = m.config.CSVPath
	}

	p := pipeline.NewPipeline(pipeline.CSVSource(path), m.log)
	p.AddTransform(pipeline.NormalizeGenre)
	return m.LoadPipeline(ctx, p)
}

// LoadFromDatabase loads the catalog from the movies table
func (m *Moviegraph) LoadFromDatabase(ctx context.Context) (*retrieval.Catalog, error) {
	if m.Movies == nil {
		return nil, helper.NewError("load from database", fmt.Errorf("database not connected, use ConnectDatabase() first"))
	}

	p := pipeline.NewPipeline(m.Movies.SelectAllMovies, m.log)
	return m.LoadPipeline(ctx, p)
}

// ImportCSV stores the movies of a CSV file in the movies table.
// It does not change the current catalog, call LoadFromDatabase afterwards.
// Returns the number of stored movies.
func (m *Moviegraph) ImportCSV(ctx context.Context, path string) (int, error) {
	if m.Movies == nil {
		return 0, helper.NewError("import csv", fmt.Errorf("database not connected, use ConnectDatabase() first"))
	}
	if path == "" {
		path = m.config.CSVPath
	}

	p := pipeline.NewPipeline(pipeline.CSVSource(path), m.log)
	p.AddTransform(pipeline.NormalizeGenre)
	records, err := p.Process(ctx)
	if err != nil {
		return 0, helper.NewError("process csv", err)
	}

	movies := make([]*model.Movie, 0, len(records))
	for _, movie := range records {
		movies = append(movies, movie)
	}
	if err := m.Movies.InsertMovies(ctx, movies); err != nil {
		return 0, helper.NewError("insert movies", err)
	}

	m.log.Info("Imported movies", slog.String("path", path), slog.Int("movies", len(movies)))

	return len(movies), nil
}

// Recommend returns the movies closest to title in the current catalog.
// A nil config uses the configured default limit without a year filter.
func (m *Moviegraph) Recommend(ctx context.Context, title string, config *model.QueryConfig) (model.RecommendationResult, error) {
	if config == nil {
		defaultConfig := model.DefaultQueryConfig()
		defaultConfig.Limit = m.config.DefaultLimit
		config = &defaultConfig
	}
	return m.Engine.Recommend(ctx, m.Catalog(), title, config)
}

// Neighborhood returns the subgraph induced by a recommendation result
func (m *Moviegraph) Neighborhood(result model.RecommendationResult) (*model.Subgraph, error) {
	return m.Engine.Neighborhood(m.Catalog(), result)
}

// Search returns the movies whose title contains term
func (m *Moviegraph) Search(term string) ([]model.SearchResult, error) {
	return m.Engine.Search(m.Catalog(), term)
}

// Movie returns the record of title
func (m *Moviegraph) Movie(title string) (model.Movie, error) {
	c := m.Catalog()
	if c == nil {
		return model.Movie{}, helper.NewError("movie", fmt.Errorf("catalog is not loaded"))
	}
	movie, ok := c.Movie(title)
	if !ok {
		return model.Movie{}, model.UnknownMovie(title)
	}
	return movie, nil
}

// Years returns the distinct release years of the current catalog
func (m *Moviegraph) Years() []int {
	c := m.Catalog()
	if c == nil {
		return []int{}
	}
	return c.Years()
}

// Homepage returns up to n movies picked by strategy
func (m *Moviegraph) Homepage(strategy retrieval.SampleStrategy, n int) []model.Movie {
	c := m.Catalog()
	if c == nil || strategy == nil {
		return []model.Movie{}
	}
	return strategy.Sample(c, n)
}

// Export is the JSON document handed to rendering consumers
type Export struct {
	CatalogID       string                     `json:"catalog_id"`
	Start           string                     `json:"start"`
	Recommendations model.RecommendationResult `json:"recommendations"`
	Graph           *model.Subgraph            `json:"graph"`
}

// RecommendAndExport recommends movies for title and writes the result
// together with its induced subgraph as JSON to w
func (m *Moviegraph) RecommendAndExport(ctx context.Context, w io.Writer, title string, config *model.QueryConfig) error {
	c := m.Catalog()
	if c == nil {
		return helper.NewError("export", fmt.Errorf("catalog is not loaded"))
	}

	if config == nil {
		defaultConfig := model.DefaultQueryConfig()
		defaultConfig.Limit = m.config.DefaultLimit
		config = &defaultConfig
	}
	result, err := m.Engine.Recommend(ctx, c, title, config)
	if err != nil {
		return err
	}
	sub, err := m.Engine.Neighborhood(c, result)
	if err != nil {
		return helper.NewError("neighborhood", err)
	}

	err = json.NewEncoder(w).Encode(Export{
		CatalogID:       c.ID.String(),
		Start:           title,
		Recommendations: result,
		Graph:           sub,
	})
	if err != nil {
		return helper.NewError("encode export", err)
	}
	return nil
}
