package pipeline

import (
	"context"
	"log/slog"

	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
)

// SourceFunc produces raw movie records, e.g. from a CSV file or the database
type SourceFunc func(ctx context.Context) ([]*model.Movie, error)

// TransformFunc normalizes a single record in place before it enters the catalog
type TransformFunc func(m *model.Movie) error

// Pipeline combines a record source with optional transforms
type Pipeline struct {
	Source     SourceFunc
	Transforms []TransformFunc // Optional, applied in order
	log        *slog.Logger
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(source SourceFunc, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		Source: source,
		log:    logger,
	}
}

// AddTransform appends a transform function
func (p *Pipeline) AddTransform(transform TransformFunc) {
	p.Transforms = append(p.Transforms, transform)
}

// Process reads all records from the source, applies the transforms and
// returns them keyed by title. A later record with an already seen title
// replaces the earlier one.
func (p *Pipeline) Process(ctx context.Context) (map[string]*model.Movie, error) {
	if p.Source == nil {
		return nil, helper.NewError("process records", errNoSource)
	}

	movies, err := p.Source(ctx)
	if err != nil {
		return nil, helper.NewError("read records", err)
	}

	records := make(map[string]*model.Movie, len(movies))
	for _, m := range movies {
		if m == nil {
			continue
		}
		for _, transform := range p.Transforms {
			if err := transform(m); err != nil {
				return nil, helper.NewError("transform "+m.Title, err)
			}
		}

		if _, exists := records[m.Title]; exists {
			p.log.Warn("Duplicate title overwrites earlier record", slog.String("title", m.Title))
		}
		records[m.Title] = m
	}

	p.log.Info("Processed records", slog.Int("read", len(movies)), slog.Int("unique", len(records)))

	return records, nil
}
