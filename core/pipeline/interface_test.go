package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/siherrmann/moviegraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	t.Run("Create new pipeline", func(t *testing.T) {
		pipeline := NewPipeline(StaticSource(nil), nil)

		require.NotNil(t, pipeline, "Expected NewPipeline to return a non-nil instance")
		assert.NotNil(t, pipeline.Source, "Expected pipeline to have a source function")
		assert.Empty(t, pipeline.Transforms, "Expected no transforms by default")
	})

	t.Run("Process without source fails", func(t *testing.T) {
		_, err := NewPipeline(nil, nil).Process(context.Background())
		assert.ErrorIs(t, err, errNoSource)
	})
}

func TestPipelineProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("Keys records by title and later duplicates win", func(t *testing.T) {
		pipeline := NewPipeline(StaticSource([]*model.Movie{
			{Title: "Heat", Rating: 7.0, Genre: "Crime", Year: 1995},
			{Title: "Alien", Rating: 8.5, Genre: "Horror", Year: 1979},
			nil,
			{Title: "Heat", Rating: 8.3, Genre: "Crime", Year: 1995},
		}), nil)

		records, err := pipeline.Process(ctx)
		require.NoError(t, err, "Expected Process to not return an error")
		require.Len(t, records, 2)
		assert.Equal(t, 8.3, records["Heat"].Rating, "Expected the later record to overwrite the earlier one")
	})

	t.Run("Applies transforms in order", func(t *testing.T) {
		pipeline := NewPipeline(StaticSource([]*model.Movie{{Title: "Alien", Genre: "horror"}}), nil)
		pipeline.AddTransform(NormalizeGenre)
		pipeline.AddTransform(func(m *model.Movie) error {
			m.Genre += "!"
			return nil
		})

		records, err := pipeline.Process(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Horror!", records["Alien"].Genre)
	})

	t.Run("Transform errors stop processing", func(t *testing.T) {
		pipeline := NewPipeline(StaticSource([]*model.Movie{{Title: "Alien"}}), nil)
		pipeline.AddTransform(func(m *model.Movie) error { return errors.New("boom") })

		_, err := pipeline.Process(ctx)
		assert.Error(t, err)
	})

	t.Run("Source errors are returned", func(t *testing.T) {
		sourceErr := errors.New("source down")
		pipeline := NewPipeline(func(ctx context.Context) ([]*model.Movie, error) { return nil, sourceErr }, nil)

		_, err := pipeline.Process(ctx)
		assert.ErrorIs(t, err, sourceErr)
	})
}
