package moviegraph

import (
	"context"
	"testing"

	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectMoviegraph(t *testing.T) *Moviegraph {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")

	m := initMoviegraph(t)
	err = m.ConnectDatabase(dbConfig)
	require.NoError(t, err, "failed to connect database")
	require.NotNil(t, m.Movies, "expected movies handler to be set")

	return m
}

func TestLoadFromDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("Load without database", func(t *testing.T) {
		m := initMoviegraph(t)
		_, err := m.LoadFromDatabase(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database not connected")
	})

	t.Run("Import CSV and load from database", func(t *testing.T) {
		m := connectMoviegraph(t)

		n, err := m.ImportCSV(ctx, writeCSV(t, testCSV))
		require.NoError(t, err, "Expected ImportCSV to not return an error")
		assert.Equal(t, 3, n)

		c, err := m.LoadFromDatabase(ctx)
		require.NoError(t, err, "Expected LoadFromDatabase to not return an error")
		assert.Equal(t, []string{"A", "B", "C"}, c.Titles())

		result, err := m.Recommend(ctx, "A", &model.QueryConfig{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, model.RecommendationResult{{Title: "B", Distance: 3}}, result)

		movie, err := m.Movie("B")
		require.NoError(t, err)
		assert.NotZero(t, movie.ID, "Expected stored movie to carry its row id")
		assert.Equal(t, 2021, movie.ReleaseDate.Year())

		// Cleanup
		for _, title := range c.Titles() {
			_, err := m.Movies.DeleteMovie(ctx, title)
			assert.NoError(t, err)
		}
	})
}
