package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/siherrmann/moviegraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("Builds graph and indexes records", func(t *testing.T) {
		c := newCatalog(t, exampleRecords())

		assert.NotEqual(t, uuid.Nil, c.ID, "Expected a catalog id")
		assert.Equal(t, "director", c.Policy)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []string{"A", "B", "C"}, c.Titles())
		assert.Equal(t, []int{2020, 2021}, c.Years())
		assert.Equal(t, 3, c.Graph.EdgeCount())
	})

	t.Run("Records are copied", func(t *testing.T) {
		records := exampleRecords()
		c := newCatalog(t, records)

		records["A"].Rating = 1
		m, ok := c.Movie("A")
		require.True(t, ok)
		assert.Equal(t, 8.0, m.Rating, "Expected the catalog to keep its own copy")

		_, ok = c.Movie("ZZZ")
		assert.False(t, ok)
	})

	t.Run("Malformed records fail", func(t *testing.T) {
		records := exampleRecords()
		records["A"].Title = ""

		c, err := NewCatalog(context.Background(), records, nil, model.DefaultBuildConfig())
		assert.Nil(t, c)

		var malformed *model.MalformedRecordError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "Title", malformed.Field)
	})
}
