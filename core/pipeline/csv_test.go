package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siherrmann/moviegraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Oppenheimer;8.3;Drama;2023;Christopher Nolan;img/oppenheimer.jpg;The story of J. Robert Oppenheimer.;21/07/2023
Barbie;7.0;Comedy;2023;Greta Gerwig;img/barbie.jpg;Barbie suffers a crisis.;21/07/2023
Dune;8.0;Science Fiction;2021;Denis Villeneuve;img/dune.jpg;Paul Atreides travels to Arrakis.;22/10/2021
`

func TestReadCSV(t *testing.T) {
	t.Run("Parses all columns", func(t *testing.T) {
		movies, err := ReadCSV(strings.NewReader(sampleCSV))
		require.NoError(t, err, "Expected ReadCSV to not return an error")
		require.Len(t, movies, 3)

		dune := movies[2]
		assert.Equal(t, "Dune", dune.Title)
		assert.Equal(t, 8.0, dune.Rating)
		assert.Equal(t, "Science Fiction", dune.Genre)
		assert.Equal(t, 2021, dune.Year)
		assert.Equal(t, "Denis Villeneuve", dune.Director)
		assert.Equal(t, "img/dune.jpg", dune.ImagePath)
		assert.Equal(t, "Paul Atreides travels to Arrakis.", dune.Overview)
		assert.Equal(t, time.Date(2021, time.October, 22, 0, 0, 0, 0, time.UTC), dune.ReleaseDate)
	})

	t.Run("Skips a header row", func(t *testing.T) {
		input := "title;rating;genre;year;director;image_path;overview;release_date\n" + sampleCSV
		movies, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, movies, 3)
	})

	t.Run("Empty release date is allowed", func(t *testing.T) {
		movies, err := ReadCSV(strings.NewReader("Heat;8.3;Crime;1995;Michael Mann;;;\n"))
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.True(t, movies[0].ReleaseDate.IsZero())
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Bad rating", "Heat;high;Crime;1995;Michael Mann;;;\n", "rating"},
		{"Bad year", "Heat;8.3;Crime;nineties;Michael Mann;;;\n", "year"},
		{"Bad release date", "Heat;8.3;Crime;1995;Michael Mann;;;1995-12-15\n", "release date"},
		{"Wrong column count", "Heat;8.3;Crime\n", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(sampleCSV + tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("Errors name the line", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(sampleCSV + "Heat;high;Crime;1995;Michael Mann;;;\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 4")
	})
}

func TestCSVSource(t *testing.T) {
	t.Run("Reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

		movies, err := CSVSource(path)(context.Background())
		require.NoError(t, err)
		assert.Len(t, movies, 3)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := CSVSource(filepath.Join(t.TempDir(), "missing.csv"))(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNormalizeGenre(t *testing.T) {
	m := &model.Movie{Genre: "  science fiction "}
	require.NoError(t, NormalizeGenre(m))
	assert.Equal(t, "Science fiction", m.Genre)

	m = &model.Movie{Genre: "ÉPICA"}
	require.NoError(t, NormalizeGenre(m))
	assert.Equal(t, "Épica", m.Genre)

	m = &model.Movie{}
	require.NoError(t, NormalizeGenre(m))
	assert.Equal(t, "", m.Genre)
}
