package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
)

// ReleaseDateLayout is the day/month/year layout of the release date column
const ReleaseDateLayout = "02/01/2006"

// csvColumns is the column order of a catalog file:
// title;rating;genre;year;director;image_path;overview;release_date
const csvColumns = 8

var errNoSource = errors.New("pipeline has no source")

// ReadCSV parses a ';' separated catalog. A header row starting with "title"
// is skipped. The release date may be empty, every other parse error stops
// reading and names the offending line.
func ReadCSV(r io.Reader) ([]*model.Movie, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = csvColumns
	reader.LazyQuotes = true

	var movies []*model.Movie
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, helper.NewError("read csv", err)
		}

		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), "title") {
				continue
			}
		}

		m, err := parseRow(row)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("parse line %d", line), err)
		}
		movies = append(movies, m)
	}

	return movies, nil
}

func parseRow(row []string) (*model.Movie, error) {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	rating, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return nil, fmt.Errorf("rating: %w", err)
	}
	year, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}

	var releaseDate time.Time
	if row[7] != "" {
		releaseDate, err = time.Parse(ReleaseDateLayout, row[7])
		if err != nil {
			return nil, fmt.Errorf("release date: %w", err)
		}
	}

	return &model.Movie{
		Title:       row[0],
		Rating:      rating,
		Genre:       row[2],
		Year:        year,
		Director:    row[4],
		ImagePath:   row[5],
		Overview:    row[6],
		ReleaseDate: releaseDate,
	}, nil
}

// CSVSource returns a SourceFunc reading the catalog file at path
func CSVSource(path string) SourceFunc {
	return func(ctx context.Context) ([]*model.Movie, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, helper.NewError("open csv", err)
		}
		defer f.Close()

		return ReadCSV(f)
	}
}

// StaticSource returns a SourceFunc serving the given records
func StaticSource(movies []*model.Movie) SourceFunc {
	return func(ctx context.Context) ([]*model.Movie, error) {
		return movies, nil
	}
}

// NormalizeGenre is a transform that title-cases the genre so "drama" and
// "Drama" count as the same genre.
func NormalizeGenre(m *model.Movie) error {
	genre := strings.ToLower(strings.TrimSpace(m.Genre))
	if genre == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(genre)
	m.Genre = string(unicode.ToUpper(r)) + genre[size:]
	return nil
}
