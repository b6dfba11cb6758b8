package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
	loadSql "github.com/siherrmann/moviegraph/sql"
)

// MoviesDBHandlerFunctions defines the interface for Movies database operations.
type MoviesDBHandlerFunctions interface {
	InsertMovie(ctx context.Context, movie *model.Movie) error
	InsertMovies(ctx context.Context, movies []*model.Movie) error
	DeleteMovie(ctx context.Context, title string) (bool, error)
	SelectMovie(ctx context.Context, title string) (*model.Movie, error)
	SelectAllMovies(ctx context.Context) ([]*model.Movie, error)
	SearchMovies(ctx context.Context, term string, limit int) ([]*model.Movie, error)
}

// MoviesDBHandler handles movie-related database operations
type MoviesDBHandler struct {
	db *helper.Database
}

// NewMoviesDBHandler creates a new movies database handler.
// It loads the movie SQL functions and creates the movies table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewMoviesDBHandler(db *helper.Database, force bool) (*MoviesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	moviesDbHandler := &MoviesDBHandler{
		db: db,
	}

	err := loadSql.Init(moviesDbHandler.db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	err = loadSql.LoadMoviesSql(moviesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load movies sql", err)
	}

	err = moviesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized MoviesDBHandler")

	return moviesDbHandler, nil
}

// CreateTable creates the 'movies' table and its indexes if they do not exist.
func (h *MoviesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_movies();`)
	if err != nil {
		return helper.NewError("exec init_movies", err)
	}

	h.db.Logger.Info("Checked/created table movies")

	return nil
}

// InsertMovie inserts a movie, or overwrites the stored movie with the same title.
// ID, RID and CreatedAt are filled from the stored row.
func (h *MoviesDBHandler) InsertMovie(ctx context.Context, movie *model.Movie) error {
	if movie == nil {
		return helper.NewError("insert movie", fmt.Errorf("movie is nil"))
	}

	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_movie($1, $2, $3, $4, $5, $6, $7, $8)`,
		movie.Title,
		movie.Rating,
		movie.Genre,
		movie.Year,
		movie.Director,
		nullDate(movie.ReleaseDate),
		movie.ImagePath,
		movie.Overview,
	)

	err := scanMovie(row, movie)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// InsertMovies inserts all movies in one transaction
func (h *MoviesDBHandler) InsertMovies(ctx context.Context, movies []*model.Movie) error {
	tx, err := h.db.Instance.BeginTx(ctx, nil)
	if err != nil {
		return helper.NewError("begin transaction", err)
	}
	defer tx.Rollback()

	for _, movie := range movies {
		if movie == nil {
			continue
		}

		row := tx.QueryRowContext(
			ctx,
			`SELECT * FROM insert_movie($1, $2, $3, $4, $5, $6, $7, $8)`,
			movie.Title,
			movie.Rating,
			movie.Genre,
			movie.Year,
			movie.Director,
			nullDate(movie.ReleaseDate),
			movie.ImagePath,
			movie.Overview,
		)
		err = scanMovie(row, movie)
		if err != nil {
			return helper.NewError("scan "+movie.Title, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return helper.NewError("commit", err)
	}

	return nil
}

// DeleteMovie deletes a movie by title and reports whether a row was removed
func (h *MoviesDBHandler) DeleteMovie(ctx context.Context, title string) (bool, error) {
	var deleted bool
	err := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT delete_movie($1)`,
		title,
	).Scan(&deleted)
	if err != nil {
		return false, helper.NewError("exec", err)
	}
	return deleted, nil
}

// SelectMovie retrieves a movie by title.
// A missing title is reported as model.ErrUnknownMovie.
func (h *MoviesDBHandler) SelectMovie(ctx context.Context, title string) (*model.Movie, error) {
	movie := &model.Movie{}
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_movie($1)`,
		title,
	)

	err := scanMovie(row, movie)
	if err == sql.ErrNoRows {
		return nil, model.UnknownMovie(title)
	} else if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return movie, nil
}

// SelectAllMovies retrieves every stored movie ordered by title.
// Its signature matches pipeline.SourceFunc so the table can feed a build directly.
func (h *MoviesDBHandler) SelectAllMovies(ctx context.Context) ([]*model.Movie, error) {
	rows, err := h.db.Instance.QueryContext(ctx, `SELECT * FROM select_all_movies()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

// SearchMovies returns up to limit movies whose title contains term, ignoring case
func (h *MoviesDBHandler) SearchMovies(ctx context.Context, term string, limit int) ([]*model.Movie, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM search_movies($1, $2)`,
		term,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner, movie *model.Movie) error {
	var releaseDate sql.NullTime
	err := row.Scan(
		&movie.ID,
		&movie.RID,
		&movie.Title,
		&movie.Rating,
		&movie.Genre,
		&movie.Year,
		&movie.Director,
		&releaseDate,
		&movie.ImagePath,
		&movie.Overview,
		&movie.CreatedAt,
	)
	if err != nil {
		return err
	}

	movie.ReleaseDate = time.Time{}
	if releaseDate.Valid {
		movie.ReleaseDate = releaseDate.Time
	}
	return nil
}

func scanMovies(rows *sql.Rows) ([]*model.Movie, error) {
	movies := []*model.Movie{}
	for rows.Next() {
		movie := &model.Movie{}
		err := scanMovie(rows, movie)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		movies = append(movies, movie)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return movies, nil
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
