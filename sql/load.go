package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed movies.sql
var moviesSQL string

// Function lists for verification
var MoviesFunctions = []string{
	"init_movies",
	"insert_movie",
	"select_movie",
	"select_all_movies",
	"search_movies",
	"delete_movie",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadMoviesSql loads movie-related SQL functions
func LoadMoviesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, MoviesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing movies functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(moviesSQL)
	if err != nil {
		return fmt.Errorf("error executing movies SQL: %w", err)
	}

	exist, err := checkFunctions(db, MoviesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL movies functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
