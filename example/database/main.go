package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/siherrmann/moviegraph"
	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
)

func main() {
	csvPath := flag.String("csv", "example/movies.csv", "path to the ';'-separated movie file")
	title := flag.String("title", "Last Signal", "movie to get recommendations for")
	flag.Parse()

	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	m, err := moviegraph.NewMoviegraph(&helper.EngineConfiguration{
		WeightPolicy: "recency",
		DefaultLimit: 3,
	})
	if err != nil {
		log.Fatalf("Failed to create moviegraph: %v", err)
	}
	defer m.Close()

	if err := m.ConnectDatabase(dbConfig); err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	ctx := context.Background()

	// Store the CSV records, then build the graph from the table
	n, err := m.ImportCSV(ctx, *csvPath)
	if err != nil {
		log.Fatalf("Failed to import movies: %v", err)
	}
	fmt.Printf("Stored %d movies\n", n)

	if _, err := m.LoadFromDatabase(ctx); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	stored, err := m.Movies.SearchMovies(ctx, "sign", 5)
	if err != nil {
		log.Fatalf("Failed to search movies: %v", err)
	}
	for _, movie := range stored {
		fmt.Printf("Found in database: %s (%s)\n", movie.Title, movie.RID)
	}

	for _, year := range m.Years() {
		config := model.DefaultQueryConfig().WithYear(year)
		result, err := m.Recommend(ctx, *title, &config)
		if err != nil {
			log.Fatalf("Failed to recommend: %v", err)
		}
		fmt.Printf("\n%d:\n", year)
		for _, rec := range result {
			fmt.Printf("  %s (distance %.2f)\n", rec.Title, rec.Distance)
		}
	}
}
