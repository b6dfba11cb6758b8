package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/siherrmann/moviegraph"
	"github.com/siherrmann/moviegraph/core/pipeline"
	"github.com/siherrmann/moviegraph/core/retrieval"
	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/model"
)

func main() {
	csvPath := flag.String("csv", "example/movies.csv", "path to the ';'-separated movie file")
	title := flag.String("title", "Paper Moons", "movie to get recommendations for")
	year := flag.Int("year", 0, "only recommend movies from this year (0 = any)")
	limit := flag.Int("limit", 5, "maximum number of recommendations")
	flag.Parse()

	config, err := helper.NewEngineConfiguration()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	m, err := moviegraph.NewMoviegraph(config)
	if err != nil {
		log.Fatalf("Failed to create moviegraph: %v", err)
	}
	defer m.Close()

	// Build the similarity graph from the CSV file
	catalog, err := m.LoadCSV(context.Background(), *csvPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	fmt.Printf("Loaded %d movies (%d edges, policy %s)\n", catalog.Len(), catalog.Graph.EdgeCount(), catalog.Policy)

	// Landing page: the latest releases
	fmt.Println("\nLatest releases:")
	for _, movie := range m.Homepage(retrieval.MostRecentStrategy{}, 3) {
		fmt.Printf("  %s (%s)\n", movie.Title, movie.ReleaseDate.Format(pipeline.ReleaseDateLayout))
	}

	query := model.DefaultQueryConfig()
	query.Limit = *limit
	if *year != 0 {
		query = query.WithYear(*year)
	}

	result, err := m.Recommend(context.Background(), *title, &query)
	if err != nil {
		log.Fatalf("Failed to recommend: %v", err)
	}

	fmt.Printf("\nRecommendations for %q:\n", *title)
	if len(result) == 0 {
		fmt.Println("  No movies found")
	}
	for i, rec := range result {
		fmt.Printf("  %d. %s (distance %.2f)\n", i+1, rec.Title, rec.Distance)
	}

	// Write the result with its subgraph for a renderer
	fmt.Println("\nExport:")
	if err := m.RecommendAndExport(context.Background(), os.Stdout, *title, &query); err != nil {
		log.Fatalf("Failed to export: %v", err)
	}
}
