package helper

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EngineConfiguration holds the settings for building and querying the graph
type EngineConfiguration struct {
	// WeightPolicy names the dissimilarity formula ("director" or "recency").
	WeightPolicy string
	// BuildWorkers bounds the goroutines computing edge weights, 0 means GOMAXPROCS.
	BuildWorkers int
	// DefaultLimit is the result count used when a query does not set one.
	DefaultLimit int
	// CSVPath is the catalog file loaded by the examples.
	CSVPath string
}

// NewEngineConfiguration reads the engine configuration from the environment.
func NewEngineConfiguration() (*EngineConfiguration, error) {
	_ = godotenv.Load()

	config := &EngineConfiguration{
		WeightPolicy: os.Getenv("MOVIEGRAPH_WEIGHT_POLICY"),
		CSVPath:      os.Getenv("MOVIEGRAPH_CSV_PATH"),
		DefaultLimit: 5,
	}
	if config.WeightPolicy == "" {
		config.WeightPolicy = "director"
	}
	if config.CSVPath == "" {
		config.CSVPath = "movies.csv"
	}

	var err error
	if config.BuildWorkers, err = intFromEnv("MOVIEGRAPH_BUILD_WORKERS", 0); err != nil {
		return nil, err
	}
	if config.DefaultLimit, err = intFromEnv("MOVIEGRAPH_DEFAULT_LIMIT", config.DefaultLimit); err != nil {
		return nil, err
	}
	if config.BuildWorkers < 0 {
		return nil, NewError("engine configuration", fmt.Errorf("MOVIEGRAPH_BUILD_WORKERS must not be negative, got %d", config.BuildWorkers))
	}

	return config, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewError("parse "+key, err)
	}
	return v, nil
}
