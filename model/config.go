package model

// QueryConfig represents configuration for a recommendation query
type QueryConfig struct {
	// Limit is the maximum number of recommendations, values <= 0 yield none.
	Limit int `json:"limit"`
	// Year keeps only candidates released in exactly this year when set.
	Year *int `json:"year,omitempty"`
}

// DefaultQueryConfig returns the default query configuration
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		Limit: 5,
		Year:  nil, // No year restriction
	}
}

// WithYear returns a copy of the config restricted to year
func (c QueryConfig) WithYear(year int) QueryConfig {
	c.Year = &year
	return c
}

// BuildConfig represents configuration for building a similarity graph
type BuildConfig struct {
	// Workers bounds the goroutines computing edge weights, 0 means GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultBuildConfig returns the default build configuration
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Workers: 0,
	}
}
