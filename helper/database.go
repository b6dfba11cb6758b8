package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DatabaseConfiguration holds the connection settings for the movie record store
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the database configuration from the environment.
// A .env file in the working directory is loaded first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("MOVIEGRAPH_DB_HOST"),
		Port:     os.Getenv("MOVIEGRAPH_DB_PORT"),
		Database: os.Getenv("MOVIEGRAPH_DB_DATABASE"),
		Username: os.Getenv("MOVIEGRAPH_DB_USERNAME"),
		Password: os.Getenv("MOVIEGRAPH_DB_PASSWORD"),
		Schema:   os.Getenv("MOVIEGRAPH_DB_SCHEMA"),
		SSLMode:  os.Getenv("MOVIEGRAPH_DB_SSLMODE"),
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration", fmt.Errorf("MOVIEGRAPH_DB_HOST, MOVIEGRAPH_DB_PORT, MOVIEGRAPH_DB_DATABASE and MOVIEGRAPH_DB_USERNAME must be set"))
	}

	return config, nil
}

// DSN returns the lib/pq connection string
func (c *DatabaseConfiguration) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode, c.Schema,
	)
}

// Database bundles the connection pool with its logger
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens and pings a Postgres connection
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if config == nil {
		return nil, NewError("database connection", fmt.Errorf("configuration is nil"))
	}
	if logger == nil {
		logger = NewLogger(os.Stdout, slog.LevelInfo)
	}

	instance, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, NewError("open database", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := instance.PingContext(ctx); err != nil {
		_ = instance.Close()
		return nil, NewError("ping database", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}, nil
}

// Close closes the connection pool
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}

// NewTestDatabase opens a database for tests and panics on failure
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	db, err := NewDatabase("test", config, NewLogger(os.Stdout, slog.LevelWarn))
	if err != nil {
		panic(err)
	}
	return db
}

// MustStartPostgresContainer starts a throwaway Postgres container and returns
// its teardown function and the mapped host port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("database"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", NewError("start postgres container", err)
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container.Terminate, "", NewError("map postgres port", err)
	}

	return container.Terminate, port.Port(), nil
}

// SetTestDatabaseConfigEnvs points the database environment at a test container
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("MOVIEGRAPH_DB_HOST", "localhost")
	t.Setenv("MOVIEGRAPH_DB_PORT", port)
	t.Setenv("MOVIEGRAPH_DB_DATABASE", "database")
	t.Setenv("MOVIEGRAPH_DB_USERNAME", "user")
	t.Setenv("MOVIEGRAPH_DB_PASSWORD", "password")
	t.Setenv("MOVIEGRAPH_DB_SCHEMA", "public")
	t.Setenv("MOVIEGRAPH_DB_SSLMODE", "disable")
}
