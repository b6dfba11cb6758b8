package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/siherrmann/moviegraph"
	"github.com/siherrmann/moviegraph/core/retrieval"
	"github.com/siherrmann/moviegraph/helper"
	"github.com/siherrmann/moviegraph/metrics"
	"github.com/siherrmann/moviegraph/model"
)

type server struct {
	graph *moviegraph.Moviegraph
	log   *slog.Logger
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger := helper.NewLogger(os.Stdout, slog.LevelInfo)

	config, err := helper.NewEngineConfiguration()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheusRecorder(reg)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	m, err := moviegraph.NewMoviegraph(config, moviegraph.WithLogger(logger), moviegraph.WithMetrics(recorder))
	if err != nil {
		log.Fatalf("Failed to create moviegraph: %v", err)
	}
	defer m.Close()

	if _, err := m.LoadCSV(context.Background(), ""); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	s := &server{graph: m, log: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/recommend/{title}", s.recommend)
	r.Get("/neighborhood/{title}", s.neighborhood)
	r.Get("/movies/{title}", s.movie)
	r.Get("/search", s.search)
	r.Get("/years", s.years)
	r.Get("/home", s.home)
	r.Post("/reload", s.reload)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Listening", slog.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", slog.String("error", err.Error()))
	}
}

// requestID tags every request with a uuid unless the caller sent one
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *server) recommend(w http.ResponseWriter, r *http.Request) {
	config, err := queryConfig(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.graph.Recommend(r.Context(), chi.URLParam(r, "title"), config)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *server) neighborhood(w http.ResponseWriter, r *http.Request) {
	config, err := queryConfig(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = s.graph.RecommendAndExport(r.Context(), w, chi.URLParam(r, "title"), config)
	if err != nil {
		s.writeError(w, statusFor(err), err)
	}
}

func (s *server) movie(w http.ResponseWriter, r *http.Request) {
	movie, err := s.graph.Movie(chi.URLParam(r, "title"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, movie)
}

func (s *server) search(w http.ResponseWriter, r *http.Request) {
	results, err := s.graph.Search(r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *server) years(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.graph.Years())
}

func (s *server) home(w http.ResponseWriter, r *http.Request) {
	strategy := retrieval.MostRecentStrategy{}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		strategy.ReleaseYear = year
	}

	movies := s.graph.Homepage(strategy, 24)
	pages := retrieval.Paginate(movies, 8)
	s.writeJSON(w, http.StatusOK, pages)
}

func (s *server) reload(w http.ResponseWriter, r *http.Request) {
	c, err := s.graph.LoadCSV(r.Context(), "")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"catalog_id": c.ID,
		"movies":     c.Len(),
		"edges":      c.Graph.EdgeCount(),
	})
}

func queryConfig(r *http.Request) (*model.QueryConfig, error) {
	config := model.DefaultQueryConfig()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, helper.NewError("parse limit", err)
		}
		config.Limit = limit
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, helper.NewError("parse year", err)
		}
		config = config.WithYear(year)
	}
	return &config, nil
}

func statusFor(err error) int {
	if errors.Is(err, model.ErrUnknownMovie) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
