package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports build and query metrics to Prometheus.
type PrometheusRecorder struct {
	buildTotal   *prom.CounterVec
	buildSeconds prom.Histogram
	graphMovies  prom.Gauge
	graphEdges   prom.Gauge
	queryTotal   *prom.CounterVec
	querySeconds *prom.HistogramVec
	queryResults *prom.HistogramVec
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
func NewPrometheusRecorder(reg prom.Registerer) (*PrometheusRecorder, error) {
	p := &PrometheusRecorder{
		buildTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "moviegraph_builds_total",
			Help: "Total number of similarity graph builds",
		}, []string{"success"}),
		buildSeconds: prom.NewHistogram(prom.HistogramOpts{
			Name:    "moviegraph_build_seconds",
			Help:    "Similarity graph build duration in seconds",
			Buckets: prom.ExponentialBuckets(0.001, 4, 10),
		}),
		graphMovies: prom.NewGauge(prom.GaugeOpts{
			Name: "moviegraph_graph_movies",
			Help: "Number of movies in the current similarity graph",
		}),
		graphEdges: prom.NewGauge(prom.GaugeOpts{
			Name: "moviegraph_graph_edges",
			Help: "Number of edges in the current similarity graph",
		}),
		queryTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "moviegraph_queries_total",
			Help: "Total number of engine queries",
		}, []string{"op", "success"}),
		querySeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "moviegraph_query_seconds",
			Help:    "Engine query duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"op"}),
		queryResults: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "moviegraph_query_results",
			Help:    "Number of results returned per engine query",
			Buckets: prom.LinearBuckets(0, 5, 10),
		}, []string{"op"}),
	}

	collectors := []prom.Collector{
		p.buildTotal, p.buildSeconds, p.graphMovies, p.graphEdges,
		p.queryTotal, p.querySeconds, p.queryResults,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return p, nil
}

func (p *PrometheusRecorder) ObserveBuild(success bool, movies int, edges int, seconds float64) {
	p.buildTotal.WithLabelValues(fmt.Sprintf("%t", success)).Inc()
	p.buildSeconds.Observe(seconds)
	if success {
		p.graphMovies.Set(float64(movies))
		p.graphEdges.Set(float64(edges))
	}
}

func (p *PrometheusRecorder) ObserveQuery(op string, success bool, results int, seconds float64) {
	p.queryTotal.WithLabelValues(op, fmt.Sprintf("%t", success)).Inc()
	p.querySeconds.WithLabelValues(op).Observe(seconds)
	if success {
		p.queryResults.WithLabelValues(op).Observe(float64(results))
	}
}
