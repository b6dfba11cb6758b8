// Package metrics provides a minimal instrumentation interface with a no-op
// default and a Prometheus-backed implementation.
package metrics

import (
	"sync"
	"time"
)

// Recorder defines the metrics surface used by the graph builder and the engine.
type Recorder interface {
	ObserveBuild(success bool, movies int, edges int, seconds float64)
	ObserveQuery(op string, success bool, results int, seconds float64)
}

// noopRecorder implements Recorder with no-ops.
type noopRecorder struct{}

func (n *noopRecorder) ObserveBuild(bool, int, int, float64)    {}
func (n *noopRecorder) ObserveQuery(string, bool, int, float64) {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	if r == nil {
		r = &noopRecorder{}
	}
	recorder = r
}

// Noop returns a recorder that discards everything.
func Noop() Recorder {
	return &noopRecorder{}
}

// TimeQuery is a helper to time engine queries.
func TimeQuery(r Recorder, op string) func(success bool, results int) {
	start := time.Now()
	return func(success bool, results int) {
		r.ObserveQuery(op, success, results, time.Since(start).Seconds())
	}
}
