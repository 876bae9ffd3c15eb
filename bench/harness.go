// Package bench is the strong/weak scaling benchmark driver: it sweeps
// an InitialPartition algorithm over a worker-count ladder, with
// internal/parallel.MaxWorkers set to the sweep's worker count so that
// alg.Partition's own internal/parallel.Do fan-out pins exactly that
// many OS threads (see internal/parallel's doc comment for the
// index-modulo-core-count affinity scheme, Go's portable stand-in for
// the reference driver's core affinity, which needs cgo). The
// goroutine driving alg.Partition itself is additionally pinned via
// runtime.LockOSThread. Records duration, cut size, and imbalance as
// Prometheus metrics.
package bench

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/meshpart/partition"
	"github.com/meshpart/partition/analysis"
	"github.com/meshpart/partition/geom"
	"github.com/meshpart/partition/internal/parallel"
	"github.com/meshpart/partition/topology"
)

// Metrics are the Prometheus series a Harness publishes to, labeled by
// algorithm name and worker count.
type Metrics struct {
	RunDuration *prometheus.HistogramVec
	RunsTotal   *prometheus.CounterVec
	CutSize     *prometheus.GaugeVec
	Imbalance   *prometheus.GaugeVec
}

// NewMetrics registers a fresh Metrics set with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	labels := []string{"algorithm", "workers"}
	return &Metrics{
		RunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meshpart_bench_run_duration_seconds",
			Help:    "Wall-clock duration of one partitioning run.",
			Buckets: prometheus.DefBuckets,
		}, labels),
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meshpart_bench_runs_total",
			Help: "Total number of completed benchmark runs.",
		}, labels),
		CutSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "meshpart_bench_cut_size",
			Help: "Cut size of the last completed run's result (not set for cases without adjacency).",
		}, labels),
		Imbalance: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "meshpart_bench_imbalance_relative",
			Help: "Relative weight imbalance of the last completed run's result.",
		}, labels),
	}
}

// Case is one dataset a Harness runs algorithms against. Adjacency is
// optional; when set, runs also record cut size.
type Case struct {
	Name      string
	Points    []geom.Point
	Weights   []float64
	Adjacency *topology.Adjacency
}

// Result is one (algorithm, worker count) measurement.
type Result struct {
	Algorithm string
	Workers   int
	Duration  time.Duration
	Partition *partition.Partition
	Warning   error
}

// Harness drives scaling sweeps. Metrics may be nil to skip publishing.
type Harness struct {
	Metrics *Metrics
}

// StrongScaling runs alg against the same case at every worker count in
// workerCounts, holding problem size fixed.
func (h Harness) StrongScaling(name string, alg partition.InitialPartition, c Case, workerCounts []int) ([]Result, error) {
	results := make([]Result, 0, len(workerCounts))
	for _, w := range workerCounts {
		res, err := h.run(name, alg, c, w)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// WeakScaling runs alg once per (worker count, case) pair, for a caller
// that supplies one Case per worker count sized to keep per-worker
// problem size roughly constant (e.g. cases[i] scaled for
// workerCounts[i] workers).
func (h Harness) WeakScaling(name string, alg partition.InitialPartition, cases []Case, workerCounts []int) ([]Result, error) {
	if len(cases) != len(workerCounts) {
		return nil, partition.NewError("bench.Harness.WeakScaling", partition.InvalidInput, nil)
	}
	results := make([]Result, 0, len(workerCounts))
	for i, w := range workerCounts {
		res, err := h.run(name, alg, cases[i], w)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (h Harness) run(name string, alg partition.InitialPartition, c Case, workers int) (Result, error) {
	prevWorkers := parallel.MaxWorkers
	parallel.MaxWorkers = workers
	defer func() { parallel.MaxWorkers = prevWorkers }()

	var p *partition.Partition
	var runErr error
	var elapsed time.Duration
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		start := time.Now()
		p, runErr = alg.Partition(c.Points, c.Weights)
		elapsed = time.Since(start)
		close(done)
	}()
	<-done

	if runErr != nil && !partition.IsWarning(runErr) {
		return Result{}, runErr
	}

	label := prometheus.Labels{"algorithm": name, "workers": strconv.Itoa(workers)}
	if h.Metrics != nil {
		h.Metrics.RunDuration.With(label).Observe(elapsed.Seconds())
		h.Metrics.RunsTotal.With(label).Inc()
		h.Metrics.Imbalance.With(label).Set(analysis.ImbalanceRelative(c.Weights, p.Ids))
		if c.Adjacency != nil {
			h.Metrics.CutSize.With(label).Set(topology.CutSize(c.Adjacency, p.Ids))
		}
	}

	return Result{Algorithm: name, Workers: workers, Duration: elapsed, Partition: p, Warning: runErr}, nil
}
