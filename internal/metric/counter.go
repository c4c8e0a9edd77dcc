package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Recorder collects the metrics of a single run on a private registry so
// they can be written out as a node-exporter textfile when the run ends.
type Recorder struct {
	registry *prometheus.Registry
	outcomes *Counter
	items    prometheus.Gauge
	duration prometheus.Histogram
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tmux_context_menu_items",
		Help: "Number of candidates offered by the last run.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tmux_context_menu_session_seconds",
		Help:    "Time the menu stayed open.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})
	reg.MustRegister(items, duration)
	return &Recorder{
		registry: reg,
		outcomes: NewCounterWithRegistry(reg, "tmux_context_menu_outcomes_total", "Runs by final outcome.", "outcome"),
		items:    items,
		duration: duration,
	}
}

func (r *Recorder) Outcome(outcome string) {
	r.outcomes.Increment(outcome)
}

func (r *Recorder) Items(count int) {
	r.items.Set(float64(count))
}

func (r *Recorder) Duration(seconds float64) {
	r.duration.Observe(seconds)
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteToTextfile writes the collected metrics atomically to path.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
