// Package metrics exposes assembly statistics as Prometheus collectors on a
// registry owned by the run.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wupperinst/itom/internal/equation"
)

// Collector records what the generator and the emitter produced. It
// implements equation.Observer.
type Collector struct {
	registry *prometheus.Registry

	emitted *prometheus.CounterVec
	skipped *prometheus.CounterVec
	seconds *prometheus.GaugeVec
	columns prometheus.Gauge
	rows    prometheus.Gauge
}

// New creates a collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "itom_rows_emitted_total",
			Help: "Constraint rows emitted, by family.",
		}, []string{"family"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "itom_rows_skipped_total",
			Help: "Index tuples that produced no row, by family and skip reason.",
		}, []string{"family", "reason"}),
		seconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "itom_family_generation_seconds",
			Help: "Wall time spent generating one family.",
		}, []string{"family"}),
		columns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itom_columns",
			Help: "Columns of the emitted linear system.",
		}),
		rows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "itom_rows",
			Help: "Rows of the emitted linear system.",
		}),
	}
}

var _ equation.Observer = (*Collector)(nil)

// FamilyDone records the counts of one generated family.
func (c *Collector) FamilyDone(s equation.Stats) {
	c.emitted.WithLabelValues(s.Family).Add(float64(s.Emitted))
	for reason, n := range s.Skipped {
		c.skipped.WithLabelValues(s.Family, reason.String()).Add(float64(n))
	}
	c.seconds.WithLabelValues(s.Family).Set(s.Elapsed.Seconds())
}

// SystemBuilt records the size of the emitted system.
func (c *Collector) SystemBuilt(rows, columns int) {
	c.rows.Set(float64(rows))
	c.columns.Set(float64(columns))
}

// Registry returns the registry the collectors live on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collectors in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
