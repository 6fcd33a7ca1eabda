package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "empform"

// Collector owns a private registry so tests and multiple servers do not clash.
type Collector struct {
	registry         *prometheus.Registry
	saves            *prometheus.CounterVec
	validationFailed *prometheus.CounterVec
	requests         *prometheus.CounterVec
	duration         prometheus.Histogram
	tableRows        prometheus.GaugeFunc
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Save actions by outcome.",
		}, []string{"outcome"}),
		validationFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected saves by the first failing field.",
		}, []string{"field"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by status class.",
		}, []string{"class"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	c.registry.MustRegister(c.saves, c.validationFailed, c.requests, c.duration)
	return c
}

// WatchTable exposes the current number of table rows.
func (c *Collector) WatchTable(rows func() int) {
	if c.tableRows != nil {
		return
	}
	c.tableRows = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "table_rows",
		Help:      "Records currently shown in the display table.",
	}, func() float64 { return float64(rows()) })
	c.registry.MustRegister(c.tableRows)
}

func (c *Collector) ObserveSave(outcome string) {
	c.saves.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveValidationFailure(field string) {
	c.validationFailed.WithLabelValues(field).Inc()
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.WithLabelValues(statusClass(status)).Inc()
	c.duration.Observe(duration.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
