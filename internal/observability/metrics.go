package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "quiniela"

// Metrics holds the Prometheus collectors of the service on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	submissions   *prometheus.CounterVec
	ballots       *prometheus.CounterVec
	headerColumns prometheus.Counter
	gatewayCalls  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Ballot submissions by outcome.",
		}, []string{"outcome"}),
		ballots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ballots_total",
			Help:      "Ballots received by submission outcome.",
		}, []string{"outcome"}),
		headerColumns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "header_columns_added_total",
			Help:      "Match columns inserted into existing round sheet headers.",
		}),
		gatewayCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Spreadsheet gateway call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.ballots,
		m.headerColumns,
		m.gatewayCalls,
	)

	return m
}

func (m *Metrics) SubmissionFinished(outcome string, ballots int) {
	m.submissions.WithLabelValues(outcome).Inc()
	m.ballots.WithLabelValues(outcome).Add(float64(ballots))
}

func (m *Metrics) HeaderColumnsAdded(count int) {
	m.headerColumns.Add(float64(count))
}

func (m *Metrics) ObserveGatewayCall(op string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.gatewayCalls.WithLabelValues(op, outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
