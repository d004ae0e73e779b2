package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	reportService = "report_service"

	// Job metrics
	jobsProcessedTotal = "jobs_processed_total"
	jobsInFlight       = "jobs_in_flight"
	jobsReclaimedTotal = "jobs_reclaimed_total"

	// Labels
	jobStatusLabel = "status"
)

var jobsProcessedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: reportService,
		Name:      jobsProcessedTotal,
		Help:      "number of report jobs driven to a terminal status",
	},
	[]string{jobStatusLabel},
)

var jobsInFlightMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: reportService,
		Name:      jobsInFlight,
		Help:      "number of report jobs currently being processed",
	},
)

var jobsReclaimedTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: reportService,
		Name:      jobsReclaimedTotal,
		Help:      "number of completed report jobs deleted by the retention sweeper",
	},
)

func IncreaseJobsProcessedTotalMetric(status string) {
	jobsProcessedTotalMetric.With(prometheus.Labels{jobStatusLabel: status}).Inc()
}

func IncreaseJobsInFlightMetric() {
	jobsInFlightMetric.Inc()
}

func DecreaseJobsInFlightMetric() {
	jobsInFlightMetric.Dec()
}

func IncreaseJobsReclaimedTotalMetric() {
	jobsReclaimedTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(jobsProcessedTotalMetric)
	prometheus.MustRegister(jobsInFlightMetric)
	prometheus.MustRegister(jobsReclaimedTotalMetric)
}

type PrometheusMetricsHandler struct{}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}
