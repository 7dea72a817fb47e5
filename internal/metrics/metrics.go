package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Calculation results.
const (
	CalculationOK      = "ok"
	CalculationInvalid = "invalid"
	CalculationError   = "error"
)

var (
	// Calculations counts selling price calculations by result.
	Calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "priceninja_calculations_total",
			Help: "Total number of selling price calculations by result",
		},
		[]string{"result"},
	)

	// SuggestionRequests counts AI suggestion requests by result.
	SuggestionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "priceninja_suggestion_requests_total",
			Help: "Total number of AI pricing suggestion requests by result",
		},
		[]string{"result"},
	)

	// SuggestionDuration observes how long the text-generation service takes to answer.
	SuggestionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "priceninja_suggestion_duration_seconds",
			Help:    "Time taken by the text-generation service to answer a suggestion request",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// HTTPRequestDuration observes served requests by method, route pattern and status.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "priceninja_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		Calculations,
		SuggestionRequests,
		SuggestionDuration,
		HTTPRequestDuration,
	)
}

// RecordCalculation counts a calculation with the given result.
func RecordCalculation(result string) {
	Calculations.WithLabelValues(result).Inc()
}

// RecordSuggestion records the duration and result of one suggestion request.
func RecordSuggestion(duration time.Duration, err error) {
	SuggestionDuration.Observe(duration.Seconds())
	result := "success"
	if err != nil {
		result = "failure"
	}
	SuggestionRequests.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records the duration of a served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
