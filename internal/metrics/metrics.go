// Package metrics exposes tracker counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector satisfies services.SessionMetrics and services.AdviceMetrics.
type Collector struct {
	periodsLogged  prometheus.Counter
	symptomsLogged prometheus.Counter
	advice         *prometheus.CounterVec
	loginFailures  prometheus.Counter
	httpStatus     *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		periodsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "periodtracker_periods_logged_total",
			Help: "Number of period entries logged.",
		}),
		symptomsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "periodtracker_symptoms_logged_total",
			Help: "Number of symptom entries logged.",
		}),
		advice: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "periodtracker_advice_total",
			Help: "Advice responses by source.",
		}, []string{"source"}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "periodtracker_login_failures_total",
			Help: "Rejected login attempts.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "periodtracker_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.periodsLogged,
		c.symptomsLogged,
		c.advice,
		c.loginFailures,
		c.httpStatus,
	)
	return c
}

func (c *Collector) RecordPeriodLogged() {
	c.periodsLogged.Inc()
}

func (c *Collector) RecordSymptomLogged() {
	c.symptomsLogged.Inc()
}

func (c *Collector) RecordAdvice(source string) {
	c.advice.WithLabelValues(source).Inc()
}

func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
