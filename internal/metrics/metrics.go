package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	AnalysesTotal  *prometheus.CounterVec
	FraudDetected  *prometheus.CounterVec
	MLDegraded     prometheus.Counter
	CacheHits      prometheus.Counter
	OTPBurstAlerts prometheus.Counter
}

// New registers and returns the engine metrics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraudguard",
			Name:      "analyses_total",
			Help:      "Analyses performed, by input path.",
		}, []string{"path"}),
		FraudDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraudguard",
			Name:      "fraud_detected_total",
			Help:      "Fraud verdicts produced, by risk level.",
		}, []string{"risk_level"}),
		MLDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fraudguard",
			Name:      "ml_degraded_total",
			Help:      "Analyses that fell back because the ML signal was unavailable.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fraudguard",
			Name:      "cache_hits_total",
			Help:      "Verdicts served from the cache.",
		}),
		OTPBurstAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fraudguard",
			Name:      "otp_burst_alerts_total",
			Help:      "OTP frequency alerts raised by the context tracker.",
		}),
	}
	reg.MustRegister(m.AnalysesTotal, m.FraudDetected, m.MLDegraded, m.CacheHits, m.OTPBurstAlerts)
	return m
}
