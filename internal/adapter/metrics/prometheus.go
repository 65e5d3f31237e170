package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "strike_connect"

// Prometheus implements ports.MetricsRecorder on a private registry.
type Prometheus struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	quotaUsed       prometheus.Gauge
	relayConnected  prometheus.Gauge
	reconnects      prometheus.Counter
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nwc_requests_total",
				Help:      "Number of wallet requests handled, by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "nwc_request_duration_seconds",
				Help:      "Time from receipt to response per wallet request",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		quotaUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quota_used_sats",
			Help:      "Sats committed against the send quota",
		}),
		relayConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "relay_connected",
			Help:      "1 while the relay subscription is live",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_reconnects_total",
			Help:      "Number of relay connection attempts after a failure or close",
		}),
	}

	p.registry.MustRegister(
		p.requests,
		p.requestDuration,
		p.quotaUsed,
		p.relayConnected,
		p.reconnects,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) ObserveRequest(method, outcome string, d time.Duration) {
	p.requests.WithLabelValues(method, outcome).Inc()
	p.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (p *Prometheus) SetQuotaUsed(sats int64) {
	p.quotaUsed.Set(float64(sats))
}

func (p *Prometheus) SetRelayConnected(connected bool) {
	if connected {
		p.relayConnected.Set(1)
		return
	}
	p.relayConnected.Set(0)
}

func (p *Prometheus) IncReconnects() {
	p.reconnects.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
