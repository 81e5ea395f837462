package obs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Quote outcomes used as the "result" label.
const (
	ResultOK              = "ok"
	ResultNotReady        = "not_ready"
	ResultInvalidArgument = "invalid_argument"
	ResultError           = "error"
)

// PricingMetrics groups Prometheus collectors for order quoting.
type PricingMetrics struct {
	QuotesTotal *prometheus.CounterVec
	QuoteDur    *prometheus.HistogramVec
	QuoteItems  *prometheus.HistogramVec
	InFlight    prometheus.Gauge
}

// NewPricingMetrics registers and returns pricing metrics collectors.
func NewPricingMetrics(namespace string, buckets []float64, reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	} else {
		sort.Float64s(buckets)
	}
	m := &PricingMetrics{
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_quotes_total",
			Help:      "Count of order quote outcomes.",
		}, []string{"result"}),
		QuoteDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_quote_duration_ms",
			Help:      "Order quote latency distribution in milliseconds.",
			Buckets:   buckets,
		}, []string{"result"}),
		QuoteItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_quote_items",
			Help:      "Number of line items per quoted order.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}, []string{"result"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pricing_quotes_in_flight",
			Help:      "Current number of quotes being computed.",
		}),
	}
	mustRegister(reg, &m.QuotesTotal, &m.QuoteDur, &m.InFlight)
	mustRegister(reg, nil, &m.QuoteItems, nil)
	return m
}

// Observe records one finished quote over an order of items line items.
func (m *PricingMetrics) Observe(result string, d time.Duration, items int) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(result).Inc()
	m.QuoteDur.WithLabelValues(result).Observe(DurationMillis(d))
	m.QuoteItems.WithLabelValues(result).Observe(float64(items))
}

// ParseBucketsCSV converts a comma-separated list of bucket boundaries (milliseconds) into floats.
func ParseBucketsCSV(csv string) []float64 {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			continue
		}
		if v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func mustRegister(reg prometheus.Registerer, counter **prometheus.CounterVec, histo **prometheus.HistogramVec, gauge *prometheus.Gauge) {
	if counter != nil {
		if err := reg.Register(*counter); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					*counter = existing
				}
			} else {
				panic(fmt.Errorf("register counter: %w", err))
			}
		}
	}
	if histo != nil {
		if err := reg.Register(*histo); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
					*histo = existing
				}
			} else {
				panic(fmt.Errorf("register histogram: %w", err))
			}
		}
	}
	if gauge != nil {
		if err := reg.Register(*gauge); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
					*gauge = existing
				}
			} else {
				panic(fmt.Errorf("register gauge: %w", err))
			}
		}
	}
}
