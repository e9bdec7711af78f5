package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	estimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fare_estimates_total",
		Help: "Total number of fare estimates served, by routing source",
	}, []string{"source"})

	quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fare_quotes_total",
		Help: "Total number of fare quotes served, by result",
	}, []string{"result"})

	noRuleTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fare_no_applicable_rule_total",
		Help: "Total number of requests rejected because no fare rule matched",
	})

	estimateCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fare_estimate_cache_requests_total",
		Help: "Estimate cache lookups by outcome (hit or miss)",
	}, []string{"outcome"})

	peakQuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fare_peak_quotes_total",
		Help: "Total number of quotes priced with the peak surge multiplier",
	})
)

func recordEstimate(source string) {
	estimatesTotal.WithLabelValues(source).Inc()
}

func recordQuote(result string) {
	quotesTotal.WithLabelValues(result).Inc()
}

func recordNoRule() {
	noRuleTotal.Inc()
}

func recordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	estimateCacheHits.WithLabelValues(outcome).Inc()
}

func recordPeakQuote() {
	peakQuotesTotal.Inc()
}
