package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// insights sources
const (
	SourceComputed = "computed"
	SourceCache    = "cache"
	SourceDefault  = "default"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterInsights            *prometheus.CounterVec
	CounterAnalyzerPanics      *prometheus.CounterVec
	CounterCacheHits           prometheus.Counter
	CounterCacheMisses         prometheus.Counter
	CounterWorkoutsAdded       prometheus.Counter
	CounterWorkoutsDropped     prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistogramInsightsLatency prometheus.Histogram
	HistogramHistorySize     prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("gyminsights", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gyminsights", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterInsights := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "insights_generated",
		Help:      "The total number of insights served, by source",
	}, []string{"source"})
	counterAnalyzerPanics := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analyzer_panics",
		Help:      "The total number of analyzer failures replaced by empty results",
	}, []string{"analyzer"})
	counterCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "insights_cache_hits",
		Help:      "The total number of insights cache hits",
	})
	counterCacheMisses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "insights_cache_misses",
		Help:      "The total number of insights cache misses",
	})
	counterWorkoutsAdded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_added",
		Help:      "The total number of stored workouts",
	})
	counterWorkoutsDropped := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_dropped",
		Help:      "The total number of workout records dropped during coercion",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramInsightsLatency := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "insights_generation_seconds",
		Help:      "Time spent running the insights engine",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	})
	histogramHistorySize := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "history_size_sessions",
		Help:      "Number of sessions in the analyzed histories",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterInsights:            counterInsights,
		CounterAnalyzerPanics:      counterAnalyzerPanics,
		CounterCacheHits:           counterCacheHits,
		CounterCacheMisses:         counterCacheMisses,
		CounterWorkoutsAdded:       counterWorkoutsAdded,
		CounterWorkoutsDropped:     counterWorkoutsDropped,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistogramRequestDuration:   histogramRequestDuration,
		HistogramInsightsLatency:   histogramInsightsLatency,
		HistogramHistorySize:       histogramHistorySize,
	}
}

// AnalyzerPanicHook returns a hook that counts failed analyzers.
func (m *Manager) AnalyzerPanicHook() func(analyzer string, recovered any) {
	return func(analyzer string, _ any) {
		m.CounterAnalyzerPanics.WithLabelValues(analyzer).Inc()
	}
}
