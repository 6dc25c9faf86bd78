package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/gyminsights/internal/cache"
	"github.com/2beens/gyminsights/internal/insights"
	"github.com/2beens/gyminsights/internal/telemetry/metrics"
	"github.com/2beens/gyminsights/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=service_test

// HistoryProvider supplies a user's stored workout history.
type HistoryProvider interface {
	GetHistory(ctx context.Context, userID string) ([]insights.WorkoutRecord, error)
	// HistoryVersion changes whenever the user's history changes.
	HistoryVersion(ctx context.Context, userID string) (int64, error)
}

type Params struct {
	Engine   *insights.Engine
	Provider HistoryProvider
	Cache    cache.Cache
	CacheTTL time.Duration
	// BatchConcurrency bounds parallel evaluations in GetInsightsForUsers.
	BatchConcurrency int
	Metrics          *metrics.Manager
}

type Service struct {
	engine           *insights.Engine
	provider         HistoryProvider
	cache            cache.Cache
	cacheTTL         time.Duration
	batchConcurrency int
	metrics          *metrics.Manager
}

func New(params Params) *Service {
	c := params.Cache
	if c == nil {
		c = cache.NoopCache{}
	}
	concurrency := params.BatchConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{
		engine:           params.Engine,
		provider:         params.Provider,
		cache:            c,
		cacheTTL:         params.CacheTTL,
		batchConcurrency: concurrency,
		metrics:          params.Metrics,
	}
}

func (s *Service) Engine() *insights.Engine {
	return s.engine
}

// GetInsights returns the insights for a user's stored history. It never
// fails: when the history cannot be read the empty-history insights are
// returned instead.
func (s *Service) GetInsights(ctx context.Context, userID string) insights.AIInsights {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.insights.get")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.metrics.HistogramInsightsLatency.Observe(time.Since(start).Seconds())
	}()

	version, err := s.provider.HistoryVersion(ctx, userID)
	if err != nil {
		log.Warnf("insights for [%s]: history version: %s", userID, err)
		return s.fallback(userID)
	}
	span.SetAttributes(attribute.Int64("history.version", version))

	key := cache.InsightsKey(userID, version)
	if cached, ok := s.cachedInsights(ctx, key); ok {
		s.metrics.CounterInsights.WithLabelValues(metrics.SourceCache).Inc()
		return cached
	}

	history, err := s.provider.GetHistory(ctx, userID)
	if err != nil {
		log.Warnf("insights for [%s]: get history: %s", userID, err)
		return s.fallback(userID)
	}
	s.metrics.HistogramHistorySize.Observe(float64(len(history)))
	span.SetAttributes(attribute.Int("history.size", len(history)))

	result := s.engine.GenerateInsights(history)
	s.metrics.CounterInsights.WithLabelValues(metrics.SourceComputed).Inc()

	if err := s.storeInsights(ctx, key, result); err != nil {
		log.Errorf("insights for [%s]: cache set: %s", userID, err)
	}

	return result
}

func (s *Service) fallback(userID string) insights.AIInsights {
	log.Debugf("insights for [%s]: serving defaults", userID)
	s.metrics.CounterInsights.WithLabelValues(metrics.SourceDefault).Inc()
	return insights.DefaultInsights()
}

func (s *Service) cachedInsights(ctx context.Context, key string) (insights.AIInsights, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		s.metrics.CounterCacheMisses.Inc()
		return insights.AIInsights{}, false
	}

	var cached insights.AIInsights
	if err := json.Unmarshal(raw, &cached); err != nil {
		log.Errorf("cached insights [%s] unreadable: %s", key, err)
		s.metrics.CounterCacheMisses.Inc()
		return insights.AIInsights{}, false
	}
	s.metrics.CounterCacheHits.Inc()

	return cached, true
}

func (s *Service) storeInsights(ctx context.Context, key string, result insights.AIInsights) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}

// Analyze evaluates a supplied history without touching storage or cache.
func (s *Service) Analyze(ctx context.Context, history []insights.WorkoutRecord) insights.AIInsights {
	_, span := tracing.GlobalTracer.Start(ctx, "service.insights.analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("history.size", len(history)))

	s.metrics.HistogramHistorySize.Observe(float64(len(history)))
	result := s.engine.GenerateInsights(history)
	s.metrics.CounterInsights.WithLabelValues(metrics.SourceComputed).Inc()

	return result
}

// GetInsightsForUsers evaluates every distinct user in ids. Each user is
// evaluated independently, so one user's failure only yields defaults for
// that user.
func (s *Service) GetInsightsForUsers(ctx context.Context, ids []string) (map[string]insights.AIInsights, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.insights.batch")
	defer span.End()
	span.SetAttributes(attribute.Int("users.count", len(ids)))

	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	results := make([]insights.AIInsights, len(unique))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, id := range unique {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = s.GetInsights(gCtx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]insights.AIInsights, len(unique))
	for i, id := range unique {
		out[id] = results[i]
	}
	return out, nil
}
