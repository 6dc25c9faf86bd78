package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gyminsights/internal/auth"
	"github.com/2beens/gyminsights/internal/cache"
	"github.com/2beens/gyminsights/internal/config"
	"github.com/2beens/gyminsights/internal/db"
	"github.com/2beens/gyminsights/internal/insights"
	insightsmcp "github.com/2beens/gyminsights/internal/insights/mcp"
	"github.com/2beens/gyminsights/internal/insights/service"
	"github.com/2beens/gyminsights/internal/middleware"
	"github.com/2beens/gyminsights/internal/telemetry/metrics"
	"github.com/2beens/gyminsights/internal/telemetry/tracing"
	"github.com/2beens/gyminsights/internal/workouts"
	"github.com/2beens/gyminsights/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

// workoutStore is everything the HTTP layer and the insights service need
// from workout storage.
type workoutStore interface {
	Add(ctx context.Context, w workouts.Workout) (*workouts.Workout, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*workouts.Workout, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ListForUser(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, error)
	service.HistoryProvider
}

type healthCheck func(ctx context.Context) error

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config   *config.Config
	dbPool   *pgxpool.Pool
	workouts workoutStore

	insightsService *service.Service
	mcpServer       *mcp.Server

	redisClient   *redis.Client
	rateLimiter   middleware.RequestRateLimiter
	apiKeyChecker auth.Checker
	healthChecks  map[string]healthCheck

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gyminsights", "service", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gyminsights", rdb)
	if err != nil {
		return nil, err
	}

	var insightsCache cache.Cache
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		insightsCache = cache.NewRedisCache(rdb)
	case config.CacheBackendNone:
		insightsCache = cache.NoopCache{}
	default:
		insightsCache = cache.NewMemoryCache(cfg.MemoryCacheSizeMB)
	}
	log.Debugf("insights cache backend: %s", cfg.CacheBackend)

	engine := insights.NewEngine(
		insights.WithThresholds(cfg.Thresholds.Apply(insights.DefaultThresholds())),
		insights.WithPanicHook(metricsManager.AnalyzerPanicHook()),
	)

	workoutsRepo := workouts.NewRepo(dbPool)
	insightsService := service.New(service.Params{
		Engine:           engine,
		Provider:         workoutsRepo,
		Cache:            insightsCache,
		CacheTTL:         time.Duration(cfg.CacheTTLSeconds) * time.Second,
		BatchConcurrency: cfg.BatchConcurrency,
		Metrics:          metricsManager,
	})

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		workouts:    workoutsRepo,
		versionInfo: params.VersionInfo,

		insightsService: insightsService,
		mcpServer:       insightsmcp.NewServer(dbPool, insightsService),

		redisClient:   rdb,
		rateLimiter:   redis_rate.NewLimiter(rdb),
		apiKeyChecker: auth.NewAPIKeyChecker(cfg.APIKeyHashes),
		healthChecks: map[string]healthCheck{
			"postgres": dbPool.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET")
	r.HandleFunc("/version", s.handleVersion).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	insightsHandler := service.NewHandler(s.insightsService, s.config.MaxBatchUsers)
	r.HandleFunc("/insights/analyze", insightsHandler.HandleAnalyze).Methods("POST", "OPTIONS").Name("analyze-history")
	r.HandleFunc("/insights/batch", insightsHandler.HandleBatch).Methods("POST", "OPTIONS").Name("batch-insights")
	r.HandleFunc("/insights/{userId}", insightsHandler.HandleGetInsights).Methods("GET", "OPTIONS").Name("get-insights")

	workoutsHandler := workouts.NewHandler(s.workouts, s.metricsManager)
	r.HandleFunc("/workouts/{userId}", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("add-workout")
	r.HandleFunc("/workouts/{userId}", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{userId}/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{userId}/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")

	if s.mcpServer != nil {
		mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.mcpServer
		}, nil)
		r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp")).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiKeyChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, "main-router", s.config.RateLimitAllowedPerMin))
	r.Use(middleware.LimitAndDrainRequest(int64(s.config.MaxRequestBodyKB) << 10))

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "gyminsights")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(s.healthChecks)),
	}
	status := http.StatusOK
	for name, check := range s.healthChecks {
		if err := check(ctx); err != nil {
			log.Warnf("health check [%s] failed: %s", name, err)
			resp.Checks[name] = "failing"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	pkg.WriteJSON(w, resp, status)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests first, then release what they use
	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, e := range multierr.Errors(err) {
		log.Errorf(" >>> graceful shutdown: %s", e)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
