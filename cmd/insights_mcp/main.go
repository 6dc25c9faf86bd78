// Package main runs the insights MCP server over stdio, for local MCP
// clients. The same server is mounted by cmd/service at /mcp.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/gyminsights/internal/cache"
	"github.com/2beens/gyminsights/internal/config"
	"github.com/2beens/gyminsights/internal/db"
	"github.com/2beens/gyminsights/internal/insights"
	insightsmcp "github.com/2beens/gyminsights/internal/insights/mcp"
	"github.com/2beens/gyminsights/internal/insights/service"
	"github.com/2beens/gyminsights/internal/logging"
	"github.com/2beens/gyminsights/internal/telemetry/metrics"
	"github.com/2beens/gyminsights/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("INSIGHTS_DB_PASSWORD"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	metricsManager := metrics.NewManager("gyminsights", "mcp", prometheus.NewRegistry())
	engine := insights.NewEngine(
		insights.WithThresholds(cfg.Thresholds.Apply(insights.DefaultThresholds())),
		insights.WithPanicHook(metricsManager.AnalyzerPanicHook()),
	)
	insightsService := service.New(service.Params{
		Engine:           engine,
		Provider:         workouts.NewRepo(dbPool),
		Cache:            cache.NewMemoryCache(cfg.MemoryCacheSizeMB),
		CacheTTL:         time.Duration(cfg.CacheTTLSeconds) * time.Second,
		BatchConcurrency: cfg.BatchConcurrency,
		Metrics:          metricsManager,
	})

	server := insightsmcp.NewServer(dbPool, insightsService)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
