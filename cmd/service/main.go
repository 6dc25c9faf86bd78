package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/gyminsights/internal"
	"github.com/2beens/gyminsights/internal/config"
	"github.com/2beens/gyminsights/internal/db"
	"github.com/2beens/gyminsights/internal/logging"
	"github.com/2beens/gyminsights/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	runMigrations := flag.Bool("migrate", false, "apply database migrations before starting")
	genKey := flag.Bool("gen-key", false, "generate a new API key with its bcrypt hash, then exit")
	flag.Parse()

	if *genKey {
		if err := generateAPIKey(); err != nil {
			fmt.Fprintf(os.Stderr, "generate api key: %s\n", err)
			os.Exit(1)
		}
		return
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "gyminsights-service",
	})
	defer func() {
		if err := logCloser.Close(); err != nil {
			fmt.Printf("close log file: %s\n", err)
		}
	}()

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "unknown"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	dbPassword := os.Getenv("INSIGHTS_DB_PASSWORD")
	if dbPassword == "" {
		log.Warnln("db password not set. use INSIGHTS_DB_PASSWORD")
	}

	redisPassword := os.Getenv("INSIGHTS_REDIS_PASSWORD")
	if redisPassword == "" {
		log.Warnln("redis password not set. use INSIGHTS_REDIS_PASSWORD")
	}

	if len(cfg.APIKeyHashes) == 0 {
		log.Errorln("no api key hashes configured, every protected request will be rejected. see -gen-key")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	if *runMigrations {
		if err := db.Migrate(db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: dbPassword,
		}); err != nil {
			log.Fatalf("migrate: %s", err)
		}
		log.Infoln("migrations applied")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			DBPassword:              dbPassword,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

func generateAPIKey() error {
	key, err := pkg.GenerateRandomString(40)
	if err != nil {
		return err
	}
	hash, err := pkg.HashAPIKey(key)
	if err != nil {
		return err
	}
	fmt.Printf("api key:  %s\nbcrypt hash (add to api_key_hashes or INSIGHTS_API_KEY_HASHES):\n%s\n", key, hash)
	return nil
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
