package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/logpublisher"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
	"ordering/internal/pkg/observability"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	logger := observability.NewLogger(os.Stdout, observability.ParseLevel(configs.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: "ordering",
		Environment: configs.Environment,
		Endpoint:    configs.OtelExporterEndpoint,
		Insecure:    configs.OtelExporterInsecure,
	}, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	gormDB, err := postgres.Open(postgres.DSN(
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	publisher, closePublisher := newPublisher(configs, logger)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		publisher,
		metrics.New(),
		logger,
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	startWebServer(ctx, &app, configs.HTTPPort)

	jobManager.StopAll()
	closePublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", slog.String("error", err.Error()))
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
}

func getConfigs() cmd.Config {
	loadDotEnv()

	config := cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		KafkaBrokers:          os.Getenv("KAFKA_BROKERS"),
		KafkaOrderEventsTopic: envOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		OutboxBatchSize:       intEnv("OUTBOX_BATCH_SIZE"),
		OtelExporterEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterInsecure:  os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
		Environment:           os.Getenv("APP_ENV"),
		LogLevel:              os.Getenv("LOG_LEVEL"),
	}
	return config
}

// loadDotEnv reads .env when present. Variables already set in the
// environment take precedence.
func loadDotEnv() {
	err := godotenv.Load(".env")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string) int {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, value)
	}
	return n
}

// newPublisher returns the Kafka publisher when brokers are configured and a
// log publisher otherwise.
func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.MessagePublisher, func()) {
	brokers := kafka.ParseBrokers(configs.KafkaBrokers)
	if len(brokers) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, order events will only be logged")
		return logpublisher.NewPublisher(logger), func() {}
	}

	publisher, err := kafka.NewPublisher(brokers, configs.KafkaOrderEventsTopic)
	if err != nil {
		log.Fatalf("failed to create kafka publisher: %v", err)
	}
	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("failed to close kafka publisher", slog.String("error", closeErr.Error()))
		}
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e, err := app.CreateHTTPRouter()
	if err != nil {
		log.Fatalf("failed to build http router: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
