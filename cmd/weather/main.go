// Command weather serves the weather lookup as a browser UI and JSON API.
//
// Backgrounds are read from ASSET_DIR (default WeatherApp/images, relative to
// the working directory), which must hold clearsky.png, raining.png,
// cloudy.jpg, haze.png, mist.jpg and default.jpg. Until default.jpg exists
// /readyz reports 503 and background requests fail. Placeholder images can be
// generated with:
//
//	go run ./cmd/mockapi -assets WeatherApp/images
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/city-weather/internal/adapter/assets"
	httpadapter "github.com/couchcryptid/city-weather/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/city-weather/internal/adapter/kafka"
	"github.com/couchcryptid/city-weather/internal/adapter/openweather"
	"github.com/couchcryptid/city-weather/internal/config"
	"github.com/couchcryptid/city-weather/internal/observability"
	"github.com/couchcryptid/city-weather/internal/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := openweather.NewClient(cfg.OWMAPIKey, cfg.OWMBaseURL, cfg.OWMTimeout, cfg.Unit, metrics, logger)
	loader := assets.NewLoader(cfg.AssetDir, metrics, logger)
	if err := loader.CheckReadiness(context.Background()); err != nil {
		logger.Warn("background assets unavailable, service will report not ready", "asset_dir", cfg.AssetDir, "error", err)
	}

	// Report events are feature-flagged via KAFKA_BROKERS.
	var publisher *kafkaadapter.Publisher
	var pub pipeline.Publisher
	if cfg.ReportsEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		pub = publisher
		logger.Info("report events enabled", "topic", cfg.KafkaReportTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("report events disabled")
	}

	p := pipeline.New(client, pub, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, loader, cfg.WindowSize, loader, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("weather app started", "unit", cfg.Unit, "asset_dir", cfg.AssetDir)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
