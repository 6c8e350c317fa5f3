package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/city-weather/internal/domain"
)

// Config holds all application settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OpenWeatherMap API configuration.
	OWMAPIKey  string
	OWMBaseURL string
	OWMTimeout time.Duration // zero means the request never times out

	Unit       domain.ConversionPolicy
	// AssetDir holds the background images; see cmd/weather for the file list.
	AssetDir   string
	WindowSize int

	// Report events. Publishing is disabled when no brokers are set.
	KafkaBrokers     []string
	KafkaReportTopic string
	ReportsEnabled   bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	owmTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("OWM_TIMEOUT", "0s"))
	if err != nil || owmTimeout < 0 {
		return nil, errors.New("invalid OWM_TIMEOUT")
	}

	unit, err := domain.ParseConversionPolicy(sharedcfg.EnvOrDefault("TEMPERATURE_UNIT", "celsius"))
	if err != nil {
		return nil, errors.New("invalid TEMPERATURE_UNIT: " + err.Error())
	}

	windowSize, err := parseWindowSize()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OWMAPIKey:  os.Getenv("OWM_API_KEY"),
		OWMBaseURL: sharedcfg.EnvOrDefault("OWM_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		OWMTimeout: owmTimeout,

		Unit:       unit,
		AssetDir:   sharedcfg.EnvOrDefault("ASSET_DIR", "WeatherApp/images"),
		WindowSize: windowSize,

		KafkaBrokers:     brokers,
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "weather-reports"),
		ReportsEnabled:   len(brokers) > 0,
	}

	if cfg.OWMAPIKey == "" {
		return nil, errors.New("OWM_API_KEY is required")
	}
	if cfg.OWMBaseURL == "" {
		return nil, errors.New("OWM_BASE_URL is required")
	}
	if cfg.ReportsEnabled && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_REPORT_TOPIC is empty")
	}

	return cfg, nil
}

func parseWindowSize() (int, error) {
	s := os.Getenv("WINDOW_SIZE")
	if s == "" {
		return 600, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 4096 {
		return 0, errors.New("invalid WINDOW_SIZE: must be between 1 and 4096")
	}
	return n, nil
}
