package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/city-weather/internal/domain"
)

const testAPIKey = "owm-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testAPIKey, cfg.OWMAPIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.OWMBaseURL)
	assert.Zero(t, cfg.OWMTimeout)
	assert.Equal(t, domain.Celsius, cfg.Unit)
	assert.Equal(t, "WeatherApp/images", cfg.AssetDir)
	assert.Equal(t, 600, cfg.WindowSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "weather-reports", cfg.KafkaReportTopic)
	assert.False(t, cfg.ReportsEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("OWM_BASE_URL", "http://localhost:9000/weather")
	t.Setenv("OWM_TIMEOUT", "3s")
	t.Setenv("TEMPERATURE_UNIT", "Fahrenheit")
	t.Setenv("ASSET_DIR", "/srv/images")
	t.Setenv("WINDOW_SIZE", "800")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/weather", cfg.OWMBaseURL)
	assert.Equal(t, 3*time.Second, cfg.OWMTimeout)
	assert.Equal(t, domain.Fahrenheit, cfg.Unit)
	assert.Equal(t, "/srv/images", cfg.AssetDir)
	assert.Equal(t, 800, cfg.WindowSize)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-reports", cfg.KafkaReportTopic)
	assert.True(t, cfg.ReportsEnabled)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OWM_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWM_API_KEY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidOWMTimeout(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("OWM_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWM_TIMEOUT")
}

func TestLoad_NegativeOWMTimeout(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("OWM_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWM_TIMEOUT")
}

func TestLoad_InvalidUnit(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("TEMPERATURE_UNIT", "kelvin")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEMPERATURE_UNIT")
}

func TestLoad_InvalidWindowSize(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("WINDOW_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WINDOW_SIZE")
}

func TestLoad_ShortUnitNames(t *testing.T) {
	t.Setenv("OWM_API_KEY", testAPIKey)
	t.Setenv("TEMPERATURE_UNIT", "f")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, domain.Fahrenheit, cfg.Unit)
}
