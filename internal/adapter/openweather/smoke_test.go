//go:build owm

package openweather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/couchcryptid/city-weather/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real OpenWeatherMap API and require a valid OWM_API_KEY env var.
// Run with: go test -tags=owm ./internal/adapter/openweather/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("OWM_API_KEY")
	if key == "" {
		t.Fatal("OWM_API_KEY must be set to run smoke tests")
	}
	return NewClient(key, DefaultBaseURL, 10*time.Second, domain.Celsius,
		observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_FetchLondon(t *testing.T) {
	report, err := smokeClient(t).Fetch(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, "London", report.City)
	assert.Equal(t, "GB", report.Country)
	assert.Greater(t, report.Temperature, -60.0)
	assert.Less(t, report.Temperature, 60.0)
	assert.NotEmpty(t, report.Description)
	assert.Len(t, domain.Present(report).Lines, 9)
}

func TestSmoke_FetchUnknownCity(t *testing.T) {
	_, err := smokeClient(t).Fetch(context.Background(), "Zzqxwvy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
