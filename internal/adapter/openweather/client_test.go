package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/couchcryptid/city-weather/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey          = "test-key"
	contentTypeXML   = "application/xml"
	headerContentTyp = "Content-Type"
)

func londonXML(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "domain", "testdata", "london.xml"))
	require.NoError(t, err)
	return data
}

func testClient(baseURL string, policy domain.ConversionPolicy) *Client {
	return &Client{
		apiKey:     testKey,
		baseURL:    baseURL,
		policy:     policy,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	body := londonXML(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "xml", r.URL.Query().Get("mode"))
		assert.Equal(t, testKey, r.URL.Query().Get("appid"))
		w.Header().Set(headerContentTyp, contentTypeXML)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.Celsius)
	report, err := c.Fetch(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, "London", report.City)
	assert.Equal(t, "GB", report.Country)
	assert.InDelta(t, 15.0, report.Temperature, 1e-9)
	assert.InDelta(t, 14.35, report.FeelsLike, 1e-9)
	assert.InDelta(t, 13.0, report.TempMin, 1e-9)
	assert.InDelta(t, 17.0, report.TempMax, 1e-9)
	assert.Equal(t, "72", report.Humidity)
	assert.Equal(t, "1012", report.Pressure)
	assert.Equal(t, "NW", report.WindDirection)
	assert.Equal(t, "clouds", report.Description)
	assert.Equal(t, domain.Celsius, report.Unit)
}

func TestClient_Fetch_Fahrenheit(t *testing.T) {
	body := londonXML(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	report, err := testClient(srv.URL, domain.Fahrenheit).Fetch(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, domain.KelvinToFahrenheit(288.15), report.Temperature)
	assert.Equal(t, domain.Fahrenheit, report.Unit)
}

func TestClient_Fetch_CitySentUntrimmed(t *testing.T) {
	body := londonXML(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "  New York ", r.URL.Query().Get("q"))
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, domain.Celsius).Fetch(context.Background(), "  New York ")
	require.NoError(t, err)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, domain.Celsius).Fetch(context.Background(), "Zzqx")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Zzqx", fe.City)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestClient_Fetch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, domain.Celsius).Fetch(context.Background(), "London")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_Fetch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, domain.Celsius).Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentTyp, contentTypeXML)
		_, _ = w.Write([]byte(`<current><city name="London"></city></current>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, domain.Celsius).Fetch(context.Background(), "London")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_Fetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := testClient(url, domain.Celsius).Fetch(context.Background(), "London")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.NotContains(t, err.Error(), testKey)
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.Celsius)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.Fetch(context.Background(), "London")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(testKey, "", 0, domain.Celsius, observability.NewMetricsForTesting(), slog.Default())
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Zero(t, c.httpClient.Timeout)
	assert.Equal(t, DefaultBaseURL+"?appid=test-key&mode=xml&q=S%C3%A3o+Paulo", c.requestURL("São Paulo"))
}
