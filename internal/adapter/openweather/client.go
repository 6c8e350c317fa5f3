package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/couchcryptid/city-weather/internal/observability"
)

// DefaultBaseURL is the current weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client fetches current weather reports from the OpenWeatherMap XML API.
type Client struct {
	apiKey     string
	baseURL    string
	policy     domain.ConversionPolicy
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client. A zero timeout leaves the
// request bounded only by its context.
func NewClient(apiKey, baseURL string, timeout time.Duration, policy domain.ConversionPolicy, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		policy:     policy,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger,
	}
}

// Fetch performs one GET for city and returns a report in the client's
// display unit. The city text is sent as given. Errors are *domain.FetchError.
func (c *Client) Fetch(ctx context.Context, city string) (domain.WeatherReport, error) {
	start := time.Now()
	body, err := c.doRequest(ctx, city)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.WeatherReport{}, err
	}

	obs, err := domain.ParseObservation(body)
	if err != nil {
		return domain.WeatherReport{}, &domain.FetchError{Kind: domain.ErrMalformedResponse, City: city, Err: err}
	}

	report := domain.NewReport(obs, c.policy)
	c.logger.Debug("weather fetched",
		"city", report.City,
		"country", report.Country,
		"description", report.Description,
		"duration", time.Since(start),
	)
	return report, nil
}

func (c *Client) requestURL(city string) string {
	params := url.Values{
		"q":     {city},
		"mode":  {"xml"},
		"appid": {c.apiKey},
	}
	return c.baseURL + "?" + params.Encode()
}

func (c *Client) doRequest(ctx context.Context, city string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(city), nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrTransport, City: city, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrTransport, City: city, Err: redactKey(err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.FetchError{Kind: domain.ErrNotFound, City: city, StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.FetchError{
			Kind:       domain.ErrTransport,
			City:       city,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("openweathermap API error: %s", snippet),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrTransport, City: city, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// redactKey strips the request URL, which carries the API key, from client errors.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
