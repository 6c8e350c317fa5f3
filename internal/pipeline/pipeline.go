package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/couchcryptid/city-weather/internal/observability"
	"github.com/google/uuid"
)

// ErrBusy is returned when a search is started while another is in flight.
var ErrBusy = errors.New("search already in progress")

// Fetcher retrieves one weather report for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (domain.WeatherReport, error)
}

// Publisher receives every report that becomes the displayed state.
type Publisher interface {
	Publish(ctx context.Context, report domain.WeatherReport) error
}

// Outcome is what a shell renders after a search: the state to display and,
// for failed lookups, the notice to show over it.
type Outcome struct {
	State  domain.UiState `json:"state"`
	Notice *domain.Notice `json:"notice,omitempty"`
}

// Pipeline owns the displayed state and runs fetch, convert, present for
// each search.
type Pipeline struct {
	fetcher   Fetcher
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	inFlight atomic.Bool

	mu    sync.RWMutex
	state domain.UiState
}

// New creates a Pipeline in the idle state. publisher may be nil.
func New(f Fetcher, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	metrics.DisplayState.Set(0)
	metrics.ReportsEnabled.Set(0)
	if pub != nil {
		metrics.ReportsEnabled.Set(1)
	}
	return &Pipeline{
		fetcher:   f,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
		state:     domain.IdleState(),
	}
}

// State returns a copy of the currently displayed state.
func (p *Pipeline) State() domain.UiState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Clone()
}

// Search looks up city and, on success, makes the result the displayed state.
// On a failed lookup the state is left as it was and the returned Outcome
// carries a notice alongside the fetch error. ErrBusy is returned without
// touching the upstream API.
func (p *Pipeline) Search(ctx context.Context, city string) (Outcome, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.metrics.BusyRejections.Inc()
		return Outcome{State: p.State()}, ErrBusy
	}
	defer p.inFlight.Store(false)

	logger := p.logger.With("query_id", uuid.NewString(), "city", city)
	start := time.Now()

	report, err := p.fetcher.Fetch(ctx, city)
	p.metrics.Queries.WithLabelValues(domain.Outcome(err)).Inc()
	if err != nil {
		notice := domain.NoticeFor(err)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("city not found")
		} else {
			logger.Warn("weather lookup failed", "error", err)
		}
		return Outcome{State: p.State(), Notice: &notice}, err
	}

	p.mu.Lock()
	p.state = p.state.Show(report)
	next := p.state.Clone()
	p.mu.Unlock()
	p.metrics.DisplayState.Set(1)

	logger.Info("weather displayed",
		"background", next.Presentation.Background,
		"duration", time.Since(start),
	)

	p.publish(ctx, logger, report)
	return Outcome{State: next}, nil
}

// publish forwards the report to the publisher. Failures are logged and
// counted only.
func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, report domain.WeatherReport) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, report); err != nil {
		p.metrics.PublishErrors.Inc()
		logger.Error("publish report failed", "error", err)
		return
	}
	p.metrics.ReportsPublished.Inc()
}
