package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jtquiroga/DAA-por-region/internal/figure"
	"github.com/jtquiroga/DAA-por-region/internal/platform/metrics"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
)

// FrameResponse is the per-year document the page fetches: the plotly figure
// plus the national summary line for that year.
type FrameResponse struct {
	Year    int            `json:"year"`
	Figure  *figure.Figure `json:"figure"`
	Summary string         `json:"summary"`
}

// SummaryResponse carries the text fragments without the figure.
type SummaryResponse struct {
	Year     int    `json:"year"`
	Summary  string `json:"summary"`
	Footnote string `json:"footnote"`
}

// Service renders dashboard frames. Frames are cached as marshaled documents
// when a cache is configured; cache failures fall back to rendering so the
// dashboard stays up when redis is down.
type Service struct {
	panel   *rates.Panel
	figures *figure.Builder
	cache   FrameCache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithCache(cache FrameCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(panel *rates.Panel, figures *figure.Builder, opts ...Option) *Service {
	s := &Service{panel: panel, figures: figures}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Years returns the slider years, ascending. Empty when no data is loaded.
func (s *Service) Years() []int {
	return s.panel.Years
}

// Frame returns the marshaled frame document for a year.
func (s *Service) Frame(ctx context.Context, year int) (json.RawMessage, error) {
	if !s.panel.HasYear(year) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no data for year %d", year)
	}

	key := frameKey(year)
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.incrementCacheHit()
			s.incrementFramesServed()
			return payload, nil
		case errors.Is(err, sentinel.ErrNotFound):
			s.incrementCacheMiss()
		default:
			s.logWarn(ctx, "frame cache read failed", "year", year, "error", err)
		}
	}

	payload, err := s.renderFrame(year)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, payload); err != nil {
			s.logWarn(ctx, "frame cache write failed", "year", year, "error", err)
		}
	}
	s.incrementFramesServed()
	return payload, nil
}

// Summary returns the text fragments for a year.
func (s *Service) Summary(year int) (SummaryResponse, error) {
	summary, err := s.panel.DashboardSummary(year)
	if err != nil {
		return SummaryResponse{}, err
	}
	return SummaryResponse{
		Year:     year,
		Summary:  summary,
		Footnote: rates.DashboardFootnote(),
	}, nil
}

func (s *Service) renderFrame(year int) (json.RawMessage, error) {
	fig, err := s.figures.Year(s.panel, year)
	if err != nil {
		return nil, err
	}
	summary, err := s.panel.DashboardSummary(year)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(FrameResponse{Year: year, Figure: fig, Summary: summary})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode frame")
	}
	return payload, nil
}

func frameKey(year int) string {
	return fmt.Sprintf("frame:%d", year)
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}

func (s *Service) incrementFramesServed() {
	if s.metrics != nil {
		s.metrics.IncrementFramesServed()
	}
}

func (s *Service) incrementCacheHit() {
	if s.metrics != nil {
		s.metrics.IncrementCacheHit()
	}
}

func (s *Service) incrementCacheMiss() {
	if s.metrics != nil {
		s.metrics.IncrementCacheMiss()
	}
}
