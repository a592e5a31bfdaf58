package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jtquiroga/DAA-por-region/internal/export/artifact"
	"github.com/jtquiroga/DAA-por-region/internal/figure"
	"github.com/jtquiroga/DAA-por-region/internal/geometry"
	"github.com/jtquiroga/DAA-por-region/internal/platform/metrics"
	"github.com/jtquiroga/DAA-por-region/internal/platform/middleware"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
	"github.com/jtquiroga/DAA-por-region/pkg/requestcontext"
)

// DefaultQueueSize bounds pending dashboard export requests.
const DefaultQueueSize = 8

// HistoryStore records export runs. Satisfied by the stores in the history
// subpackage.
type HistoryStore interface {
	Append(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (Run, error)
	Update(ctx context.Context, run Run) error
	List(ctx context.Context, limit int) ([]Run, error)
}

// Service renders the dataset into artifacts and keeps a history of runs.
// Build is the synchronous path used by the CLI; Enqueue hands a run to the
// background worker for the dashboard.
type Service struct {
	panel      *rates.Panel
	figures    *figure.Builder
	boundaries *geometry.Collection
	artifacts  artifact.Store
	history    HistoryStore

	logger  *slog.Logger
	metrics *metrics.Metrics

	queueSize int
	queue     chan string
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

type Option func(s *Service)

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

func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// NewService constructs a Service. Call Start before Enqueue; Build works
// without the worker.
func NewService(panel *rates.Panel, figures *figure.Builder, boundaries *geometry.Collection, artifacts artifact.Store, history HistoryStore, opts ...Option) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		panel:      panel,
		figures:    figures,
		boundaries: boundaries,
		artifacts:  artifacts,
		history:    history,
		queueSize:  DefaultQueueSize,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queue = make(chan string, s.queueSize)
	return s
}

// Start begins processing queued runs.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop signals the worker to halt and waits for the in-flight run to finish.
func (s *Service) Stop(ctx context.Context) error {
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case id := <-s.queue:
			s.process(id)
		}
	}
}

// Build renders the requested formats synchronously and returns the finished
// run. The run is recorded in history either way.
func (s *Service) Build(ctx context.Context, formats []Format) (Run, error) {
	run, err := s.newRun(ctx, formats)
	if err != nil {
		return Run{}, err
	}
	return s.execute(ctx, run)
}

// Enqueue records a queued run and hands it to the worker. When the queue is
// full the run is marked failed and the caller gets an unavailable error.
func (s *Service) Enqueue(ctx context.Context, formats []Format) (Run, error) {
	run, err := s.newRun(ctx, formats)
	if err != nil {
		return Run{}, err
	}
	select {
	case s.queue <- run.ID:
	default:
		now := time.Now().UTC()
		run.Status = StatusFailed
		run.Error = "export queue full"
		run.UpdatedAt = now
		run.CompletedAt = &now
		if uerr := s.history.Update(ctx, run); uerr != nil {
			s.logError(ctx, "failed to record rejected run", "run_id", run.ID, "error", uerr)
		}
		s.observeExport("rejected", 0)
		return Run{}, dErrors.New(dErrors.CodeUnavailable, "export queue full")
	}
	s.logInfo(ctx, "export queued", "run_id", run.ID, "formats", run.Formats)
	return run, nil
}

// Get returns one run from history.
func (s *Service) Get(ctx context.Context, id string) (Run, error) {
	run, err := s.history.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Run{}, dErrors.Newf(dErrors.CodeNotFound, "export run %s not found", id)
	}
	if err != nil {
		return Run{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load export run")
	}
	return run, nil
}

// List returns recent runs, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Run, error) {
	runs, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list export runs")
	}
	return runs, nil
}

func (s *Service) newRun(ctx context.Context, formats []Format) (Run, error) {
	if s.panel.Empty() {
		return Run{}, dErrors.New(dErrors.CodeValidation, "no transactions loaded, nothing to export")
	}
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	now := requestcontext.Now(ctx).UTC()
	run := Run{
		ID:        uuid.NewString(),
		Formats:   formats,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.history.Append(ctx, run); err != nil {
		return Run{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record export run")
	}
	return run, nil
}

func (s *Service) process(id string) {
	run, err := s.history.Get(s.ctx, id)
	if err != nil {
		s.logError(s.ctx, "queued run lookup failed", "run_id", id, "error", err)
		return
	}
	if _, err := s.execute(s.ctx, run); err != nil {
		s.logError(s.ctx, "export run failed", "run_id", id, "error", err)
	}
}

func (s *Service) execute(ctx context.Context, run Run) (Run, error) {
	started := time.Now()
	run.Status = StatusRunning
	run.UpdatedAt = started.UTC()
	if err := s.history.Update(ctx, run); err != nil {
		s.logError(ctx, "failed to mark run running", "run_id", run.ID, "error", err)
	}

	artifacts, err := s.render(ctx, run)
	finished := time.Now().UTC()
	run.UpdatedAt = finished
	run.CompletedAt = &finished
	if err != nil {
		run.Status = StatusFailed
		run.Error = err.Error()
		if uerr := s.history.Update(ctx, run); uerr != nil {
			s.logError(ctx, "failed to mark run failed", "run_id", run.ID, "error", uerr)
		}
		s.observeExport("failed", time.Since(started))
		return run, err
	}

	run.Status = StatusSucceeded
	run.Artifacts = artifacts
	if uerr := s.history.Update(ctx, run); uerr != nil {
		s.logError(ctx, "failed to mark run succeeded", "run_id", run.ID, "error", uerr)
	}
	s.observeExport("succeeded", time.Since(started))
	s.logInfo(ctx, "export complete", "run_id", run.ID, "artifacts", len(artifacts))
	return run, nil
}

func (s *Service) render(ctx context.Context, run Run) ([]Artifact, error) {
	artifacts := make([]Artifact, 0, len(run.Formats))
	for _, format := range run.Formats {
		payload, err := s.renderFormat(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		key := path.Join("exports", run.ID, format.Filename())
		info, err := s.artifacts.Put(ctx, key, payload, format.ContentType())
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", format, err)
		}
		artifacts = append(artifacts, Artifact{
			Key:         info.Key,
			Format:      format,
			ContentType: info.ContentType,
			SizeBytes:   info.Size,
			URL:         info.URL,
			CreatedAt:   info.CreatedAt,
		})
	}
	return artifacts, nil
}

func (s *Service) renderFormat(format Format) ([]byte, error) {
	switch format {
	case FormatHTML:
		fig, err := s.figures.Animated(s.panel)
		if err != nil {
			return nil, err
		}
		return renderHTML(fig)
	case FormatJSON:
		return renderJSON(s.panel)
	case FormatCSV:
		return renderCSV(s.panel)
	case FormatGeoJSON:
		return s.boundaries.MarshalJSON()
	default:
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown export format %q", format)
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func (s *Service) logError(ctx context.Context, msg string, args ...any) {
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if s.logger != nil {
		s.logger.ErrorContext(ctx, msg, args...)
	}
}

func (s *Service) observeExport(status string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveExport(status, elapsed)
	}
}
