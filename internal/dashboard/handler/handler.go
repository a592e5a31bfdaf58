package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jtquiroga/DAA-por-region/internal/dashboard"
	"github.com/jtquiroga/DAA-por-region/internal/export"
	"github.com/jtquiroga/DAA-por-region/internal/platform/metrics"
	"github.com/jtquiroga/DAA-por-region/internal/platform/middleware"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

//go:embed templates/page.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const pageTitle = "Transacciones de derechos de agua per cápita en Chile"

// FrameService serves the per-year frame documents behind the page.
type FrameService interface {
	Years() []int
	Frame(ctx context.Context, year int) (json.RawMessage, error)
	Summary(year int) (dashboard.SummaryResponse, error)
}

// ExportService queues and reports export runs.
type ExportService interface {
	Enqueue(ctx context.Context, formats []export.Format) (export.Run, error)
	Get(ctx context.Context, id string) (export.Run, error)
	List(ctx context.Context, limit int) ([]export.Run, error)
}

// Handler serves the dashboard page and its JSON API.
type Handler struct {
	frames  FrameService
	exports ExportService
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(frames FrameService, exports ExportService, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		frames:  frames,
		exports: exports,
		logger:  logger,
		metrics: metrics,
	}
}

// Register registers the dashboard routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.LatencyMiddleware(h.metrics))

	router.Get("/", h.handlePage)
	router.Get("/healthz", h.handleHealth)

	router.Route("/api", func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		api.Get("/years", h.handleYears)
		api.Get("/frames/{year}", h.handleFrame)
		api.Get("/summary/{year}", h.handleSummary)
		api.Get("/export", h.handleListExports)
		api.Post("/export", h.handleCreateExport)
		api.Get("/export/{id}", h.handleGetExport)
	})

	r.Mount("/", router)
}

type pageData struct {
	Title    string
	Years    []int
	Footnote string
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Title:    pageTitle,
		Years:    h.frames.Years(),
		Footnote: rates.DashboardFootnote(),
	}
	if err := page.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleYears(w http.ResponseWriter, _ *http.Request) {
	years := h.frames.Years()
	if years == nil {
		years = []int{}
	}
	writeJSON(w, http.StatusOK, map[string][]int{"years": years})
}

func (h *Handler) handleFrame(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := h.frames.Frame(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, payload)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.frames.Summary(year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type createExportRequest struct {
	Formats []string `json:"formats"`
}

func (h *Handler) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	var req createExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "invalid export request",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	formats, err := export.ParseFormats(req.Formats)
	if err != nil {
		writeError(w, err)
		return
	}
	run, err := h.exports.Enqueue(r.Context(), formats)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, run)
}

func (h *Handler) handleListExports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid limit"))
			return
		}
		limit = parsed
	}
	runs, err := h.exports.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []export.Run{}
	}
	writeJSON(w, http.StatusOK, map[string][]export.Run{"runs": runs})
}

func (h *Handler) handleGetExport(w http.ResponseWriter, r *http.Request) {
	run, err := h.exports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func yearParam(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid year")
	}
	return year, nil
}
