package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/jtquiroga/DAA-por-region/internal/dashboard"
	"github.com/jtquiroga/DAA-por-region/internal/dashboard/handler/mocks"
	"github.com/jtquiroga/DAA-por-region/internal/export"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mocks.go -package=mocks
type DashboardHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *DashboardHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockFrameService, *mocks.MockExportService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	frames := mocks.NewMockFrameService(ctrl)
	exports := mocks.NewMockExportService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(frames, exports, logger, nil)
	r := chi.NewRouter()
	h.Register(r)
	return r, frames, exports
}

func (s *DashboardHandlerSuite) TestHandlePage() {
	router, frames, _ := newTestHandler(s.T())
	frames.EXPECT().Years().Return([]int{2010, 2011})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(s.T(), body, "Transacciones de derechos de agua per cápita en Chile")
	assert.Contains(s.T(), body, `id="year-slider"`)
	assert.Contains(s.T(), body, "2011")
	assert.Contains(s.T(), body, "Nota: solo tipos")
}

func (s *DashboardHandlerSuite) TestHandleHealth() {
	router, _, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"status":"ok"}`, rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleYears() {
	router, frames, _ := newTestHandler(s.T())
	frames.EXPECT().Years().Return([]int{2008, 2009, 2010})

	req := httptest.NewRequest(http.MethodGet, "/api/years", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(s.T(), `{"years":[2008,2009,2010]}`, rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleYearsEmpty() {
	router, frames, _ := newTestHandler(s.T())
	frames.EXPECT().Years().Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/years", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"years":[]}`, rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleFrame() {
	router, frames, _ := newTestHandler(s.T())
	payload := json.RawMessage(`{"year":2010,"summary":"Total Chile 2010: 3 (0.0001 per cápita)"}`)
	frames.EXPECT().Frame(gomock.Any(), 2010).Return(payload, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/frames/2010", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), string(payload), rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleFrameUnknownYear() {
	router, frames, _ := newTestHandler(s.T())
	frames.EXPECT().Frame(gomock.Any(), 1999).
		Return(nil, dErrors.Newf(dErrors.CodeNotFound, "no data for year %d", 1999))

	req := httptest.NewRequest(http.MethodGet, "/api/frames/1999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.JSONEq(s.T(), `{"error":"not_found","message":"no data for year 1999"}`, rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleFrameBadYear() {
	router, _, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodGet, "/api/frames/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(s.T(), `{"error":"bad_request","message":"invalid year"}`, rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleSummary() {
	router, frames, _ := newTestHandler(s.T())
	frames.EXPECT().Summary(2010).Return(dashboard.SummaryResponse{
		Year:     2010,
		Summary:  "Total Chile 2010: 3 (0.0001 per cápita)",
		Footnote: "Nota: solo tipos X",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/summary/2010", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var got dashboard.SummaryResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(s.T(), 2010, got.Year)
	assert.Contains(s.T(), got.Summary, "Total Chile 2010")
	assert.Contains(s.T(), got.Footnote, "Nota: solo tipos")
}

func (s *DashboardHandlerSuite) TestHandleCreateExport() {
	router, _, exports := newTestHandler(s.T())
	run := export.Run{
		ID:        "run-1",
		Formats:   []export.Format{export.FormatCSV, export.FormatHTML},
		Status:    export.StatusQueued,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	exports.EXPECT().
		Enqueue(gomock.Any(), []export.Format{export.FormatCSV, export.FormatHTML}).
		Return(run, nil)

	body := bytes.NewReader([]byte(`{"formats":["csv","html"]}`))
	req := httptest.NewRequest(http.MethodPost, "/api/export", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusAccepted, rec.Code)
	var got export.Run
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(s.T(), "run-1", got.ID)
	assert.Equal(s.T(), export.StatusQueued, got.Status)
}

func (s *DashboardHandlerSuite) TestHandleCreateExportEmptyBody() {
	router, _, exports := newTestHandler(s.T())
	exports.EXPECT().
		Enqueue(gomock.Any(), export.DefaultFormats).
		Return(export.Run{ID: "run-2", Status: export.StatusQueued}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusAccepted, rec.Code)
}

func (s *DashboardHandlerSuite) TestHandleCreateExportUnknownFormat() {
	router, _, _ := newTestHandler(s.T())

	body := bytes.NewReader([]byte(`{"formats":["png"]}`))
	req := httptest.NewRequest(http.MethodPost, "/api/export", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "unknown export format")
}

func (s *DashboardHandlerSuite) TestHandleCreateExportQueueFull() {
	router, _, exports := newTestHandler(s.T())
	exports.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(export.Run{}, dErrors.New(dErrors.CodeUnavailable, "export queue full"))

	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(s.T(), `{"error":"unavailable","message":"export queue full"}`, rec.Body.String())
}

func (s *DashboardHandlerSuite) TestHandleGetExport() {
	router, _, exports := newTestHandler(s.T())
	exports.EXPECT().Get(gomock.Any(), "run-1").Return(export.Run{
		ID:     "run-1",
		Status: export.StatusSucceeded,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/export/run-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var got export.Run
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(s.T(), export.StatusSucceeded, got.Status)
}

func (s *DashboardHandlerSuite) TestHandleGetExportUnknown() {
	router, _, exports := newTestHandler(s.T())
	exports.EXPECT().Get(gomock.Any(), "missing").
		Return(export.Run{}, dErrors.Newf(dErrors.CodeNotFound, "export run %s not found", "missing"))

	req := httptest.NewRequest(http.MethodGet, "/api/export/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *DashboardHandlerSuite) TestHandleListExports() {
	router, _, exports := newTestHandler(s.T())
	exports.EXPECT().List(gomock.Any(), 2).Return([]export.Run{
		{ID: "run-2"}, {ID: "run-1"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/export?limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var got map[string][]export.Run
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(s.T(), got["runs"], 2)
	assert.Equal(s.T(), "run-2", got["runs"][0].ID)
}

func (s *DashboardHandlerSuite) TestHandleListExportsBadLimit() {
	router, _, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodGet, "/api/export?limit=-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusBadRequest, rec.Code)
}
