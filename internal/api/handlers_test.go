package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naologic/reflow/internal/metrics"
	"github.com/naologic/reflow/tests/mocks"
)

func newTestHandlers(t *testing.T) (*Handlers, *mocks.MockDatabase) {
	t.Helper()
	db := mocks.NewMockDatabase()
	m := metrics.New(nil)
	return NewHandlers(db, nil, m, zap.NewNop()), db
}

func TestHandlers_Health(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h, _ := newTestHandlers(t)
	require.NoError(t, h.Health(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
}

func TestHandlers_HealthDB_ReflectsRepositoryHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health/db", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h, db := newTestHandlers(t)
	db.HealthErr = errHealthUnavailable

	require.NoError(t, h.HealthDB(c))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlers_Reflow_NoOpFeasibleCase(t *testing.T) {
	body := `{
		"work_orders": [
			{"id": "wo-1", "manufacturing_order_id": "mo-1", "work_center_id": "wc-1",
			 "start": "2026-01-05T08:00:00Z", "end": "2026-01-05T10:00:00Z", "duration_minutes": 120}
		],
		"work_centers": [
			{"id": "wc-1", "name": "Press 1"}
		],
		"manufacturing_orders": [
			{"id": "mo-1", "due_date": "2026-01-10T00:00:00Z"}
		]
	}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reflow", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h, _ := newTestHandlers(t)
	require.NoError(t, h.Reflow(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
}

func TestHandlers_Reflow_InvalidBodyReturnsBadRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reflow", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h, _ := newTestHandlers(t)
	require.NoError(t, h.Reflow(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_GetReflowRun_NotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/reflow/runs/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	h, _ := newTestHandlers(t)
	require.NoError(t, h.GetReflowRun(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

var errHealthUnavailable = httpError("database connection refused")

type httpError string

func (e httpError) Error() string { return string(e) }
