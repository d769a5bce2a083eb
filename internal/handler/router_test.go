package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/middleware"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/service"
	"github.com/noah-isme/student-records/internal/state"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

type shellStub struct {
	store *state.Store
}

func newShellStub() *shellStub {
	return &shellStub{store: state.NewStore(state.Initial(), zap.NewNop())}
}

func (s *shellStub) State() state.AppState { return s.store.Snapshot() }

func (s *shellStub) Refresh(context.Context) {}

func (s *shellStub) Navigate(view models.ViewTab) (state.AppState, error) {
	if !view.Valid() {
		return state.AppState{}, appErrors.ErrValidation
	}
	return s.store.Dispatch(state.Navigated{View: view}), nil
}

func (s *shellStub) DismissToast(id string) state.AppState {
	return s.store.Dispatch(state.ToastDismissed{ID: id})
}

func (s *shellStub) Settings(context.Context) models.Settings {
	return models.Settings{ClassList: []string{"দাখিল ষষ্ঠ"}}
}

type dashboardStub struct{}

func (dashboardStub) Summary(context.Context) dto.DashboardSummary {
	return dto.DashboardSummary{Year: "2025", Total: 3}
}

type tokenStub struct{}

func (tokenStub) ValidateToken(_ context.Context, token string) (*models.SessionClaims, error) {
	if token != "good" {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.SessionClaims{Email: "admin@example.com"}, nil
}

type metricsStub struct{}

func (metricsStub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("records_http_requests_total 1\n"))
	})
}

func (metricsStub) Snapshot() dto.MetricsSnapshot { return dto.MetricsSnapshot{RequestsTotal: 1} }

func buildRouter(shell *shellStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.WithResponseMeta())

	profiles := &profileStub{}
	reports := &reportStub{}
	hub := service.NewStateHub(shell.store, nil, zap.NewNop())
	handlers := Handlers{
		Auth:       NewAuthHandler(&authServiceStub{}),
		Shell:      NewShellHandler(shell),
		Stream:     NewStreamHandler(hub, shell, nil, zap.NewNop()),
		Dashboard:  NewDashboardHandler(dashboardStub{}),
		Profile:    NewProfileHandler(profiles, profiles, profiles, profiles, profiles),
		Enrollment: NewEnrollmentHandler(&enrollmentStub{}, &enrollmentStub{}, &enrollmentStub{}),
		Report:     NewReportHandler(reports, reports, reports),
		Migration:  NewMigrationHandler(&migrationStub{}),
	}
	RegisterRoutes(router.Group("/api/v1"), handlers, middleware.Session(tokenStub{}), zap.NewNop())
	RegisterProbes(router, NewMetricsHandler(metricsStub{}, map[string]ReadinessCheck{
		"session_store": func(context.Context) error { return nil },
	}))
	return router
}

func authed(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good")
	return req
}

func TestRouterGuardsEverythingButLoginAndDownloads(t *testing.T) {
	router := buildRouter(newShellStub())

	resp := performRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = performRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	login := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"x"}`))
	login.Header.Set("Content-Type", "application/json")
	resp = performRequest(router, login)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/export/bad", nil))
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRouterShellRoutes(t *testing.T) {
	router := buildRouter(newShellStub())

	resp := performRequest(router, authed(http.MethodGet, "/api/v1/state", ""))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"active_view":"dashboard"`)

	resp = performRequest(router, authed(http.MethodPost, "/api/v1/navigate", `{"view":"migration"}`))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"active_view":"migration"`)

	resp = performRequest(router, authed(http.MethodPost, "/api/v1/navigate", `{"view":"nowhere"}`))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(router, authed(http.MethodPost, "/api/v1/toast/dismiss", ""))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, authed(http.MethodGet, "/api/v1/settings", ""))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "দাখিল ষষ্ঠ")

	resp = performRequest(router, authed(http.MethodGet, "/api/v1/dashboard", ""))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "processing_time_ms")
}

func TestRouterResourceRoutes(t *testing.T) {
	router := buildRouter(newShellStub())

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/v1/profiles/form", "", http.StatusOK},
		{http.MethodPost, "/api/v1/profiles/cancel", "", http.StatusOK},
		{http.MethodGet, "/api/v1/profiles/2025-001", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/profiles/2025-001", "", http.StatusPreconditionFailed},
		{http.MethodDelete, "/api/v1/profiles/2025-001?confirm=true", "", http.StatusNoContent},
		{http.MethodGet, "/api/v1/enrollments", "", http.StatusOK},
		{http.MethodGet, "/api/v1/enrollments/pending", "", http.StatusOK},
		{http.MethodPost, "/api/v1/enrollments/cancel", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/custom/columns", "", http.StatusOK},
		{http.MethodGet, "/api/v1/migration", "", http.StatusOK},
		{http.MethodPost, "/api/v1/migration/select-all", "", http.StatusOK},
		{http.MethodPost, "/api/v1/migration/submit", `{"confirm":false}`, http.StatusPreconditionFailed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := performRequest(router, authed(tc.method, tc.path, tc.body))
			assert.Equal(t, tc.status, resp.Code)
		})
	}
}

func TestProbes(t *testing.T) {
	router := buildRouter(newShellStub())

	resp := performRequest(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"requests_total":1`)

	resp = performRequest(router, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, resp.Body.String(), "records_http_requests_total")

	degraded := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"session_store": func(context.Context) error { return errors.New("connection refused") },
	})
	c, w := newGinContext(http.MethodGet, "/ready", nil)
	degraded.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestStreamPushesStateTransitions(t *testing.T) {
	shell := newShellStub()
	server := httptest.NewServer(buildRouter(shell))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws?token=good"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, initial, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(initial), `"active_view":"dashboard"`)

	_, err = shell.Navigate(models.ViewFinalList)
	require.NoError(t, err)

	_, next, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(next), `"active_view":"final_list"`)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/v1/ws", nil)
	assert.Error(t, err)
}
