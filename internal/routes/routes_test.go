package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/seed"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/testutil"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	_, err := seed.Run(db)
	require.NoError(t, err)

	cfg := &config.Config{
		SessionExpiry:     time.Hour,
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   time.Hour,
		AlertManagerRoles: "Admin,Supervisor,Operator",
		CORSOrigins:       "*",
		MetricsEnabled:    true,
	}

	sessions := session.NewManager(cfg)
	m := metrics.New()
	inspections := services.NewInspectionService(db)
	alerts := services.NewAlertService(db)

	app := fiber.New(fiber.Config{
		Views:        views.New(),
		ViewsLayout:  views.Layout,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Use(m.Middleware())

	Setup(app, cfg, sessions, m,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg), sessions, m),
		handlers.NewHealthHandler(func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		}),
		handlers.NewDashboardHandler(services.NewDashboardService(db), inspections, alerts, sessions),
		handlers.NewInspectionHandler(inspections, alerts, sessions, m),
		handlers.NewAlertHandler(alerts, sessions, m, cfg.AlertManagerRoles),
		handlers.NewPredictHandler(),
	)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) do(t *testing.T, req *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req, cookies...)
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}, headers map[string]string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return e.do(t, req, cookies...)
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	resp := e.postForm(t, "/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	return cookie
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestIndexRedirects(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := env.login(t, "operator@atis.com", "operator123")
	resp = env.get(t, "/", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestLoginAndDashboard(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/login")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `action="/login"`)

	cookie := env.login(t, "  operator@atis.com ", "operator123")

	resp = env.get(t, "/dashboard", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "operator@atis.com (Operator)")
	assert.Contains(t, body, "38.6%")
	assert.Contains(t, body, "BXP-8735")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestLoginWrongPasswordSetsFlashOnly(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/login", url.Values{"email": {"operator@atis.com"}, "password": {"wrong"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	// The flash session carries no principal.
	resp = env.get(t, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = env.get(t, "/login", cookie)
	assert.Contains(t, readBody(t, resp), "Invalid email or password.")

	resp = env.get(t, "/login", cookie)
	assert.NotContains(t, readBody(t, resp), "Invalid email or password.")
}

func TestLoginAfterFailureDropsStaleFlash(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/login", url.Values{"email": {"operator@atis.com"}, "password": {"wrong"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	failed := sessionCookie(resp)
	require.NotNil(t, failed)

	resp = env.postForm(t, "/login", url.Values{"email": {"operator@atis.com"}, "password": {"operator123"}}, failed)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEqual(t, failed.Value, cookie.Value)

	resp = env.get(t, "/dashboard", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "operator@atis.com (Operator)")
	assert.NotContains(t, body, "Invalid email or password.")
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postForm(t, "/login", url.Values{"email": {"nobody@atis.com"}, "password": {"admin123"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "admin@atis.com", "admin123")

	resp := env.get(t, "/logout", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = env.get(t, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAnonymousAccess(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/dashboard", "/alerts", "/history", "/reports", "/inspection/1"} {
		resp := env.get(t, path)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	for _, path := range []string{"/predict", "/api/inspections"} {
		resp := env.postJSON(t, path, map[string]string{"image": "x"}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)

		var body dto.APIResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "Unauthorized", body.Message)
	}

	resp := env.postForm(t, "/alerts/1/status", url.Values{"status": {"acknowledged"}})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestNotFoundPages(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "operator@atis.com", "operator123")

	resp := env.get(t, "/inspection/99999", cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "404")

	resp = env.get(t, "/inspection/abc", cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.get(t, "/no-such-page")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "does not exist")

	resp = env.get(t, "/api/nothing")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Error)
}

func TestInspectionDetail(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "operator@atis.com", "operator123")

	rows, err := services.NewAlertService(env.db).WithInspection(services.AlertFilter{Status: models.AlertAcknowledged, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	resp := env.get(t, fmt.Sprintf("/inspection/%d", rows[0].InspectionID), cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, fmt.Sprintf("Inspection #%d", rows[0].InspectionID))
	assert.Contains(t, body, *rows[0].Response)
}

func TestHistoryFilters(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "operator@atis.com", "operator123")

	resp := env.get(t, "/history", cookie)
	assert.Contains(t, readBody(t, resp), "44 inspections")

	resp = env.get(t, "/history?status=safe", cookie)
	assert.Contains(t, readBody(t, resp), "17 inspections")

	resp = env.get(t, "/history?plate=bxp", cookie)
	body := readBody(t, resp)
	assert.Contains(t, body, "1 inspections")
	assert.Contains(t, body, "BXP-8735")
}

func TestAlertsPage(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "supervisor@atis.com", "super123")

	resp := env.get(t, "/alerts", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "5 pending")
	assert.Contains(t, body, "Tire replaced — cleared")

	resp = env.get(t, "/alerts?status=escalated", cookie)
	body = readBody(t, resp)
	assert.Contains(t, body, "(showing escalated)")
	assert.NotContains(t, body, "Driver notified")
}

func TestAlertStatusUpdate(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "operator@atis.com", "operator123")
	alerts := services.NewAlertService(env.db)

	pending, err := alerts.WithInspection(services.AlertFilter{Status: models.AlertPending, Limit: 1})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	id := pending[0].AlertID

	resp := env.postForm(t, fmt.Sprintf("/alerts/%d/status", id),
		url.Values{"status": {"acknowledged"}, "response": {"Driver called"}}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/alerts", resp.Header.Get("Location"))

	var alert models.Alert
	require.NoError(t, env.db.First(&alert, id).Error)
	assert.Equal(t, models.AlertAcknowledged, alert.Status)
	require.NotNil(t, alert.Response)
	assert.Equal(t, "Driver called", *alert.Response)

	resp = env.get(t, "/alerts", cookie)
	assert.Contains(t, readBody(t, resp), fmt.Sprintf("Alert #%d marked acknowledged.", id))

	// acknowledged cannot go back to pending
	resp = env.postForm(t, fmt.Sprintf("/alerts/%d/status", id), url.Values{"status": {"pending"}}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	resp = env.get(t, "/alerts", cookie)
	assert.Contains(t, readBody(t, resp), "That status change is not allowed.")

	resp = env.postForm(t, "/alerts/99999/status", url.Values{"status": {"resolved"}}, cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAlertStatusUpdateForbiddenRole(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "inspector@atis.com", "inspect123")

	resp := env.get(t, "/alerts", cookie)
	assert.NotContains(t, readBody(t, resp), "/status")

	resp = env.postForm(t, "/alerts/1/status", url.Values{"status": {"resolved"}}, cookie)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "not permitted")
}

func TestPredictWithSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "operator@atis.com", "operator123")

	resp := env.postJSON(t, "/predict", map[string]string{"image": "base64"}, nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["prediction"])
	assert.Equal(t, "Prediction endpoint ready -- connect your ML model here.", body["message"])

	resp = env.postForm(t, "/predict", url.Values{"sensor": {"42"}}, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTokenAndBearerAPI(t *testing.T) {
	env := newTestEnv(t)

	resp := env.postJSON(t, "/api/token", dto.LoginRequest{Email: "operator@atis.com", Password: "nope"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.postJSON(t, "/api/token", dto.LoginRequest{Email: "operator@atis.com", Password: "operator123"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var token dto.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)
	require.NotEmpty(t, token.AccessToken)

	auth := map[string]string{"Authorization": "Bearer " + token.AccessToken}

	resp = env.postJSON(t, "/predict", map[string]string{}, auth)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.postJSON(t, "/predict", map[string]string{}, map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	plate := "NEW-0001"
	resp = env.postJSON(t, "/api/inspections", dto.RecordInspectionRequest{
		Plate:      &plate,
		Location:   "Gate 7",
		Status:     "unsafe",
		Confidence: 88,
		Defects:    []string{"Bulge", " ", "Puncture"},
	}, auth)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var recorded dto.RecordInspectionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recorded))
	assert.Equal(t, []string{"Bulge", "Puncture"}, recorded.DefectList)
	require.NotNil(t, recorded.AlertID)

	var alert models.Alert
	require.NoError(t, env.db.First(&alert, *recorded.AlertID).Error)
	assert.Equal(t, models.AlertPending, alert.Status)
	assert.Equal(t, recorded.Inspection.ID, alert.InspectionID)

	resp = env.postJSON(t, "/api/inspections", dto.RecordInspectionRequest{
		Location:   "Gate 7",
		Status:     "maybe",
		Confidence: 50,
	}, auth)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/health")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))

	env.login(t, "operator@atis.com", "operator123")

	resp = env.get(t, "/metrics")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `atis_login_attempts_total{result="success"} 1`)
	assert.Contains(t, body, `route="/health"`)
}
