package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/session-gate/internal/api/http/handlers"
	"github.com/spec-kit/session-gate/internal/auth"
	"github.com/spec-kit/session-gate/internal/observability"
)

const testSecret = "s3cr3t"

func newTestApp(t *testing.T, secret string) (*fiber.App, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics("test")
	verifier := auth.NewVerifier(secret)

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:  zap.NewNop(),
		Metrics: metrics,
		Timeout: time.Second,
		Gate:    auth.NewGate(verifier, "jwt", zap.NewNop(), metrics),
	})
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("session-gate", "test", verifier),
		Session: handlers.NewSessionHandler(),
		Metrics: metrics,
	})
	return app, metrics
}

func get(t *testing.T, app *fiber.App, path, token string) (*stdhttp.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&stdhttp.Cookie{Name: "jwt", Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func sign(t *testing.T, secret, userID string) string {
	t.Helper()
	token, _, err := auth.NewSigner(secret, time.Hour).GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func TestMe_RequiresAuthentication(t *testing.T) {
	app, _ := newTestApp(t, testSecret)

	resp, body := get(t, app, "/api/me", "")
	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"status":"Authentication required"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))

	resp, body = get(t, app, "/api/me", sign(t, "other", "u1"))
	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"status":"Authentication required"}`, string(body))

	resp, body = get(t, app, "/api/me", sign(t, testSecret, "u1"))
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"userId":"u1"}`, string(body))
}

func TestSession_ReportsBestEffortIdentity(t *testing.T) {
	app, _ := newTestApp(t, testSecret)

	var anon handlers.SessionResponse
	resp, body := get(t, app, "/api/session", "")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &anon))
	assert.False(t, anon.Authenticated)
	assert.Empty(t, anon.UserID)

	resp, body = get(t, app, "/api/session", "garbage")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode, "public routes ignore bad tokens")
	assert.JSONEq(t, `{"authenticated":false}`, string(body))

	resp, body = get(t, app, "/api/session", sign(t, testSecret, "u1"))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"authenticated":true,"userId":"u1"}`, string(body))
}

func TestUnknownRoute_UsesErrorEnvelope(t *testing.T) {
	app, _ := newTestApp(t, testSecret)

	resp, body := get(t, app, "/nope", "")

	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "NOT_FOUND", payload.Error.Code)
}

func TestPanicIsRecovered(t *testing.T) {
	app, _ := newTestApp(t, testSecret)
	app.Get("/panic", func(*fiber.Ctx) error {
		panic("kaboom")
	})

	resp, body := get(t, app, "/panic", "")

	assert.Equal(t, stdhttp.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`, string(body))
}

func TestHealth(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		app, _ := newTestApp(t, testSecret)

		resp, body := get(t, app, "/health/live", "")
		assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"alive","service":"session-gate","version":"test"}`, string(body))

		resp, body = get(t, app, "/health/ready", "")
		assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"ready","dependencies":{"auth":"ok"}}`, string(body))
	})

	t.Run("secret missing", func(t *testing.T) {
		app, _ := newTestApp(t, "")

		resp, body := get(t, app, "/health/ready", "")
		assert.Equal(t, stdhttp.StatusServiceUnavailable, resp.StatusCode)
		assert.JSONEq(t, `{"error":{"code":"SERVICE_UNAVAILABLE","message":"one or more dependencies unavailable","details":{"auth":"secret not configured"}}}`, string(body))

		resp, _ = get(t, app, "/health/live", "")
		assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testSecret)
	get(t, app, "/api/me", sign(t, "other", "u1"))

	resp, body := get(t, app, "/metrics", "")

	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `test_auth_outcomes_total{outcome="signature_mismatch"} 1`)
}
