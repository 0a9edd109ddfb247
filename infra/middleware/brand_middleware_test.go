package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand_server/pkg/apperr"
	"brand_server/pkg/logger"
)

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(Recover(), RequestID())
	for _, h := range handlers {
		app.Use(h)
	}
	return app
}

func decode(t *testing.T, body io.Reader) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestErrorHandler_AppError(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return apperr.ContractViolation(errors.New("companyName is required"))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, apperr.CodeContractViolation, body.Code)
	assert.Equal(t, "invalid request", body.Error)
	assert.Equal(t, "companyName is required", body.Details)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-ID"))
}

func TestErrorHandler_FiberAndPlainErrors(t *testing.T) {
	app := newApp()
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrMethodNotAllowed })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db password wrong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 405, resp.StatusCode)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, resp.Body).Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, apperr.CodeInternalError, body.Code)
	assert.NotContains(t, body.Error, "password")
	assert.Empty(t, body.Details)
}

func TestErrorHandler_WrappedAppError(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return fmt.Errorf("export: %w", apperr.ProviderNotConfigured("mistral"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
	assert.Equal(t, apperr.CodeProviderNotConfigured, decode(t, resp.Body).Code)
}

func TestNotFound(t *testing.T) {
	app := newApp()
	app.Get("/known", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Use(NotFound())

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, apperr.CodeNotFound, body.Code)
	assert.Equal(t, "route GET /missing not found", body.Error)

	resp, err = app.Test(httptest.NewRequest("GET", "/known", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequestID_ReachesUserContext(t *testing.T) {
	app := newApp()
	var seen any
	app.Get("/", func(c *fiber.Ctx) error {
		seen = c.UserContext().Value(logger.RequestIDKey)
		return c.SendString(GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)

	assert.NotEmpty(t, string(raw))
	assert.Equal(t, string(raw), seen)
}

func TestRecover(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, apperr.CodeInternalError, decode(t, resp.Body).Code)
}

func TestRequestLogger_KeepsFinalStatus(t *testing.T) {
	app := newApp(RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error { return apperr.NotFound("logo") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, apperr.CodeNotFound, decode(t, resp.Body).Code)
}

func TestSecurityHeaders(t *testing.T) {
	app := newApp(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "default-src 'none'")
}

func TestRequireJSON(t *testing.T) {
	app := newApp(RequireJSON())
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(204) })

	tests := []struct {
		name        string
		body        string
		contentType string
		status      int
	}{
		{"json", `{"a":1}`, "application/json", 204},
		{"json with charset", `{"a":1}`, "application/json; charset=utf-8", 204},
		{"empty body", "", "", 204},
		{"form", "a=1", "application/x-www-form-urlencoded", 415},
		{"svg", "<svg/>", "image/svg+xml", 415},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest("POST", "/", body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRateLimiter_Window(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, remaining, _ := rl.allow("1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, _ = rl.allow("1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _, reset := rl.allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), reset)

	ok, _, _ = rl.allow("5.6.7.8")
	assert.True(t, ok, "other clients have their own window")

	now = now.Add(time.Minute + time.Second)
	ok, _, _ = rl.allow("1.2.3.4")
	assert.True(t, ok, "a new window starts after expiry")
}

func TestRateLimiter_Handler(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	app := newApp(rl.Handler())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, apperr.CodeRateLimited, decode(t, resp.Body).Code)
}

type fakeWindow struct {
	admit int
	calls int
}

func (f *fakeWindow) Allow(_ context.Context, _ string) (bool, time.Duration) {
	f.calls++
	return f.calls <= f.admit, 1500 * time.Millisecond
}

func (f *fakeWindow) Limit() int { return f.admit }

func TestSharedRateLimit(t *testing.T) {
	l := &fakeWindow{admit: 1}
	app := newApp(SharedRateLimit(l))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("Retry-After"))
	assert.Equal(t, apperr.CodeRateLimited, decode(t, resp.Body).Code)
}
