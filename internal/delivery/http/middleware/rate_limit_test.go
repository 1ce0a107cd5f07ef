package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jordanmarket/config"
	domainerrors "jordanmarket/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitTestMiddleware(cfg *config.RateLimitConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		cfg:  cfg,
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, remoteAddr string, userID *uuid.UUID) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set(ContextKeyUserID, *userID)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return handler(c)
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: true,
		Default: config.RateLimitRule{Limit: 3, Window: time.Minute},
	})
	mw := m.Limit("auth")

	for i := 0; i < 3; i++ {
		require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))
	}
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: true,
		Default: config.RateLimitRule{Limit: 2, Window: time.Minute},
	})
	mw := m.Limit("auth")

	require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))
	require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))

	err := doRequest(t, mw, "10.0.0.1:1234", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
}

func TestRateLimit_SeparateActors(t *testing.T) {
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: true,
		Default: config.RateLimitRule{Limit: 1, Window: time.Minute},
	})
	mw := m.Limit("auth")

	require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))
	require.NoError(t, doRequest(t, mw, "10.0.0.2:1234", nil))
	require.Error(t, doRequest(t, mw, "10.0.0.1:1234", nil))
}

func TestRateLimit_UserKeyBeatsIP(t *testing.T) {
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: true,
		Default: config.RateLimitRule{Limit: 1, Window: time.Minute},
	})
	mw := m.Limit("checkout")

	alice := uuid.New()
	bob := uuid.New()

	// Two different users behind the same IP get separate windows.
	require.NoError(t, doRequest(t, mw, "10.0.0.9:1234", &alice))
	require.NoError(t, doRequest(t, mw, "10.0.0.9:1234", &bob))
	require.Error(t, doRequest(t, mw, "10.0.0.9:1234", &alice))
}

func TestRateLimit_BucketOverride(t *testing.T) {
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: true,
		Default: config.RateLimitRule{Limit: 100, Window: time.Minute},
		Buckets: map[string]config.RateLimitRule{
			"auth": {Limit: 1, Window: time.Minute},
		},
	})

	authMW := m.Limit("auth")
	otherMW := m.Limit("browse")

	require.NoError(t, doRequest(t, authMW, "10.0.0.1:1234", nil))
	require.Error(t, doRequest(t, authMW, "10.0.0.1:1234", nil))
	require.NoError(t, doRequest(t, otherMW, "10.0.0.1:1234", nil))
}

func TestRateLimit_WindowSlides(t *testing.T) {
	current := time.Now()
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: true,
		Default: config.RateLimitRule{Limit: 1, Window: time.Second},
	})
	m.now = func() time.Time { return current }
	mw := m.Limit("auth")

	require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))
	require.Error(t, doRequest(t, mw, "10.0.0.1:1234", nil))

	current = current.Add(2 * time.Second)
	require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	m := newRateLimitTestMiddleware(&config.RateLimitConfig{
		Enabled: false,
		Default: config.RateLimitRule{Limit: 1, Window: time.Minute},
	})
	mw := m.Limit("auth")

	for i := 0; i < 10; i++ {
		require.NoError(t, doRequest(t, mw, "10.0.0.1:1234", nil))
	}
}
