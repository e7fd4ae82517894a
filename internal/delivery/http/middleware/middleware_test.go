package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	m := newMemoryLimiter(ContactRateLimitConfig(2, time.Minute))
	now := time.Now()

	allowed, remaining, _ := m.allow("1.2.3.4", now)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, _, _ = m.allow("1.2.3.4", now)
	assert.True(t, allowed)

	allowed, remaining, resetAt := m.allow("1.2.3.4", now)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetAt.After(now))

	allowed, _, _ = m.allow("5.6.7.8", now)
	assert.True(t, allowed, "buckets are per key")

	m.sweep(now.Add(3 * time.Minute))
	assert.Empty(t, m.visitors)
}

func TestCSRFMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(CSRFMiddleware(false))
	r.POST("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("Should accept the token in the header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "abc123"})
		req.Header.Set(CSRFTokenHeaderName, "abc123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Should reject a mismatched token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "abc123"})
		req.Header.Set(CSRFTokenHeaderName, "zzz999")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid CSRF token")
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "not-a-uuid", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}
