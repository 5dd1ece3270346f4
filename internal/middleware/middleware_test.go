package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/pkg/auth"
)

type authenticatorFunc func(ctx context.Context, token string) (*auth.AdminClaims, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (*auth.AdminClaims, error) {
	return f(ctx, token)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAdminRouter(a Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/admin", NewAuthMiddleware(a).RequireAdmin(), func(c *gin.Context) {
		claims, ok := AdminClaimsFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Subject})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	a := authenticatorFunc(func(_ context.Context, token string) (*auth.AdminClaims, error) {
		switch token {
		case "good":
			claims := &auth.AdminClaims{Role: auth.RoleAdmin}
			claims.Subject = "admin"
			return claims, nil
		case "expired":
			return nil, apperrors.ErrExpiredToken
		case "other":
			return nil, apperrors.ErrForbidden
		default:
			return nil, apperrors.ErrUnauthorized
		}
	})
	router := newAdminRouter(a)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer junk", http.StatusUnauthorized},
		{"expired token", "Bearer expired", http.StatusUnauthorized},
		{"not admin", "Bearer other", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"username":"admin"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestExtractUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", ExtractUintParam("id", "itemID"), func(c *gin.Context) {
		id, ok := UintFromContext(c, "itemID")
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())

	for _, bad := range []string{"abc", "-1", "1.5"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.JSONEq(t, `{"error":"Invalid id"}`, w.Body.String())
	}
}

func newLimitedRouter(t *testing.T, client redis.UniversalClient, cfg RateLimitConfig) *gin.Engine {
	t.Helper()
	rl := NewRateLimiter(client)
	r := gin.New()
	r.POST("/login", rl.Limit(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/players", rl.LimitByIP(cfg), func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := RateLimitConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "rl:test"}
	router := newLimitedRouter(t, client, cfg)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Другой маршрут считается отдельно
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/players", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	// После окна счетчик сбрасывается
	mr.FastForward(time.Minute + time.Second)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	router := newLimitedRouter(t, client, LoginRateLimitConfig())
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_NilClient(t *testing.T) {
	router := newLimitedRouter(t, nil, LoginRateLimitConfig())
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
