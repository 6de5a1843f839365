//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"visit-scheduler/internal/handler/middleware"
	"visit-scheduler/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	tokens map[string]uuid.UUID
}

func (f fakeValidator) ValidateToken(token string) (uuid.UUID, error) {
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, errors.New("unknown token")
	}
	return id, nil
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	r.POST("/target", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	auth := middleware.NewAuthMiddleware(fakeValidator{tokens: map[string]uuid.UUID{"good": userID}})
	router := newRouter(auth.RequireAuth())

	t.Run("valid token sets the user", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/target", nil, "good")

		var body struct {
			UserID uuid.UUID `json:"userId"`
		}
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID, body.UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/target", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("rejected token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/target", nil, "forged")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestRequireCronSecret(t *testing.T) {
	router := newRouter(middleware.RequireCronSecret("s3cret"))

	send := func(header, bearer string) *nethttptest.ResponseRecorder {
		req := nethttptest.NewRequest(http.MethodPost, "/target", nil)
		if header != "" {
			req.Header.Set(middleware.CronSecretHeader, header)
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		name   string
		header string
		bearer string
		want   int
	}{
		{name: "header matches", header: "s3cret", want: http.StatusOK},
		{name: "bearer fallback", bearer: "s3cret", want: http.StatusOK},
		{name: "wrong secret", header: "guess", want: http.StatusUnauthorized},
		{name: "header wins over bearer", header: "guess", bearer: "s3cret", want: http.StatusUnauthorized},
		{name: "nothing provided", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, send(tt.header, tt.bearer).Code)
		})
	}

	t.Run("empty secret disables the check", func(t *testing.T) {
		open := newRouter(middleware.RequireCronSecret(""))
		rec := httptest.PerformRequest(t, open, http.MethodPost, "/target", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("second call within the interval is rejected", func(t *testing.T) {
		router := newRouter(middleware.RateLimit(middleware.NewHourlyLimiter(4)))

		first := httptest.PerformRequest(t, router, http.MethodPost, "/target", nil, "")
		require.Equal(t, http.StatusOK, first.Code)

		second := httptest.PerformRequest(t, router, http.MethodPost, "/target", nil, "")
		httptest.AssertErrorResponse(t, second, http.StatusTooManyRequests, "Rate limit exceeded")
	})

	t.Run("non-positive rate means unlimited", func(t *testing.T) {
		router := newRouter(middleware.RateLimit(middleware.NewHourlyLimiter(0)))
		for range 5 {
			rec := httptest.PerformRequest(t, router, http.MethodPost, "/target", nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/boom", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
}
