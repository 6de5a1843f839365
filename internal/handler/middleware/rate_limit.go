package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"visit-scheduler/internal/handler/httperr"
	"visit-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

// NewHourlyLimiter allows perHour events spread evenly over an hour with a
// burst of one.
func NewHourlyLimiter(perHour int) *rate.Limiter {
	if perHour <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Hour/time.Duration(perHour)), 1)
}

// RateLimit shares one limiter across all callers of the route.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			slog.Warn("Rate limit exceeded", "path", c.FullPath(), "client_ip", c.ClientIP())
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}
