package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"visit-scheduler/internal/handler/httperr"
	"visit-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const CronSecretHeader = "X-Cron-Secret"

var errBadCronSecret = errs.New("cron secret missing or mismatched")

// RequireCronSecret guards internal trigger endpoints. The secret is read from
// the X-Cron-Secret header, falling back to a bearer token. An empty secret
// disables the check.
func RequireCronSecret(secret string) gin.HandlerFunc {
	if secret == "" {
		slog.Warn("cron secret is empty; internal endpoints are unauthenticated")
	}
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(CronSecretHeader)
		if provided == "" {
			provided = bearerToken(c)
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errBadCronSecret, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
