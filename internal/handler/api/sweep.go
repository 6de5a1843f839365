package api

import (
	"net/http"

	resdto "visit-scheduler/internal/handler/dto/response"
	"visit-scheduler/internal/handler/httperr"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SweepHandler struct {
	sweeper commands.Sweeper
	clock   clock.Clock
}

func NewSweepHandler(sweeper commands.Sweeper, clock clock.Clock) *SweepHandler {
	return &SweepHandler{sweeper: sweeper, clock: clock}
}

// @Summary Run expiry sweep
// @Description Releases lapsed holds and removes past slots. Called by an external scheduler.
// @Tags internal
// @Produce json
// @Param X-Cron-Secret header string false "Shared cron secret"
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /internal/sweep [post]
func (h *SweepHandler) Sweep(c *gin.Context) {
	result, err := h.sweeper.Sweep(c.Request.Context(), h.clock.Now())
	if err != nil {
		// Partial progress is still reported so the caller can see what ran
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Sweep incomplete", resdto.FromSweepResult(result))
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
