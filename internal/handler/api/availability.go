package api

import (
	"net/http"

	reqdto "visit-scheduler/internal/handler/dto/request"
	resdto "visit-scheduler/internal/handler/dto/response"
	"visit-scheduler/internal/handler/httperr"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the owner-facing pattern and slot endpoints.
type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.SchedulingQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.SchedulingQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary List availability patterns
// @Tags availability
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {array} resdto.PatternResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/patterns [get]
func (h *AvailabilityHandler) ListPatterns(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.q.ListPatterns(c.Request.Context(), propertyID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromPatternViews(views)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create availability pattern
// @Description Weekly recurring window tiled into fixed-length slots (owner only)
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.CreatePatternRequest true "Pattern"
// @Success 201 {object} resdto.PatternResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/patterns [post]
func (h *AvailabilityHandler) CreatePattern(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), "Invalid request", nil)
		return
	}
	spec, err := req.ToSpec(propertyID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	pattern, err := h.cmds.CreatePattern(c.Request.Context(), actor, spec)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view := queries.NewPatternView(pattern)
	res, err := resdto.FromPatternView(&view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Delete availability pattern
// @Description Stops future expansion; existing slots are kept (owner only)
// @Tags availability
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param patternId path string true "Pattern ID"
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/patterns/{patternId} [delete]
func (h *AvailabilityHandler) DeletePattern(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	patternID, ok := parseIDParam(c, "patternId")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cmds.DeletePattern(c.Request.Context(), actor, propertyID, patternID); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add ad-hoc slot
// @Description One-off open slot outside any pattern (owner only)
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.AddSlotRequest true "Slot bounds (RFC 3339)"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/properties/{id}/slots [post]
func (h *AvailabilityHandler) AddAdHocSlot(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), "Invalid request", nil)
		return
	}

	created, err := h.cmds.AddAdHocSlot(c.Request.Context(), actor, propertyID, req.StartAt, req.EndAt)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.GetSlot(c.Request.Context(), created.ID())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromSlotView(view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Withdraw slot
// @Description Cancel an open slot so it is never offered again (owner only)
// @Tags availability
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param slotId path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/properties/{id}/slots/{slotId} [delete]
func (h *AvailabilityHandler) WithdrawSlot(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	slotID, ok := parseIDParam(c, "slotId")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cmds.WithdrawSlot(c.Request.Context(), actor, propertyID, slotID); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
