package api

import (
	"net/http"

	reqdto "visit-scheduler/internal/handler/dto/request"
	resdto "visit-scheduler/internal/handler/dto/response"
	"visit-scheduler/internal/handler/httperr"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase"
	"visit-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SchedulingHandler struct {
	svc usecase.SchedulingService
}

func NewSchedulingHandler(svc usecase.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{svc: svc}
}

// @Summary List available slots
// @Description Open future slots of a property between two local dates (inclusive)
// @Tags slots
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string true "First local date (YYYY-MM-DD)"
// @Param to query string true "Last local date (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/properties/{id}/slots [get]
func (h *SchedulingHandler) ListAvailableSlots(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.SlotRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", "from and to are required")
		return
	}
	from, to, err := q.Dates()
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	views, err := h.svc.ListAvailableSlots(c.Request.Context(), propertyID, from, to)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromSlotViews(views)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Book a slot
// @Description Reserve an open slot for the authenticated visitor
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.BookSlotRequest true "Slot to book"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/properties/{id}/bookings [post]
func (h *SchedulingHandler) Book(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	visitorID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), "Invalid request", nil)
		return
	}

	view, err := h.svc.Book(c.Request.Context(), propertyID, visitorID, req.SlotID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+view.ID.String())
	c.JSON(http.StatusCreated, res)
}

// @Summary Get booking
// @Description Visible to the visitor and the property owner
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *SchedulingHandler) GetBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	view, err := h.svc.GetBooking(c.Request.Context(), bookingID, actor)
	h.respondBooking(c, http.StatusOK, view, err)
}

// @Summary Confirm booking
// @Description Confirm a pending booking before its hold expires
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/confirm [post]
func (h *SchedulingHandler) ConfirmBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	view, err := h.svc.ConfirmBooking(c.Request.Context(), bookingID, actor)
	h.respondBooking(c, http.StatusOK, view, err)
}

// @Summary Cancel booking
// @Description Cancel a live booking; the slot is offered again
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id} [delete]
func (h *SchedulingHandler) CancelBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	view, err := h.svc.CancelBooking(c.Request.Context(), bookingID, actor)
	h.respondBooking(c, http.StatusOK, view, err)
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /api/me/bookings [get]
func (h *SchedulingHandler) ListMyBookings(c *gin.Context) {
	visitorID, ok := requireUserID(c)
	if !ok {
		return
	}

	views, err := h.svc.ListMyBookings(c.Request.Context(), visitorID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingViews(views)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SchedulingHandler) respondBooking(c *gin.Context, status int, view *queries.BookingView, err error) {
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(status, res)
}
