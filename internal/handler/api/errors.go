package api

import (
	"context"
	"net/http"

	"visit-scheduler/internal/handler/httperr"
	"visit-scheduler/internal/handler/middleware"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errNoUserInContext = errs.New("authenticated user missing from context")
	errInvalidID       = errs.New("malformed id")
)

// DuplicateBookingDetail lets the client jump to the booking it already holds.
type DuplicateBookingDetail struct {
	ExistingBookingID uuid.UUID `json:"existingBookingId"`
}

// abortWithUsecaseError maps the scheduling error taxonomy onto HTTP statuses.
// Storage details never reach the client.
func abortWithUsecaseError(c *gin.Context, err error) {
	var dup *shared.DuplicateBookingError
	switch {
	case errs.As(err, &dup):
		var detail any
		if id := dup.ExistingBookingID(); id != uuid.Nil {
			detail = DuplicateBookingDetail{ExistingBookingID: id}
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate booking", detail)
	case errs.Is(err, errs.ErrDuplicateBooking):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate booking", nil)
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	case errs.Is(err, errs.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot unavailable", nil)
	case errs.Is(err, errs.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid state", err.Error())
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errs.Is(err, errs.ErrStorage), errs.Is(err, context.DeadlineExceeded):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(errInvalidID, errs.ErrValidation), "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoUserInContext, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}
