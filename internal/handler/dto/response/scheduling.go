package response

import (
	"time"

	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"propertyId"`
	PatternID  *uuid.UUID `json:"patternId,omitempty"`
	StartAt    time.Time  `json:"startAt"`
	EndAt      time.Time  `json:"endAt"`
	LocalStart string     `json:"localStart"`
	LocalEnd   string     `json:"localEnd"`
	TimeZone   string     `json:"timeZone"`
	Status     string     `json:"status"`
}

type BookingResponse struct {
	ID                   uuid.UUID     `json:"id"`
	SlotID               uuid.UUID     `json:"slotId"`
	VisitorID            uuid.UUID     `json:"visitorId"`
	PropertyID           uuid.UUID     `json:"propertyId"`
	Status               string        `json:"status"`
	CreatedAt            time.Time     `json:"createdAt"`
	ReservationExpiresAt time.Time     `json:"reservationExpiresAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
	Slot                 *SlotResponse `json:"slot,omitempty" copier:"-"`
}

func FromSlotView(v *queries.SlotView) (*SlotResponse, error) {
	res := &SlotResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "copy slot view")
	}
	return res, nil
}

func FromSlotViews(views []queries.SlotView) ([]*SlotResponse, error) {
	res := make([]*SlotResponse, len(views))
	for i := range views {
		r, err := FromSlotView(&views[i])
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "copy booking view")
	}
	if v.Slot != nil {
		s, err := FromSlotView(v.Slot)
		if err != nil {
			return nil, err
		}
		res.Slot = s
	}
	return res, nil
}

func FromBookingViews(views []queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, len(views))
	for i := range views {
		r, err := FromBookingView(&views[i])
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}
