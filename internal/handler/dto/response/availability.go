package response

import (
	"time"

	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PatternResponse struct {
	ID                  uuid.UUID  `json:"id"`
	PropertyID          uuid.UUID  `json:"propertyId"`
	Weekday             int        `json:"weekday"`
	StartTime           string     `json:"startTime"`
	EndTime             string     `json:"endTime"`
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	ValidFrom           string     `json:"validFrom"`
	ValidUntil          *string    `json:"validUntil,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	DeletedAt           *time.Time `json:"deletedAt,omitempty"`
}

func FromPatternView(v *queries.PatternView) (*PatternResponse, error) {
	res := &PatternResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "copy pattern view")
	}
	return res, nil
}

func FromPatternViews(views []queries.PatternView) ([]*PatternResponse, error) {
	res := make([]*PatternResponse, len(views))
	for i := range views {
		r, err := FromPatternView(&views[i])
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

type SweepResponse struct {
	ReleasedHolds    int   `json:"releasedHolds"`
	ExpiredSlots     int64 `json:"expiredSlots"`
	DeletedSlots     int64 `json:"deletedSlots"`
	ArchivedSlots    int64 `json:"archivedSlots"`
	RemovedSlots     int64 `json:"removedSlots"`
	FailedProperties int   `json:"failedProperties"`
}

func FromSweepResult(r commands.SweepResult) *SweepResponse {
	return &SweepResponse{
		ReleasedHolds:    r.ReleasedHolds,
		ExpiredSlots:     r.ExpiredSlots,
		DeletedSlots:     r.DeletedSlots,
		ArchivedSlots:    r.ArchivedSlots,
		RemovedSlots:     r.Removed(),
		FailedProperties: r.FailedProperties,
	}
}
