//go:build unit

package slot_test

import (
	"slices"
	"testing"
	"time"

	"visit-scheduler/internal/domain/availability"
	"visit-scheduler/internal/domain/slot"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/tests/common/builder"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan5  = civil.Date{Year: 2025, Month: time.January, Day: 5}
	jan12 = civil.Date{Year: 2025, Month: time.January, Day: 12}
	jan1  = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func utc(day, hour, minute int) time.Time {
	return time.Date(2025, time.January, day, hour, minute, 0, 0, time.UTC)
}

func starts(t *testing.T, in slot.ExpandInput) []time.Time {
	t.Helper()
	seq, err := slot.Expand(in)
	require.NoError(t, err)
	var out []time.Time
	for s := range seq {
		assert.Equal(t, slot.StatusOpen, s.Status())
		assert.Equal(t, in.PropertyID, s.PropertyID())
		out = append(out, s.StartAt())
	}
	return out
}

func TestExpand(t *testing.T) {
	propertyID := uuid.New()
	monday := builder.NewPatternBuilder().WithProperty(propertyID).MustBuildDomain()

	baseInput := func() slot.ExpandInput {
		return slot.ExpandInput{
			PropertyID: propertyID,
			Patterns:   []*availability.Pattern{monday},
			From:       jan5,
			To:         jan12,
			Location:   time.UTC,
			Now:        jan1,
		}
	}

	t.Run("weekly window is tiled into four half-hour slots on the matching Monday", func(t *testing.T) {
		got := starts(t, baseInput())
		want := []time.Time{utc(6, 9, 0), utc(6, 9, 30), utc(6, 10, 0), utc(6, 10, 30)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("slot starts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("every slot has the pattern duration and pattern id", func(t *testing.T) {
		seq, err := slot.Expand(baseInput())
		require.NoError(t, err)
		for s := range seq {
			assert.Equal(t, 30*time.Minute, s.Interval().Duration())
			require.NotNil(t, s.PatternID())
			assert.Equal(t, monday.ID(), *s.PatternID())
		}
	})

	t.Run("sequence is restartable and yields the same intervals", func(t *testing.T) {
		seq, err := slot.Expand(baseInput())
		require.NoError(t, err)
		first := collectStarts(seq)
		second := collectStarts(seq)
		assert.Equal(t, first, second)
		assert.Len(t, first, 4)
	})

	t.Run("re-expanding after materialization yields nothing new", func(t *testing.T) {
		seq, err := slot.Expand(baseInput())
		require.NoError(t, err)
		materialized := slices.Collect(seq)

		in := baseInput()
		in.Existing = materialized
		assert.Empty(t, starts(t, in))
	})

	t.Run("stored slot with the same start blocks that start in any status", func(t *testing.T) {
		in := baseInput()
		in.Existing = []*slot.VisitSlot{
			builder.NewSlotBuilder().WithProperty(propertyID).At(utc(6, 9, 0), 30*time.Minute).WithStatus(slot.StatusCancelled).BuildDomain(),
		}
		assert.Equal(t, []time.Time{utc(6, 9, 30), utc(6, 10, 0), utc(6, 10, 30)}, starts(t, in))
	})

	t.Run("overlapping ad-hoc open slot blocks every intersecting tile", func(t *testing.T) {
		in := baseInput()
		in.Existing = []*slot.VisitSlot{
			builder.NewSlotBuilder().WithProperty(propertyID).At(utc(6, 9, 15), 30*time.Minute).BuildDomain(),
		}
		assert.Equal(t, []time.Time{utc(6, 10, 0), utc(6, 10, 30)}, starts(t, in))
	})

	t.Run("expired slot only blocks its own start", func(t *testing.T) {
		in := baseInput()
		in.Existing = []*slot.VisitSlot{
			builder.NewSlotBuilder().WithProperty(propertyID).At(utc(6, 9, 15), 30*time.Minute).WithStatus(slot.StatusExpired).BuildDomain(),
		}
		assert.Len(t, starts(t, in), 4)
	})

	t.Run("slots of other properties are ignored", func(t *testing.T) {
		in := baseInput()
		in.Existing = []*slot.VisitSlot{
			builder.NewSlotBuilder().At(utc(6, 9, 0), 2*time.Hour).WithStatus(slot.StatusConfirmed).BuildDomain(),
		}
		assert.Len(t, starts(t, in), 4)
	})

	t.Run("lowest pattern id wins on overlap regardless of input order", func(t *testing.T) {
		first := builder.NewPatternBuilder().WithProperty(propertyID).WithWindow("09:00", "10:00", 60).MustBuildDomain()
		second := builder.NewPatternBuilder().WithProperty(propertyID).WithWindow("09:30", "11:30", 60).MustBuildDomain()
		require.True(t, first.Less(second))

		in := baseInput()
		in.Patterns = []*availability.Pattern{second, first}
		seq, err := slot.Expand(in)
		require.NoError(t, err)
		got := slices.Collect(seq)

		require.Len(t, got, 2)
		assert.Equal(t, utc(6, 9, 0), got[0].StartAt())
		assert.Equal(t, first.ID(), *got[0].PatternID())
		assert.Equal(t, utc(6, 10, 30), got[1].StartAt())
		assert.Equal(t, second.ID(), *got[1].PatternID())
	})

	t.Run("slots not after now are skipped", func(t *testing.T) {
		in := baseInput()
		in.Now = utc(6, 9, 30)
		assert.Equal(t, []time.Time{utc(6, 10, 0), utc(6, 10, 30)}, starts(t, in))
	})

	t.Run("deleted pattern stops producing", func(t *testing.T) {
		p := builder.NewPatternBuilder().WithProperty(propertyID).MustBuildDomain()
		require.NoError(t, p.Delete(jan1))

		in := baseInput()
		in.Patterns = []*availability.Pattern{p}
		assert.Empty(t, starts(t, in))
	})

	t.Run("validity window clips the range", func(t *testing.T) {
		late := builder.NewPatternBuilder().WithProperty(propertyID).With(func(b *builder.PatternBuilder) {
			b.ValidFrom = civil.Date{Year: 2025, Month: time.January, Day: 7}
		}).MustBuildDomain()
		ended := builder.NewPatternBuilder().WithProperty(propertyID).With(func(b *builder.PatternBuilder) {
			until := civil.Date{Year: 2025, Month: time.January, Day: 5}
			b.ValidUntil = &until
		}).MustBuildDomain()

		in := baseInput()
		in.Patterns = []*availability.Pattern{late, ended}
		assert.Empty(t, starts(t, in))
	})

	t.Run("trailing remainder shorter than a slot is discarded", func(t *testing.T) {
		p := builder.NewPatternBuilder().WithProperty(propertyID).WithWindow("09:00", "10:45", 30).MustBuildDomain()
		in := baseInput()
		in.Patterns = []*availability.Pattern{p}
		assert.Equal(t, []time.Time{utc(6, 9, 0), utc(6, 9, 30), utc(6, 10, 0)}, starts(t, in))
	})

	t.Run("local wall-clock is converted to UTC", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		in := baseInput()
		in.Location = tokyo
		got := starts(t, in)
		require.Len(t, got, 4)
		assert.Equal(t, utc(6, 0, 0), got[0])
	})

	t.Run("consumer can stop early", func(t *testing.T) {
		seq, err := slot.Expand(baseInput())
		require.NoError(t, err)
		n := 0
		for range seq {
			n++
			if n == 2 {
				break
			}
		}
		assert.Equal(t, 2, n)
	})
}

func TestExpand_RangeValidation(t *testing.T) {
	propertyID := uuid.New()

	testCases := []struct {
		name    string
		from    civil.Date
		to      civil.Date
		horizon int
		errIs   error
	}{
		{name: "end before start", from: jan12, to: jan5, errIs: slot.ErrInvalidRange},
		{name: "single day", from: jan5, to: jan5},
		{name: "exactly the default horizon", from: jan5, to: jan5.AddDays(179)},
		{name: "one day over the default horizon", from: jan5, to: jan5.AddDays(180), errIs: slot.ErrRangeTooLarge},
		{name: "custom horizon", from: jan5, to: jan12, horizon: 7, errIs: slot.ErrRangeTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := slot.Expand(slot.ExpandInput{
				PropertyID:     propertyID,
				From:           tc.from,
				To:             tc.to,
				Now:            jan1,
				MaxHorizonDays: tc.horizon,
			})
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}
}

func TestSnapshotBounds(t *testing.T) {
	lower, upper := slot.SnapshotBounds(jan5, jan12, time.UTC)
	assert.Equal(t, utc(4, 0, 0), lower)
	assert.Equal(t, utc(14, 0, 0), upper)
}

func collectStarts(seq func(func(*slot.VisitSlot) bool)) []time.Time {
	var out []time.Time
	for s := range seq {
		out = append(out, s.StartAt())
	}
	return out
}
