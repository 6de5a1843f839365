//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"visit-scheduler/internal/domain/booking"
	"visit-scheduler/internal/handler/api"
	resdto "visit-scheduler/internal/handler/dto/response"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase"
	"visit-scheduler/internal/usecase/queries"
	"visit-scheduler/internal/usecase/shared"
	"visit-scheduler/tests/common/builder"
	"visit-scheduler/tests/common/httptest"
	"visit-scheduler/tests/common/testutil"
	usecasemock "visit-scheduler/tests/mock/usecase"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// mockAuth stands in for the JWT middleware: any bearer token authenticates
// as userID.
func mockAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

type SchedulingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockSvc  *usecasemock.MockSchedulingService
	handler  *api.SchedulingHandler
	userID   uuid.UUID
}

func (s *SchedulingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSvc = usecasemock.NewMockSchedulingService(s.mockCtrl)
	s.handler = api.NewSchedulingHandler(s.mockSvc)
	s.userID = uuid.New()

	auth := mockAuth(s.userID)
	s.router.GET("/properties/:id/slots", s.handler.ListAvailableSlots)
	s.router.POST("/properties/:id/bookings", auth, s.handler.Book)
	s.router.GET("/bookings/:id", auth, s.handler.GetBooking)
	s.router.POST("/bookings/:id/confirm", auth, s.handler.ConfirmBooking)
	s.router.DELETE("/bookings/:id", auth, s.handler.CancelBooking)
	s.router.GET("/me/bookings", auth, s.handler.ListMyBookings)
}

func (s *SchedulingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSchedulingHandlerSuite(t *testing.T) {
	suite.Run(t, new(SchedulingHandlerTestSuite))
}

// ================================================================================
// TestListAvailableSlots
// ================================================================================

func (s *SchedulingHandlerTestSuite) TestListAvailableSlots() {
	propertyID := uuid.New()
	url := "/properties/" + propertyID.String() + "/slots"
	from := civil.Date{Year: 2025, Month: time.January, Day: 6}
	to := civil.Date{Year: 2025, Month: time.January, Day: 12}

	s.Run("success: returns open slots", func() {
		views := []queries.SlotView{*builder.NewSlotBuilder().WithProperty(propertyID).BuildView()}
		s.mockSvc.EXPECT().ListAvailableSlots(gomock.Any(), propertyID, from, to).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2025-01-06&to=2025-01-12", nil, "")

		var body []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(views[0].ID, body[0].ID)
		s.Equal("OPEN", body[0].Status)
		s.Equal(views[0].LocalStart, body[0].LocalStart)
	})

	validation := []struct {
		name  string
		query string
	}{
		{name: "missing to", query: "?from=2025-01-06"},
		{name: "malformed date", query: "?from=2025-13-01&to=2025-01-12"},
	}
	for _, tc := range validation {
		s.Run("error: 400 on "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+tc.query, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("error: 400 on malformed property id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/properties/nope/slots?from=2025-01-06&to=2025-01-12", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 for unknown property", func() {
		s.mockSvc.EXPECT().ListAvailableSlots(gomock.Any(), propertyID, from, to).
			Return(nil, errs.Mark(errors.New("property not found"), errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2025-01-06&to=2025-01-12", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestBook
// ================================================================================

func (s *SchedulingHandlerTestSuite) TestBook() {
	propertyID := uuid.New()
	slotID := uuid.New()
	url := "/properties/" + propertyID.String() + "/bookings"
	reqBody := map[string]any{"slotId": slotID.String()}

	s.Run("success: returns 201 Created with location", func() {
		view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.SlotID = slotID
			b.PropertyID = propertyID
			b.VisitorID = s.userID
		}).BuildView()
		s.mockSvc.EXPECT().Book(gomock.Any(), propertyID, s.userID, slotID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("PENDING", body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + view.ID.String()})
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	validation := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing slotId", mutate: testutil.Field("slotId", nil)},
		{name: "malformed slotId", mutate: testutil.Field("slotId", "not-a-uuid")},
		{name: "nil slotId", mutate: testutil.Field("slotId", uuid.Nil.String())},
	}
	for _, tc := range validation {
		s.Run("error: 400 on "+tc.name, func() {
			requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	failures := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "slot taken", err: errs.Mark(errors.New("taken"), errs.ErrSlotUnavailable), expectCode: http.StatusConflict, expectMsg: "Slot unavailable"},
		{name: "slot elsewhere", err: usecase.ErrSlotNotInProperty, expectCode: http.StatusNotFound, expectMsg: "Not found"},
		{name: "storage down", err: errs.Mark(errors.New("conn refused"), errs.ErrStorage), expectCode: http.StatusServiceUnavailable, expectMsg: "Service temporarily unavailable"},
		{name: "deadline", err: context.DeadlineExceeded, expectCode: http.StatusServiceUnavailable, expectMsg: "Service temporarily unavailable"},
		{name: "unclassified", err: errors.New("boom"), expectCode: http.StatusInternalServerError, expectMsg: "Internal error"},
	}
	for _, tc := range failures {
		s.Run("error: "+tc.name, func() {
			s.mockSvc.EXPECT().Book(gomock.Any(), propertyID, s.userID, slotID).Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("error: 409 duplicate carries the existing booking", func() {
		existing := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildDomain()
		s.mockSvc.EXPECT().Book(gomock.Any(), propertyID, s.userID, slotID).
			Return(nil, shared.NewDuplicateBookingError(existing, nil)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Duplicate booking")
		var detail api.DuplicateBookingDetail
		httptest.DecodeErrorDetail(s.T(), rec, &detail)
		s.Equal(existing.ID(), detail.ExistingBookingID)
	})
}

// ================================================================================
// Booking lifecycle endpoints
// ================================================================================

func (s *SchedulingHandlerTestSuite) TestBookingEndpoints() {
	bookingID := uuid.New()
	view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ID = bookingID }).BuildView()

	cases := []struct {
		name   string
		method string
		path   string
		expect func(*queries.BookingView, error)
	}{
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/bookings/" + bookingID.String(),
			expect: func(v *queries.BookingView, err error) {
				s.mockSvc.EXPECT().GetBooking(gomock.Any(), bookingID, s.userID).Return(v, err).Times(1)
			},
		},
		{
			name:   "confirm",
			method: http.MethodPost,
			path:   "/bookings/" + bookingID.String() + "/confirm",
			expect: func(v *queries.BookingView, err error) {
				s.mockSvc.EXPECT().ConfirmBooking(gomock.Any(), bookingID, s.userID).Return(v, err).Times(1)
			},
		},
		{
			name:   "cancel",
			method: http.MethodDelete,
			path:   "/bookings/" + bookingID.String(),
			expect: func(v *queries.BookingView, err error) {
				s.mockSvc.EXPECT().CancelBooking(gomock.Any(), bookingID, s.userID).Return(v, err).Times(1)
			},
		},
	}

	for _, tc := range cases {
		s.Run("success: "+tc.name, func() {
			tc.expect(view, nil)
			rec := httptest.PerformRequest(s.T(), s.router, tc.method, tc.path, nil, "bearer-token")

			var body resdto.BookingResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(bookingID, body.ID)
			s.Equal(view.SlotID, body.SlotID)
		})

		s.Run("error: 403 for "+tc.name+" by a stranger", func() {
			tc.expect(nil, queries.ErrBookingAccessDenied)
			rec := httptest.PerformRequest(s.T(), s.router, tc.method, tc.path, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
		})
	}

	s.Run("error: 409 confirming a lapsed hold", func() {
		s.mockSvc.EXPECT().ConfirmBooking(gomock.Any(), bookingID, s.userID).Return(nil, booking.ErrHoldExpired).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/confirm", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid state")
	})

	s.Run("error: 400 on malformed booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/123", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *SchedulingHandlerTestSuite) TestListMyBookings() {
	views := []queries.BookingView{
		*builder.NewBookingBuilder().BuildView(),
		*builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildView(),
	}
	s.mockSvc.EXPECT().ListMyBookings(gomock.Any(), s.userID).Return(views, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/bookings", nil, "bearer-token")

	var body []resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal("CANCELLED", body[1].Status)
}
