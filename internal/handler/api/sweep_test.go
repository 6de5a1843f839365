//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"visit-scheduler/internal/handler/api"
	resdto "visit-scheduler/internal/handler/dto/response"
	"visit-scheduler/internal/pkg/clock"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/commands"
	"visit-scheduler/tests/common/httptest"
	commandsmock "visit-scheduler/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SweepHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockSweeper *commandsmock.MockSweeper
	now         time.Time
}

func (s *SweepHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSweeper = commandsmock.NewMockSweeper(s.mockCtrl)
	s.now = time.Date(2025, time.January, 6, 3, 0, 0, 0, time.UTC)
	handler := api.NewSweepHandler(s.mockSweeper, clock.NewMockClock(s.now))

	s.router.POST("/internal/sweep", handler.Sweep)
}

func (s *SweepHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSweepHandlerSuite(t *testing.T) {
	suite.Run(t, new(SweepHandlerTestSuite))
}

func (s *SweepHandlerTestSuite) TestSweep() {
	result := commands.SweepResult{ReleasedHolds: 2, ExpiredSlots: 3, DeletedSlots: 3, ArchivedSlots: 1}

	s.Run("success: reports counts", func() {
		s.mockSweeper.EXPECT().Sweep(gomock.Any(), s.now).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/internal/sweep", nil, "")

		var body resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.ReleasedHolds)
		s.Equal(int64(4), body.RemovedSlots)
	})

	s.Run("error: 503 keeps partial counts", func() {
		partial := result
		partial.FailedProperties = 1
		s.mockSweeper.EXPECT().Sweep(gomock.Any(), s.now).
			Return(partial, errs.Mark(errors.New("lock timeout"), errs.ErrStorage)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/internal/sweep", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Sweep incomplete")
		s.Contains(rec.Body.String(), `"failedProperties":1`)
	})
}
