package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymbook/internal/api"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) BookSession(ctx context.Context, memberID, slotID int64, projectName, description string) (*Appointment, error) {
	args := m.Called(ctx, memberID, slotID, projectName, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Appointment), args.Error(1)
}

func (m *MockService) AcceptAppointment(ctx context.Context, appointmentID, trainerID int64) error {
	return m.Called(ctx, appointmentID, trainerID).Error(0)
}

func (m *MockService) RejectAppointment(ctx context.Context, appointmentID, trainerID int64, feedback string) error {
	return m.Called(ctx, appointmentID, trainerID, feedback).Error(0)
}

func (m *MockService) CancelAppointment(ctx context.Context, appointmentID, memberID int64) error {
	return m.Called(ctx, appointmentID, memberID).Error(0)
}

func (m *MockService) PendingForTrainer(ctx context.Context, trainerID int64) ([]AppointmentDetail, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AppointmentDetail), args.Error(1)
}

func (m *MockService) UpcomingForMember(ctx context.Context, memberID int64, page, pageSize int, status string) (*PagedAppointments, error) {
	args := m.Called(ctx, memberID, page, pageSize, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PagedAppointments), args.Error(1)
}

func (m *MockService) HistoricalForMember(ctx context.Context, memberID int64, page, pageSize int, status string) (*PagedAppointments, error) {
	args := m.Called(ctx, memberID, page, pageSize, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PagedAppointments), args.Error(1)
}

func (m *MockService) DailyCompletedHours(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]DailyStat, error) {
	args := m.Called(ctx, memberID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DailyStat), args.Error(1)
}

func setupHandlerTest(userID int64) (*gin.Engine, *MockService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	h := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	router.POST("/member/appointments", h.BookSession)
	router.PUT("/member/appointments/:appointmentID/cancel", h.CancelAppointment)
	router.GET("/member/appointments/upcoming", h.ListUpcoming)
	router.GET("/member/appointments/history", h.ListHistory)
	router.GET("/member/statistics/daily", h.DailyStatistics)
	router.PUT("/trainer/appointments/:appointmentID/accept", h.AcceptAppointment)
	router.PUT("/trainer/appointments/:appointmentID/reject", h.RejectAppointment)
	router.GET("/trainer/appointments/pending", h.ListPending)

	return router, svc
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) api.Result {
	t.Helper()
	var result api.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestHandlerBookSession(t *testing.T) {
	router, svc := setupHandlerTest(1)

	svc.On("BookSession", mock.Anything, int64(1), int64(5), "Strength training", "").
		Return(&Appointment{ID: 10, MemberID: 1, TrainerID: 2, AvailabilityID: 5, Status: StatusPending}, nil)

	w := doJSON(router, http.MethodPost, "/member/appointments",
		BookSessionRequest{AvailabilityID: 5, ProjectName: "Strength training"})

	assert.Equal(t, http.StatusCreated, w.Code)
	result := decodeResult(t, w)
	assert.Equal(t, http.StatusCreated, result.Code)
	svc.AssertExpectations(t)
}

func TestHandlerBookSession_MissingFields(t *testing.T) {
	router, svc := setupHandlerTest(1)

	w := doJSON(router, http.MethodPost, "/member/appointments", gin.H{"description": "no slot"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	result := decodeResult(t, w)
	assert.Contains(t, result.Msg, "required")
	assert.NotNil(t, result.Data)
	svc.AssertNotCalled(t, "BookSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlerBookSession_ConflictEnvelope(t *testing.T) {
	router, svc := setupHandlerTest(1)

	svc.On("BookSession", mock.Anything, int64(1), int64(5), "Yoga", "").
		Return(nil, api.Conflictf("availability slot is already booked"))

	w := doJSON(router, http.MethodPost, "/member/appointments",
		BookSessionRequest{AvailabilityID: 5, ProjectName: "Yoga"})

	assert.Equal(t, http.StatusConflict, w.Code)
	result := decodeResult(t, w)
	assert.Equal(t, http.StatusConflict, result.Code)
	assert.Equal(t, "availability slot is already booked", result.Msg)
	assert.Nil(t, result.Data)
}

func TestHandlerAcceptAppointment(t *testing.T) {
	router, svc := setupHandlerTest(2)

	svc.On("AcceptAppointment", mock.Anything, int64(10), int64(2)).Return(nil)

	w := doJSON(router, http.MethodPut, "/trainer/appointments/10/accept", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandlerAcceptAppointment_BadID(t *testing.T) {
	router, svc := setupHandlerTest(2)

	w := doJSON(router, http.MethodPut, "/trainer/appointments/abc/accept", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AcceptAppointment", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlerRejectAppointment_WithFeedback(t *testing.T) {
	router, svc := setupHandlerTest(2)

	svc.On("RejectAppointment", mock.Anything, int64(10), int64(2), "schedule conflict").Return(nil)

	w := doJSON(router, http.MethodPut, "/trainer/appointments/10/reject",
		RejectRequest{Feedback: "schedule conflict"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandlerRejectAppointment_NoBody(t *testing.T) {
	router, svc := setupHandlerTest(2)

	svc.On("RejectAppointment", mock.Anything, int64(10), int64(2), "").Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/trainer/appointments/10/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandlerCancelAppointment_Forbidden(t *testing.T) {
	router, svc := setupHandlerTest(1)

	svc.On("CancelAppointment", mock.Anything, int64(10), int64(1)).
		Return(api.Conflictf("approved appointments cannot be cancelled; contact your trainer"))

	w := doJSON(router, http.MethodPut, "/member/appointments/10/cancel", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandlerListUpcoming_PassesQuery(t *testing.T) {
	router, svc := setupHandlerTest(1)

	svc.On("UpcomingForMember", mock.Anything, int64(1), 2, 5, StatusApproved).
		Return(&PagedAppointments{Items: []AppointmentDetail{}, Total: 0, Page: 2, PageSize: 5}, nil)

	w := doJSON(router, http.MethodGet, "/member/appointments/upcoming?page=2&page_size=5&status=Approved", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandlerListPending(t *testing.T) {
	router, svc := setupHandlerTest(2)

	svc.On("PendingForTrainer", mock.Anything, int64(2)).
		Return([]AppointmentDetail{{Appointment: Appointment{ID: 10, Status: StatusPending}}}, nil)

	w := doJSON(router, http.MethodGet, "/trainer/appointments/pending", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeResult(t, w)
	assert.NotNil(t, result.Data)
}

func TestHandlerDailyStatistics(t *testing.T) {
	router, svc := setupHandlerTest(1)

	expectedEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	svc.On("DailyCompletedHours", mock.Anything, int64(1),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), expectedEnd).
		Return([]DailyStat{{Date: "2026-08-03", Hours: 2}}, nil)

	w := doJSON(router, http.MethodGet, "/member/statistics/daily?start_date=2026-08-01&end_date=2026-08-31", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandlerDailyStatistics_BadDate(t *testing.T) {
	router, svc := setupHandlerTest(1)

	w := doJSON(router, http.MethodGet, "/member/statistics/daily?start_date=08-01-2026&end_date=2026-08-31", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "DailyCompletedHours", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
