package appointment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gymbook/internal/api"
	"gymbook/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// BookSession godoc
// @Summary      Book a training session
// @Description  Creates a Pending booking for a free availability slot of a connected trainer.
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BookSessionRequest  true  "Booking data"
// @Success      201      {object}  api.Result
// @Failure      400      {object}  api.Result
// @Failure      404      {object}  api.Result
// @Failure      409      {object}  api.Result
// @Router       /member/appointments [post]
func (h *Handler) BookSession(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailBinding(c, err, "availability_id and project_name are required")
		return
	}

	booking, err := h.service.BookSession(c.Request.Context(), memberID, req.AvailabilityID, req.ProjectName, req.Description)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, booking)
}

// AcceptAppointment godoc
// @Summary      Accept a pending appointment
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        appointmentID  path      int  true  "Appointment ID"
// @Success      200            {object}  api.Result
// @Failure      403            {object}  api.Result
// @Failure      404            {object}  api.Result
// @Failure      409            {object}  api.Result
// @Router       /trainer/appointments/{appointmentID}/accept [put]
func (h *Handler) AcceptAppointment(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appointmentID, err := strconv.ParseInt(c.Param("appointmentID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid appointment ID")
		return
	}

	if err := h.service.AcceptAppointment(c.Request.Context(), appointmentID, trainerID); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, nil)
}

// RejectAppointment godoc
// @Summary      Reject a pending appointment
// @Description  Rejects the booking and frees the underlying slot. Optional feedback is forwarded to the member.
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        appointmentID  path      int            true   "Appointment ID"
// @Param        request        body      RejectRequest  false  "Optional feedback"
// @Success      200            {object}  api.Result
// @Failure      403            {object}  api.Result
// @Failure      404            {object}  api.Result
// @Failure      409            {object}  api.Result
// @Router       /trainer/appointments/{appointmentID}/reject [put]
func (h *Handler) RejectAppointment(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appointmentID, err := strconv.ParseInt(c.Param("appointmentID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid appointment ID")
		return
	}

	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.FailBinding(c, err, "invalid feedback payload")
			return
		}
	}

	if err := h.service.RejectAppointment(c.Request.Context(), appointmentID, trainerID, req.Feedback); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, nil)
}

// CancelAppointment godoc
// @Summary      Cancel a pending appointment
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        appointmentID  path      int  true  "Appointment ID"
// @Success      200            {object}  api.Result
// @Failure      404            {object}  api.Result
// @Failure      409            {object}  api.Result
// @Router       /member/appointments/{appointmentID}/cancel [put]
func (h *Handler) CancelAppointment(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appointmentID, err := strconv.ParseInt(c.Param("appointmentID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid appointment ID")
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), appointmentID, memberID); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, nil)
}

// ListPending godoc
// @Summary      List pending appointments for the trainer
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Result
// @Router       /trainer/appointments/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := h.service.PendingForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, list)
}

// ListUpcoming godoc
// @Summary      List the member's upcoming appointments
// @Description  Future sessions ordered by start time ascending. Defaults to Pending and Approved; pass status to filter.
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Param        status     query     string  false  "Exact status filter"
// @Success      200        {object}  api.Result
// @Router       /member/appointments/upcoming [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, pageSize := parsePaging(c)

	result, err := h.service.UpcomingForMember(c.Request.Context(), memberID, page, pageSize, c.Query("status"))
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, result)
}

// ListHistory godoc
// @Summary      List the member's historical appointments
// @Description  Past/terminal sessions ordered by start time descending. Defaults to statuses outside Pending/Approved.
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Param        status     query     string  false  "Exact status filter"
// @Success      200        {object}  api.Result
// @Router       /member/appointments/history [get]
func (h *Handler) ListHistory(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, pageSize := parsePaging(c)

	result, err := h.service.HistoricalForMember(c.Request.Context(), memberID, page, pageSize, c.Query("status"))
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, result)
}

// DailyStatistics godoc
// @Summary      Daily completed-session statistics
// @Description  One row per day with the count of completed sessions; days without sessions are omitted.
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200         {object}  api.Result
// @Failure      400         {object}  api.Result
// @Router       /member/statistics/daily [get]
func (h *Handler) DailyStatistics(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		api.FailBadRequest(c, "invalid start_date, use YYYY-MM-DD")
		return
	}

	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		api.FailBadRequest(c, "invalid end_date, use YYYY-MM-DD")
		return
	}

	// make the end date inclusive for timestamp comparison
	stats, err := h.service.DailyCompletedHours(c.Request.Context(), memberID, startDate, endDate.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, stats)
}

func parsePaging(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil {
		pageSize = 10
	}
	return page, pageSize
}
