package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymbook/internal/api"
	"gymbook/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListMine godoc
// @Summary      List my notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Max results (default 20)"
// @Success      200    {object}  api.Result
// @Router       /notifications [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	list, err := h.service.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, list)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        notificationID  path      int  true  "Notification ID"
// @Success      200             {object}  api.Result
// @Failure      400             {object}  api.Result
// @Router       /notifications/{notificationID}/read [put]
func (h *Handler) MarkRead(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := strconv.ParseInt(c.Param("notificationID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, nil)
}
