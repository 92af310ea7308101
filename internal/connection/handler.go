package connection

import (
	"context"
	"net/http"
	"strconv"

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

// RequestConnection godoc
// @Summary      Request a trainer connection
// @Tags         connections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateConnectRequest  true  "Target trainer"
// @Success      201      {object}  api.Result
// @Failure      404      {object}  api.Result
// @Failure      409      {object}  api.Result
// @Router       /member/connect-requests [post]
func (h *Handler) RequestConnection(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailBinding(c, err, "trainer_id is required")
		return
	}

	created, err := h.service.RequestConnection(c.Request.Context(), memberID, req.TrainerID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, created)
}

// AcceptRequest godoc
// @Summary      Accept a connect request
// @Tags         connections
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Connect request ID"
// @Success      200        {object}  api.Result
// @Failure      403        {object}  api.Result
// @Failure      404        {object}  api.Result
// @Failure      409        {object}  api.Result
// @Router       /trainer/connect-requests/{requestID}/accept [put]
func (h *Handler) AcceptRequest(c *gin.Context) {
	h.decide(c, h.service.AcceptRequest)
}

// RejectRequest godoc
// @Summary      Reject a connect request
// @Tags         connections
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Connect request ID"
// @Success      200        {object}  api.Result
// @Failure      403        {object}  api.Result
// @Failure      404        {object}  api.Result
// @Failure      409        {object}  api.Result
// @Router       /trainer/connect-requests/{requestID}/reject [put]
func (h *Handler) RejectRequest(c *gin.Context) {
	h.decide(c, h.service.RejectRequest)
}

func (h *Handler) decide(c *gin.Context, fn func(ctx context.Context, requestID, trainerID int64) error) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requestID, err := strconv.ParseInt(c.Param("requestID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid request ID")
		return
	}

	if err := fn(c.Request.Context(), requestID, trainerID); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, nil)
}

// ListPending godoc
// @Summary      List pending connect requests
// @Tags         connections
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Result
// @Router       /trainer/connect-requests/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requests, err := h.service.ListPendingForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, requests)
}
