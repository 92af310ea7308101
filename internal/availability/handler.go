package availability

import (
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

// PublishSlot godoc
// @Summary      Publish availability slot
// @Description  Creates a free time window the trainer can be booked for.
// @Tags         availability
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PublishSlotRequest  true  "Slot time window"
// @Success      201      {object}  api.Result
// @Failure      400      {object}  api.Result
// @Router       /trainer/availability [post]
func (h *Handler) PublishSlot(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PublishSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailBinding(c, err, "start_time and end_time are required (RFC3339)")
		return
	}

	slot, err := h.service.PublishSlot(c.Request.Context(), trainerID, req.StartTime, req.EndTime)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, slot)
}

// ListMySlots godoc
// @Summary      List own availability
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Param        only_future  query     bool  false  "Restrict to future slots"
// @Success      200          {object}  api.Result
// @Router       /trainer/availability [get]
func (h *Handler) ListMySlots(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	onlyFuture := c.DefaultQuery("only_future", "true") == "true"

	slots, err := h.service.ListForTrainer(c.Request.Context(), trainerID, onlyFuture)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, slots)
}

// ListTrainerFreeSlots godoc
// @Summary      List a trainer's free slots
// @Description  Member-facing view of bookable windows for one trainer.
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  api.Result
// @Failure      400        {object}  api.Result
// @Router       /member/trainers/{trainerID}/availability [get]
func (h *Handler) ListTrainerFreeSlots(c *gin.Context) {
	trainerID, err := strconv.ParseInt(c.Param("trainerID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid trainer ID")
		return
	}

	slots, err := h.service.ListFreeForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, slots)
}

// RemoveSlot godoc
// @Summary      Delete a free availability slot
// @Tags         availability
// @Security     BearerAuth
// @Produce      json
// @Param        availabilityID  path      int  true  "Availability slot ID"
// @Success      200             {object}  api.Result
// @Failure      400             {object}  api.Result
// @Failure      409             {object}  api.Result
// @Router       /trainer/availability/{availabilityID} [delete]
func (h *Handler) RemoveSlot(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	slotID, err := strconv.ParseInt(c.Param("availabilityID"), 10, 64)
	if err != nil {
		api.FailBadRequest(c, "invalid availability ID")
		return
	}

	if err := h.service.RemoveSlot(c.Request.Context(), slotID, trainerID); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, nil)
}
