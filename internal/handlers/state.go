package handlers

import (
	"context"
	"net/http"

	"court_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Clients int    `json:"clients" example:"3"`
}

// @Summary		Проверка работоспособности
// @Tags			system
// @Produce		json
// @Success		200	{object}	HealthResponse
// @Router			/healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Clients: h.clients.Clients()})
}

// @Summary		Текущее состояние
// @Description	Очередь, текущая пара и история одним снимком
// @Tags			state
// @Produce		json
// @Success		200	{object}	queue.Snapshot
// @Failure		503	{object}	response.ErrorResponse	"Движок недоступен (ENGINE_UNAVAILABLE)"
// @Router			/api/state [get]
func (h *Handler) GetState(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	snap, err := h.state.Snapshot(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
			Code:    "ENGINE_UNAVAILABLE",
			Message: "State is not available",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary		Внеочередное сохранение
// @Description	Ставит текущее состояние в очередь на запись в хранилище
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		202	{object}	response.SuccessResponse
// @Failure		401	{object}	response.ErrorResponse	"Нет или неверный токен (NO_AUTH_HEADER, INVALID_TOKEN)"
// @Failure		409	{object}	response.ErrorResponse	"Состояние ещё не загружено (STATE_NOT_LOADED)"
// @Failure		503	{object}	response.ErrorResponse	"Движок недоступен (ENGINE_UNAVAILABLE)"
// @Router			/api/admin/checkpoint [post]
func (h *Handler) Checkpoint(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	snap, err := h.state.Snapshot(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
			Code:    "ENGINE_UNAVAILABLE",
			Message: "State is not available",
			Details: err.Error(),
		})
		return
	}
	if !snap.Initialized {
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "STATE_NOT_LOADED",
			Message: "State is not loaded from storage yet",
		})
		return
	}
	h.saver.Request(snap)
	c.JSON(http.StatusAccepted, response.SuccessResponse{Message: "checkpoint requested"})
}
