package handlers

import (
	"errors"
	"net/http"

	"court_queue/internal/auth"
	"court_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// @Summary		Вход администратора
// @Description	Проверяет пароль и выдаёт токен для /api/admin
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		LoginRequest			true	"Пароль администратора"
// @Success		200			{object}	response.TokenResponse	"Успешная авторизация"
// @Failure		400			{object}	response.ErrorResponse	"Ошибка валидации данных (VALIDATION_ERROR)"
// @Failure		401			{object}	response.ErrorResponse	"Неверный пароль (INVALID_CREDENTIALS)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (TOKEN_GENERATION_ERROR)"
// @Router			/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	token, expires, err := h.creds.Login(req.Password, auth.HTTPSessionID)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Неверный пароль",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Ошибка при генерации токена",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{AccessToken: token, ExpiresAt: expires})
}
