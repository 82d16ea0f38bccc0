package handler

import (
	"errors"
	"net/http"

	"challenge-server/internal/models"

	"github.com/gin-gonic/gin"
)

// handleServiceError преобразует ошибку сервисного слоя в HTTP-ответ
// со стандартным конвертом CommonResponse.
func handleServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrChallengeNotFound),
		errors.Is(err, models.ErrVideoNotFound),
		errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrEmailAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidUserRef):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	// Сообщение ошибки отдается как есть: на этой границе
	// детализация видов сбоев не различается
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, models.Fail(err.Error()))
}
