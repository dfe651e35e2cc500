package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/internal/domain/models"
	"jobboard/shared/middleware"
)

// тело ответа с ошибкой
type APIError struct {
	Error string `json:"error"`
}

// функция - маппер доменных ошибок в HTTP статус и тело ответа
func ToAPIError(err error) (int, APIError) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, APIError{Error: "not found"}
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, APIError{Error: "authentication required"}
	case errors.Is(err, models.ErrCompanyRequired):
		return http.StatusForbidden, APIError{Error: models.ErrCompanyRequired.Error()}
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, APIError{Error: "forbidden"}
	case errors.Is(err, models.ErrDuplicateApplication):
		return http.StatusConflict, APIError{Error: models.ErrDuplicateApplication.Error()}
	case errors.Is(err, models.ErrJobNotOpen):
		return http.StatusConflict, APIError{Error: models.ErrJobNotOpen.Error()}
	case errors.Is(err, models.ErrAlreadyOnboarded):
		return http.StatusConflict, APIError{Error: models.ErrAlreadyOnboarded.Error()}
	case errors.Is(err, models.ErrInvalidPageSize), errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, APIError{Error: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, APIError{Error: "request timed out"}
	default:
		return http.StatusInternalServerError, APIError{Error: "internal server error"}
	}
}

// respondError пишет ответ с ошибкой; серверные ошибки логируются с request id
func (h *BoardHandler) respondError(c *gin.Context, err error) {
	code, apiErr := ToAPIError(err)
	if code >= http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", middleware.RequestIDFromContext(c.Request.Context()),
			"error", err,
		)
	} else {
		h.logger.DebugContext(c.Request.Context(), "request rejected", "path", c.FullPath(), "status", code, "error", err)
	}
	c.AbortWithStatusJSON(code, apiErr)
}
