package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"books-api/internal/domains/book/model"
	"books-api/internal/shared/middleware"
	"books-api/internal/shared/response"
)

// HandleBookError map error từ service sang HTTP response.
// Lỗi không nằm trong bookErrorMap trả 500 với message chung, chi tiết chỉ ghi log.
func HandleBookError(c *gin.Context, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		response.ValidationFailed(c, vErr.Messages)
		return
	}

	info, known := model.LookupError(err)
	if !known {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("unexpected error handling book request")
	}

	response.ErrorResponse(c, info.Status, info.Code, info.Message)
}
