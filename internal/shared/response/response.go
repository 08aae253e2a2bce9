package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error là body chung cho mọi response lỗi.
// Errors chỉ có khi validation fail, mỗi phần tử là một vi phạm.
type Error struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Success bọc data trong một key, vd {"book": {...}} hoặc {"books": [...]}
func Success(c *gin.Context, statusCode int, key string, data interface{}) {
	c.JSON(statusCode, gin.H{key: data})
}

// Message - {"message": "..."}
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Error{
		Code:    code,
		Message: message,
	})
}

// ValidationFailed - 400 kèm danh sách vi phạm
func ValidationFailed(c *gin.Context, errors []string) {
	c.JSON(http.StatusBadRequest, Error{
		Code:    "VALIDATION_ERROR",
		Message: "Invalid request body",
		Errors:  errors,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
