package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestSuccess(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, "book", map[string]string{"isbn": "1234"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"book":{"isbn":"1234"}}`, w.Body.String())
}

func TestMessage(t *testing.T) {
	w := record(func(c *gin.Context) { Message(c, http.StatusOK, "Book deleted") })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted"}`, w.Body.String())
}

func TestValidationFailed(t *testing.T) {
	w := record(func(c *gin.Context) {
		ValidationFailed(c, []string{"year must be an integer"})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, []string{"year must be an integer"}, body.Errors)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		fn     func(c *gin.Context, message string)
		status int
		code   string
	}{
		{BadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{Unauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{Forbidden, http.StatusForbidden, "FORBIDDEN"},
		{InternalServerError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := record(func(c *gin.Context) { tt.fn(c, "boom") })

			assert.Equal(t, tt.status, w.Code)
			// errors bị bỏ qua khi rỗng
			assert.JSONEq(t, `{"code":"`+tt.code+`","message":"boom"}`, w.Body.String())
		})
	}
}
