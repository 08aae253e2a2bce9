package model

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("ISBN already exists")
	ErrMissingField      = errors.New("book is missing a required field")
)

// ValidationError liệt kê từng vi phạm schema, mỗi message một dòng
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid book: " + strings.Join(e.Messages, "; ")
}

// ErrorInfo là cách một error được trả về cho client
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

var internalError = ErrorInfo{
	Status:  http.StatusInternalServerError,
	Code:    "INTERNAL_SERVER_ERROR",
	Message: "Internal server error",
}

var bookErrorMap = map[error]ErrorInfo{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "Book not found",
	},
	ErrISBNAlreadyExists: {
		Status:  http.StatusConflict,
		Code:    "ISBN_ALREADY_EXISTS",
		Message: "A book with this ISBN already exists",
	},
	ErrMissingField: {
		Status:  http.StatusBadRequest,
		Code:    "MISSING_FIELD",
		Message: "Book is missing a required field",
	},
}

// LookupError map error sang HTTP status/code/message.
// known = false nghĩa là lỗi không mong đợi (500), cần log chi tiết.
func LookupError(err error) (info ErrorInfo, known bool) {
	for target, info := range bookErrorMap {
		if errors.Is(err, target) {
			return info, true
		}
	}
	return internalError, false
}
