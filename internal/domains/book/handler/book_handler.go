package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/service"
	"books-api/internal/shared/response"
)

// maxBodyBytes giới hạn kích thước body của POST/PUT
const maxBodyBytes = 1 << 20

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: ListBooks - GET /books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "books", books)
}

// ════════════════════════════════════════════════════════════════
// READ: GetBook - GET /books/:isbn
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "book", book)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) CreateBook(c *gin.Context) {
	doc, ok := readDocument(c)
	if !ok {
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), doc)
	if err != nil {
		HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "book", book)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /books/:isbn
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) UpdateBook(c *gin.Context) {
	doc, ok := readDocument(c)
	if !ok {
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), c.Param("isbn"), doc)
	if err != nil {
		HandleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "book", book)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /books/:isbn
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.service.DeleteBook(c.Request.Context(), c.Param("isbn")); err != nil {
		HandleBookError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Book deleted")
}

// readDocument đọc body thành Document, tự trả 400 nếu body không hợp lệ
func readDocument(c *gin.Context) (model.Document, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	raw, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Failed to read request body")
		return nil, false
	}

	doc, err := model.DecodeDocument(raw)
	if err != nil {
		HandleBookError(c, err)
		return nil, false
	}

	return doc, true
}
