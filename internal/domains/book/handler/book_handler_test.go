package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/service"
	"books-api/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(h *BookHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery())

	books := r.Group("/books")
	books.GET("", h.ListBooks)
	books.GET("/:isbn", h.GetBook)
	books.POST("", h.CreateBook)
	books.PUT("/:isbn", h.UpdateBook)
	books.DELETE("/:isbn", h.DeleteBook)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ════════════════════════════════════════════════════════════════
// Error mapping (mock service)
// ════════════════════════════════════════════════════════════════

func TestBookHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", model.ErrBookNotFound, http.StatusNotFound, "BOOK_NOT_FOUND"},
		{"duplicate", model.ErrISBNAlreadyExists, http.StatusConflict, "ISBN_ALREADY_EXISTS"},
		{"missing field", model.ErrMissingField, http.StatusBadRequest, "MISSING_FIELD"},
		{"storage failure", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := service.NewMockServiceInterface(ctrl)
			svc.EXPECT().GetBook(gomock.Any(), "1234").Return(nil, tt.err)

			w := doRequest(newRouter(NewBookHandler(svc)), http.MethodGet, "/books/1234", "")

			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Message, assert.AnError.Error())
		})
	}
}

func TestBookHandler_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewMockServiceInterface(ctrl)
	r := newRouter(NewBookHandler(svc))

	for _, body := range []string{`{"isbn":`, `[]`, `null`, ``} {
		w := doRequest(r, http.MethodPost, "/books", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)
	}
}

func TestBookHandler_ListBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewMockServiceInterface(ctrl)
	svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{}, nil)

	w := doRequest(newRouter(NewBookHandler(svc)), http.MethodGet, "/books", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"books":[]}`, w.Body.String())
}

// ════════════════════════════════════════════════════════════════
// End-to-end scenario trên repository in-memory
// ════════════════════════════════════════════════════════════════

type memoryRepository struct {
	mu    sync.Mutex
	books map[string]model.Book
}

func (r *memoryRepository) List(context.Context) ([]model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ISBN < out[j].ISBN
	})
	return out, nil
}

func (r *memoryRepository) GetByISBN(_ context.Context, isbn string) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[isbn]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (r *memoryRepository) Create(_ context.Context, book *model.Book) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ISBN]; ok {
		return nil, model.ErrISBNAlreadyExists
	}
	r.books[book.ISBN] = *book
	created := *book
	return &created, nil
}

func (r *memoryRepository) Update(_ context.Context, isbn string, update *model.BookUpdate) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[isbn]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	applyUpdate(&b, update)
	r.books[isbn] = b
	return &b, nil
}

// applyUpdate ghi đè các field non-nil lên book
func applyUpdate(b *model.Book, u *model.BookUpdate) {
	if u.AmazonURL != nil {
		b.AmazonURL = *u.AmazonURL
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Language != nil {
		b.Language = *u.Language
	}
	if u.Pages != nil {
		b.Pages = *u.Pages
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Year != nil {
		b.Year = *u.Year
	}
}

func (r *memoryRepository) Delete(_ context.Context, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[isbn]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, isbn)
	return nil
}

const seedBookJSON = `{
	"isbn": "1234567890",
	"amazon_url": "https://www.amazon.com/dp/1234567890",
	"author": "John Doe",
	"language": "English",
	"pages": 200,
	"publisher": "Publisher A",
	"title": "My Test Book",
	"year": 2021
}`

const newBookJSON = `{
	"isbn": "1234",
	"amazon_url": "https://www.amazon.com/dp/1234",
	"author": "Jane Roe",
	"language": "French",
	"pages": 200,
	"publisher": "Publisher B",
	"title": "Book B",
	"year": 2023
}`

func TestBookHandler_Scenario(t *testing.T) {
	repo := &memoryRepository{books: map[string]model.Book{}}
	r := newRouter(NewBookHandler(service.NewBookService(repo)))

	w := doRequest(r, http.MethodPost, "/books", seedBookJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("list", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/books", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"books":[`+seedBookJSON+`]}`, w.Body.String())
	})

	t.Run("create echoes book", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/books", newBookJSON)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"book":`+newBookJSON+`}`, w.Body.String())

		w = doRequest(r, http.MethodGet, "/books/1234", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"book":`+newBookJSON+`}`, w.Body.String())
	})

	t.Run("create duplicate", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/books", newBookJSON)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("create with string year and missing amazon_url", func(t *testing.T) {
		body := `{"isbn":"5678","author":"A","language":"English","pages":10,
			"publisher":"P","title":"T","year":"2023"}`

		w := doRequest(r, http.MethodPost, "/books", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"amazon_url is required", "year must be an integer"}, decodeError(t, w).Errors)

		w = doRequest(r, http.MethodGet, "/books/5678", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/books/999999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "BOOK_NOT_FOUND", decodeError(t, w).Code)
	})

	t.Run("update", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/books/1234567890", `{"title":"Updated Title","year":2022}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Book model.Book `json:"book"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Updated Title", body.Book.Title)
		assert.Equal(t, 2022, body.Book.Year)
		assert.Equal(t, "John Doe", body.Book.Author)
	})

	t.Run("update with invalid field leaves row untouched", func(t *testing.T) {
		before := doRequest(r, http.MethodGet, "/books/1234", "").Body.String()

		body := strings.Replace(newBookJSON, `"isbn": "1234",`, `"INVALID_FIELD": "this is just wrong",`, 1)
		w := doRequest(r, http.MethodPut, "/books/1234", strings.Replace(body, "Book B", "Changed", 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"INVALID_FIELD is not allowed"}, decodeError(t, w).Errors)
		assert.JSONEq(t, before, doRequest(r, http.MethodGet, "/books/1234", "").Body.String())
	})

	t.Run("update missing", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/books/999999", `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doRequest(r, http.MethodDelete, "/books/1234567890", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Book deleted"}`, w.Body.String())

		w = doRequest(r, http.MethodGet, "/books/1234567890", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(r, http.MethodDelete, "/books/1234567890", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
