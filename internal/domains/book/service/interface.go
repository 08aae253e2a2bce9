package service

import (
	"context"

	"books-api/internal/domains/book/model"
)

// ServiceInterface - business logic của books.
// Write methods nhận Document chưa validate, validate xong mới gọi repository.
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, isbn string) (*model.Book, error)
	CreateBook(ctx context.Context, doc model.Document) (*model.Book, error)
	UpdateBook(ctx context.Context, isbn string, doc model.Document) (*model.Book, error)
	DeleteBook(ctx context.Context, isbn string) error
}
