package service

import (
	"context"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/repository"
)

type bookService struct {
	repo repository.RepositoryInterface
}

// NewBookService nhận repository (postgres, cached hoặc bound vào transaction)
func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{
		repo: repo,
	}
}

func (s *bookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx)
}

func (s *bookService) GetBook(ctx context.Context, isbn string) (*model.Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// CreateBook - doc phải đủ 8 field đúng kiểu
func (s *bookService) CreateBook(ctx context.Context, doc model.Document) (*model.Book, error) {
	book, err := model.ParseCreate(doc)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, book)
}

// UpdateBook - partial update, body rỗng trả về book hiện tại
func (s *bookService) UpdateBook(ctx context.Context, isbn string, doc model.Document) (*model.Book, error) {
	update, err := model.ParseUpdate(doc)
	if err != nil {
		return nil, err
	}

	if update.IsEmpty() {
		return s.repo.GetByISBN(ctx, isbn)
	}

	return s.repo.Update(ctx, isbn, update)
}

func (s *bookService) DeleteBook(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}
