package repository

import (
	"context"

	"books-api/internal/domains/book/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX là phần chung của *pgxpool.Pool và pgx.Tx.
// Repository chạy được cả trên pool (request) lẫn transaction (bulk import).
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryInterface - data access cho bảng books.
// Mỗi method là một round trip tới database.
type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	Update(ctx context.Context, isbn string, update *model.BookUpdate) (*model.Book, error)
	Delete(ctx context.Context, isbn string) error
}
