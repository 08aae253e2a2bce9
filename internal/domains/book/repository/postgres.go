package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"books-api/internal/domains/book/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pg error codes
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

const bookColumns = `isbn, amazon_url, author, language, pages, publisher, title, year`

type postgresRepository struct {
	db      DBTX
	timeout time.Duration
}

// NewPostgresRepository tạo repository trên pool hoặc transaction.
// timeout <= 0 nghĩa là chỉ dùng deadline của ctx.
func NewPostgresRepository(db DBTX, timeout time.Duration) RepositoryInterface {
	return &postgresRepository{
		db:      db,
		timeout: timeout,
	}
}

func (r *postgresRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// List - toàn bộ books, sort theo title rồi isbn
func (r *postgresRepository) List(ctx context.Context) ([]model.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title, isbn`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

// GetByISBN - ErrBookNotFound nếu không có row
func (r *postgresRepository) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	var b model.Book
	if err := scanBook(r.db.QueryRow(ctx, query, isbn), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %q: %w", isbn, err)
	}

	return &b, nil
}

// Create insert book, trả về row đã lưu
func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns

	var created model.Book
	err := scanBook(r.db.QueryRow(ctx, query,
		book.ISBN,
		book.AmazonURL,
		book.Author,
		book.Language,
		book.Pages,
		book.Publisher,
		book.Title,
		book.Year,
	), &created)
	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

// Update ghi đè các field được gửi lên (nil giữ nguyên) trong một câu UPDATE
func (r *postgresRepository) Update(ctx context.Context, isbn string, update *model.BookUpdate) (*model.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE books SET
			amazon_url = COALESCE($2, amazon_url),
			author     = COALESCE($3, author),
			language   = COALESCE($4, language),
			pages      = COALESCE($5, pages),
			publisher  = COALESCE($6, publisher),
			title      = COALESCE($7, title),
			year       = COALESCE($8, year)
		WHERE isbn = $1
		RETURNING ` + bookColumns

	var updated model.Book
	err := scanBook(r.db.QueryRow(ctx, query,
		isbn,
		update.AmazonURL,
		update.Author,
		update.Language,
		update.Pages,
		update.Publisher,
		update.Title,
		update.Year,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		if mapped := mapPgError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update book %q: %w", isbn, err)
	}

	return &updated, nil
}

// Delete - ErrBookNotFound khi không xoá được row nào
func (r *postgresRepository) Delete(ctx context.Context, isbn string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("failed to delete book %q: %w", isbn, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ISBN,
		&b.AmazonURL,
		&b.Author,
		&b.Language,
		&b.Pages,
		&b.Publisher,
		&b.Title,
		&b.Year,
	)
}

// mapPgError chuyển constraint violation sang domain error, nil nếu không nhận ra
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return model.ErrISBNAlreadyExists
	case pgNotNullViolation, pgCheckViolation:
		return fmt.Errorf("%w: %s", model.ErrMissingField, pgErr.ColumnName)
	}
	return nil
}
