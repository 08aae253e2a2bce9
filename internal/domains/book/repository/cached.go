package repository

import (
	"context"
	"errors"
	"time"

	"books-api/internal/domains/book/model"
	"books-api/pkg/cache"

	"github.com/rs/zerolog/log"
)

// cachedRepository là read-through cache đặt trước repository thật.
// Lỗi cache chỉ được log, database luôn là nguồn trả lời cuối cùng.
//
// Mỗi key dữ liệu gắn với một generation counter. Write tăng generation sau khi
// database commit, reader đọc generation trước khi đọc database, nên một reader
// chậm chỉ có thể ghi vào key của generation cũ mà không ai đọc nữa.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

func (r *cachedRepository) List(ctx context.Context) ([]model.Book, error) {
	gen, ok := r.generation(ctx, model.BookListGenerationKey)
	if !ok {
		return r.next.List(ctx)
	}
	key := model.BookListCacheKey(gen)

	var books []model.Book
	if r.get(ctx, key, &books) {
		return books, nil
	}

	books, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, books)
	return books, nil
}

func (r *cachedRepository) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	gen, ok := r.generation(ctx, model.BookGenerationKey(isbn))
	if !ok {
		return r.next.GetByISBN(ctx, isbn)
	}
	key := model.BookCacheKey(isbn, gen)

	var book model.Book
	if r.get(ctx, key, &book) {
		return &book, nil
	}

	found, err := r.next.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, found)
	return found, nil
}

func (r *cachedRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	created, err := r.next.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	r.bumpList(ctx)
	return created, nil
}

func (r *cachedRepository) Update(ctx context.Context, isbn string, update *model.BookUpdate) (*model.Book, error) {
	updated, err := r.next.Update(ctx, isbn, update)
	if err != nil {
		return nil, err
	}

	r.bumpBook(ctx, isbn)
	r.bumpList(ctx)
	return updated, nil
}

func (r *cachedRepository) Delete(ctx context.Context, isbn string) error {
	err := r.next.Delete(ctx, isbn)
	// not found vẫn bump: cache có thể đang giữ bản ghi cũ
	if err != nil && !errors.Is(err, model.ErrBookNotFound) {
		return err
	}

	r.bumpBook(ctx, isbn)
	r.bumpList(ctx)
	return err
}

// InvalidateBookList bump generation của list sau khi ghi thẳng vào database (bulk import)
func InvalidateBookList(ctx context.Context, c cache.Cache) error {
	return bumpGeneration(ctx, c, model.BookListGenerationKey, model.BookListCacheKey)
}

// generation trả về false khi không đọc được counter, lúc đó bỏ qua cache hoàn toàn
func (r *cachedRepository) generation(ctx context.Context, key string) (int64, bool) {
	var gen int64
	if _, err := r.cache.Get(ctx, key, &gen); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache generation read failed")
		return 0, false
	}
	return gen, true
}

func (r *cachedRepository) get(ctx context.Context, key string, dest interface{}) bool {
	found, err := r.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	if !found {
		log.Debug().Str("key", key).Msg("cache miss")
	}
	return found
}

func (r *cachedRepository) set(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (r *cachedRepository) bumpBook(ctx context.Context, isbn string) {
	dataKey := func(gen int64) string { return model.BookCacheKey(isbn, gen) }
	if err := bumpGeneration(ctx, r.cache, model.BookGenerationKey(isbn), dataKey); err != nil {
		log.Warn().Err(err).Str("isbn", isbn).Msg("cache invalidation failed")
	}
}

func (r *cachedRepository) bumpList(ctx context.Context) {
	if err := InvalidateBookList(ctx, r.cache); err != nil {
		log.Warn().Err(err).Msg("cache invalidation failed")
	}
}

// bumpGeneration tăng counter rồi dọn key của generation trước, key cũ hơn tự hết TTL
func bumpGeneration(ctx context.Context, c cache.Cache, genKey string, dataKey func(int64) string) error {
	gen, err := c.Incr(ctx, genKey)
	if err != nil {
		return err
	}
	return c.Delete(ctx, dataKey(gen-1))
}
