package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"books-api/internal/config"
	bookHandler "books-api/internal/domains/book/handler"
	bookRepo "books-api/internal/domains/book/repository"
	bookService "books-api/internal/domains/book/service"
	infraCache "books-api/internal/infrastructure/cache"
	"books-api/internal/infrastructure/database"
	"books-api/pkg/cache"
	"books-api/pkg/jwt"
	"books-api/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application.
// Thứ tự build: config -> logger -> database -> cache -> repository -> service -> handler
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Book domain
	BookRepo    bookRepo.RepositoryInterface
	BookService bookService.ServiceInterface
	BookHandler *bookHandler.BookHandler

	closers []func() error
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo toàn bộ dependency graph.
// Database bắt buộc phải kết nối được, Redis thì không (fallback NopCache).
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	// STEP 1: CONFIG + LOGGER
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Msg("🔧 Initializing DI Container...")

	// STEP 2: DATABASE
	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.closers = append(c.closers, func() error { db.Close(); return nil })

	// STEP 3: CACHE
	var closeCache func() error
	c.Cache, closeCache = OpenCache(ctx, cfg.Redis)
	c.closers = append(c.closers, closeCache)

	// STEP 4: AUTH
	c.JWTManager = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())

	// STEP 5: BOOK DOMAIN
	c.initBookDomain()

	log.Info().Msg("✅ DI Container initialized successfully")
	return c, nil
}

// initBookDomain wire repository -> service -> handler
func (c *Container) initBookDomain() {
	repo := bookRepo.NewPostgresRepository(c.DB.Pool, c.Config.Database.QueryTimeout)
	c.BookRepo = bookRepo.NewCachedRepository(repo, c.Cache, c.Config.Redis.CacheTTL)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// OpenDatabase kết nối PostgreSQL (có retry theo DB_MAX_RETRIES)
func OpenDatabase(ctx context.Context, cfg *config.Config) (*database.PostgresDB, error) {
	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// OpenCache trả về Redis cache, hoặc NopCache khi Redis bị tắt / không ping được.
// Hàm close luôn khác nil.
func OpenCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, func() error) {
	nop := func() error { return nil }

	if !cfg.Enabled {
		log.Info().Msg("[REDIS] Disabled, caching turned off")
		return infraCache.NopCache{}, nop
	}

	redisCache := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[REDIS] Unavailable, continuing without cache")
		_ = redisCache.Close()
		return infraCache.NopCache{}, nop
	}

	return redisCache, redisCache.Close
}

// ========================================
// CLEANUP
// ========================================

// Cleanup đóng resources theo thứ tự ngược với lúc tạo
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up resources...")

	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Warn().Err(err).Msg("cleanup failed")
		}
	}
	c.closers = nil
}
