package cache

import (
	"context"
	"errors"
	"time"

	"books-api/pkg/cache"
)

// ErrCacheDisabled được trả về từ Ping khi chạy không có Redis
var ErrCacheDisabled = errors.New("cache disabled")

// NopCache luôn miss, dùng khi REDIS_ENABLED=false hoặc Redis không kết nối được
type NopCache struct{}

var _ cache.Cache = NopCache{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NopCache) Delete(context.Context, ...string) error { return nil }

func (NopCache) Incr(context.Context, string) (int64, error) { return 0, nil }

func (NopCache) Ping(context.Context) error { return ErrCacheDisabled }
