// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// CachingBlogRepository decorates a BlogRepository with Redis caching.
// Reads are served from Redis when possible. Every write goes to the
// underlying repository first and then drops the whole namespace, since
// several request ids ("1", "01") can address the same row.
type CachingBlogRepository struct {
	inner     usecase.BlogRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BlogRepository = (*CachingBlogRepository)(nil)

// NewCachingBlogRepository decorates a BlogRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "blogs".
// A nil rdb turns the decorator into a pass-through.
func NewCachingBlogRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BlogRepository, namespace string) *CachingBlogRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "blogs"
	}
	return &CachingBlogRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts through the inner repository and invalidates the cache.
func (c *CachingBlogRepository) Create(ctx context.Context, blog *entity.Blog) (uint, error) {
	id, err := c.inner.Create(ctx, blog)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx)
	return id, nil
}

// List returns all blogs, checking the cache first.
func (c *CachingBlogRepository) List(ctx context.Context) ([]entity.Blog, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()
	var cached []entity.Blog
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// FindByID returns a single blog, checking the cache first.
// Misses in the store (ErrBlogNotFound) are not cached.
func (c *CachingBlogRepository) FindByID(ctx context.Context, id string) (*entity.Blog, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.itemKey(id)
	var cached entity.Blog
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// Update overwrites through the inner repository and invalidates the cache.
func (c *CachingBlogRepository) Update(ctx context.Context, id string, blog *entity.Blog) error {
	if err := c.inner.Update(ctx, id, blog); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes through the inner repository and invalidates the cache.
func (c *CachingBlogRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// load reads key into dst. It reports false on a miss, a Redis error or a corrupted entry.
func (c *CachingBlogRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key (best effort).
func (c *CachingBlogRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops every key in the namespace (best effort).
func (c *CachingBlogRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingBlogRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// listKey is the cache key for the full list.
func (c *CachingBlogRepository) listKey() string {
	return c.namespace + ":all"
}

// itemKey is the cache key for a single row.
func (c *CachingBlogRepository) itemKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, safe(id))
}

// keyEscaper percent-encodes characters that are problematic for Redis keys.
// "%" is escaped too, so distinct ids never share a key.
var keyEscaper = strings.NewReplacer("%", "%25", " ", "%20", ":", "%3A")

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	return keyEscaper.Replace(s)
}
