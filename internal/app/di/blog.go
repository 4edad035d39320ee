// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	blogadapters "blog_backend/internal/feature/blog/adapters"
	"blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/cache"
)

// blogCacheNamespace prefixes every blog cache key.
const blogCacheNamespace = "blogs"

// NewBlogRepository creates a BlogRepository implementation.
// If Redis is available, the GORM repository is wrapped with a read-through cache.
// Otherwise, the GORM repository is returned directly.
func NewBlogRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.BlogRepository {
	repo := blogadapters.NewBlogRepository(db)
	if rdb != nil {
		return cache.NewCachingBlogRepository(rdb, ttl, repo, blogCacheNamespace)
	}
	return repo
}
