package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "blog_backend/internal/feature/auth/transport/handler"
	bloghandler "blog_backend/internal/feature/blog/transport/handler"
	"blog_backend/internal/platform/http/handler"
)

func NewRouter(blog *bloghandler.BlogHandler, authHandler *authhandler.AuthHandler,
	health *handler.HealthHandler) *gin.Engine {
	r := gin.Default()

	// すべてのオリジンからのリクエストを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	// ブログ記事のCRUD
	blogs := r.Group("/api/blogs")
	{
		blogs.POST("", blog.Create)
		blogs.GET("", blog.List)
		blogs.GET("/:id", blog.Get)
		blogs.PUT("/:id", blog.Update)
		blogs.DELETE("/:id", blog.Delete)
	}

	// 新規ユーザー登録
	r.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/login-check", authHandler.LoginCheck)

	return r
}
