package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/router"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	bloghandler "blog_backend/internal/feature/blog/transport/handler"
	blogusecase "blog_backend/internal/feature/blog/usecase"
	"blog_backend/internal/platform/config"
	"blog_backend/internal/platform/db"
	"blog_backend/internal/platform/http/handler"
	jwtgen "blog_backend/internal/platform/jwt"
	platformredis "blog_backend/internal/platform/redis"
)

// shutdownTimeout は処理中リクエストの完了を待つ上限時間です。
const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("[FATAL] failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Println("[ERROR] Failed to close database:", err)
		}
	}()
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("[FATAL] failed to access database handle: %v", err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		if !errors.Is(err, platformredis.ErrDisabled) {
			log.Println("[WARN] Redis unavailable. Running without cache:", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Login will fail until a secret is configured.")
	}

	// Repository
	blogRepo := di.NewBlogRepository(rdb, gdb, cfg.CacheTTL)
	userRepo := authadapters.NewUserMySQL(gdb)

	// Usecase
	blogUC := blogusecase.NewBlogUsecase(blogRepo)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtgen.NewGenerator(cfg.JWTSecret, cfg.TokenTTL))

	// Handler
	blogH := bloghandler.NewBlogHandler(blogUC)
	authH := authhandler.NewAuthHandler(authUC)
	healthH := handler.NewHealthHandler(sqlDB)

	// ルータ生成
	r := router.NewRouter(blogH, authH, healthH)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Server is running on port %s", cfg.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] server stopped: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Println("[INFO] Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] graceful shutdown failed: %v", err)
	}
}
