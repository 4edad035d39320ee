// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/usecase"
)

// Response messages sent to clients.
const (
	msgRegistered         = "User registered successfully"
	msgLoggedIn           = "Login successful"
	msgAllFieldsRequired  = "All fields are required"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidBody        = "Invalid request body"
	msgServerError        = "Server error"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、採番されたIDを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (uint, error)
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - 必須項目が欠けている場合は400
// - ストア障害時は500
// - 成功時はユーザーID付きで200（201ではない）
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) || errors.Is(err, io.EOF) {
			slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgAllFieldsRequired})
			return
		}
		slog.Warn("register: invalid body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgInvalidBody})
		return
	}

	id, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgAllFieldsRequired})
			return
		}
		slog.Error("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: msgServerError})
		return
	}

	slog.Info("user registered", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.RegisterRes{Message: msgRegistered, UserID: id})
}

// LoginCheck はログインAPIエンドポイントを処理します。
// レスポンスは必ず1つだけ返されます:
// ストア障害 500 / ユーザー未検出 400 / パスワード不一致 401 / 成功 200
func (h *AuthHandler) LoginCheck(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("login: invalid body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgInvalidBody})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.LoginRes{Message: msgLoggedIn, Token: token})
	case errors.Is(err, usecase.ErrUserNotFound):
		slog.Warn("login failed: unknown email", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgUserNotFound})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed: invalid credentials", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.MessageRes{Message: msgInvalidCredentials})
	default:
		slog.Error("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: msgServerError})
	}
}
