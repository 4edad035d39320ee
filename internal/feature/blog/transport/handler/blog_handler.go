// Package handler はblogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/transport/http/dto"
	"blog_backend/internal/feature/blog/usecase"
)

// Response messages sent to clients.
const (
	msgInserted      = "Blog inserted successfully"
	msgUpdated       = "Blog updated successfully"
	msgDeleted       = "Blog deleted successfully"
	msgNotFound      = "Blog not found"
	msgRequired      = "Title, category and date are required."
	msgInvalidBody   = "Invalid request body"
	msgDatabaseError = "Database error"
)

// BlogUsecase はブログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type BlogUsecase interface {
	Create(ctx context.Context, blog *entity.Blog) (uint, error)
	List(ctx context.Context) ([]entity.Blog, error)
	Get(ctx context.Context, id string) (*entity.Blog, error)
	Update(ctx context.Context, id string, blog *entity.Blog) error
	Delete(ctx context.Context, id string) error
}

// BlogHandler はブログのCRUDリクエストを処理します。
type BlogHandler struct {
	uc BlogUsecase
}

// NewBlogHandler は新しい BlogHandler を作成します。
func NewBlogHandler(uc BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

// Create はブログを1件登録し、201と採番IDを返します。
// 必須項目の検証は行いません。
func (h *BlogHandler) Create(c *gin.Context) {
	req, err := bindBlog(c)
	if err != nil {
		slog.Warn("blog create: invalid body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgInvalidBody})
		return
	}

	id, err := h.uc.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.storeError(c, "Data insert failed", err)
		return
	}

	slog.Info("blog inserted", "id", id)
	c.JSON(http.StatusCreated, dto.CreateBlogRes{Message: msgInserted, InsertID: id})
}

// List は全件を返します。
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "Failed to fetch blogs", err)
		return
	}
	out := make([]dto.BlogItem, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, dto.NewBlogItem(b))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで1件取得します。IDの形式は検証しません。
func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrBlogNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageRes{Message: msgNotFound})
			return
		}
		h.storeError(c, "Failed to fetch blog", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBlogItem(*blog))
}

// Update は全フィールドを上書きします。
// - title, category, date のいずれかが空の場合は400
// - 対象が存在しない場合は404
func (h *BlogHandler) Update(c *gin.Context) {
	req, err := bindBlog(c)
	if err != nil {
		slog.Warn("blog update: invalid body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgInvalidBody})
		return
	}

	err = h.uc.Update(c.Request.Context(), c.Param("id"), req.ToEntity())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MessageRes{Message: msgUpdated})
	case errors.Is(err, usecase.ErrMissingRequiredFields):
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: msgRequired})
	case errors.Is(err, usecase.ErrBlogNotFound):
		c.JSON(http.StatusNotFound, dto.MessageRes{Message: msgNotFound})
	default:
		h.storeError(c, "Failed to update blog", err)
	}
}

// Delete はIDに一致するブログを削除します。
func (h *BlogHandler) Delete(c *gin.Context) {
	err := h.uc.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MessageRes{Message: msgDeleted})
	case errors.Is(err, usecase.ErrBlogNotFound):
		c.JSON(http.StatusNotFound, dto.MessageRes{Message: msgNotFound})
	default:
		h.storeError(c, "Failed to delete blog", err)
	}
}

// storeError はエラー詳細をログにのみ出力し、クライアントには汎用メッセージを返します。
func (h *BlogHandler) storeError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "path", c.FullPath(), "id", c.Param("id"))
	c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: msgDatabaseError})
}

// bindBlog decodes the JSON body. An empty body decodes to an empty payload.
func bindBlog(c *gin.Context) (dto.BlogReq, error) {
	var req dto.BlogReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}
