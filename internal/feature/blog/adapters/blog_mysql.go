// Package adapters はblogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// blogMySQL はBlogRepositoryインターフェースのGORM実装です。
// 各メソッドは1つのSQL文のみを発行します。
type blogMySQL struct {
	db *gorm.DB
}

var _ usecase.BlogRepository = (*blogMySQL)(nil)

// NewBlogRepository は指定されたDB接続でblogMySQLリポジトリの新しいインスタンスを生成します。
func NewBlogRepository(db *gorm.DB) *blogMySQL {
	return &blogMySQL{db: db}
}

// Create はレコードを1件追加し、採番されたIDを返します。
func (r *blogMySQL) Create(ctx context.Context, b *entity.Blog) (uint, error) {
	if b == nil {
		return 0, errors.New("blog is nil")
	}
	m := BlogModelFromEntity(b)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// List は全件を返します。並び順は指定しません。
func (r *blogMySQL) List(ctx context.Context) ([]entity.Blog, error) {
	var models []BlogModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	blogs := make([]entity.Blog, 0, len(models))
	for i := range models {
		blogs = append(blogs, models[i].ToEntity())
	}
	return blogs, nil
}

// FindByID はIDが完全一致するレコードを返します。
// 存在しない場合、usecase.ErrBlogNotFoundを返します。
func (r *blogMySQL) FindByID(ctx context.Context, id string) (*entity.Blog, error) {
	if idCannotMatch(r.db.Dialector.Name(), id) {
		return nil, usecase.ErrBlogNotFound
	}
	var m BlogModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBlogNotFound
		}
		return nil, err
	}
	b := m.ToEntity()
	return &b, nil
}

// Update は5つのフィールドをすべて上書きします。
// 一致する行がない場合、usecase.ErrBlogNotFoundを返します。
func (r *blogMySQL) Update(ctx context.Context, id string, b *entity.Blog) error {
	if idCannotMatch(r.db.Dialector.Name(), id) {
		return usecase.ErrBlogNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&BlogModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":    b.Title,
			"category": b.Category,
			"date":     b.Date,
			"readTime": b.ReadTime,
			"image":    b.Image,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrBlogNotFound
	}
	return nil
}

// Delete はIDに一致する行を削除します。
// 一致する行がない場合、usecase.ErrBlogNotFoundを返します。
func (r *blogMySQL) Delete(ctx context.Context, id string) error {
	if idCannotMatch(r.db.Dialector.Name(), id) {
		return usecase.ErrBlogNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BlogModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrBlogNotFound
	}
	return nil
}

// idCannotMatch reports whether id can never address a row on the given dialect.
// MySQL and SQLite coerce a non-numeric id and simply match nothing, while
// Postgres rejects it as invalid integer syntax.
func idCannotMatch(dialect, id string) bool {
	if dialect != "postgres" {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	return err != nil
}
