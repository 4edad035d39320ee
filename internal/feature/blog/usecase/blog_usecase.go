// Package usecase implements the business logic for blog records.
package usecase

import (
	"context"

	"blog_backend/internal/feature/blog/domain/entity"
)

// BlogRepository abstracts the persistence layer for blog records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BlogRepository interface {
	// Create inserts a row and returns its generated id.
	Create(ctx context.Context, blog *entity.Blog) (uint, error)
	// List returns every row in store order.
	List(ctx context.Context) ([]entity.Blog, error)
	// FindByID returns ErrBlogNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*entity.Blog, error)
	// Update overwrites all fields of the matching row; ErrBlogNotFound when none matched.
	Update(ctx context.Context, id string, blog *entity.Blog) error
	// Delete removes the matching row; ErrBlogNotFound when none matched.
	Delete(ctx context.Context, id string) error
}

// BlogUsecase provides business logic for blog operations.
type BlogUsecase struct {
	repo BlogRepository
}

// NewBlogUsecase creates a new BlogUsecase with the given repository.
func NewBlogUsecase(r BlogRepository) *BlogUsecase {
	return &BlogUsecase{repo: r}
}

// Create stores the blog as given. Unlike Update, no field is required here.
func (u *BlogUsecase) Create(ctx context.Context, blog *entity.Blog) (uint, error) {
	return u.repo.Create(ctx, blog)
}

// List returns all blogs.
func (u *BlogUsecase) List(ctx context.Context) ([]entity.Blog, error) {
	return u.repo.List(ctx)
}

// Get returns a single blog by id. The id is passed through as-is.
func (u *BlogUsecase) Get(ctx context.Context, id string) (*entity.Blog, error) {
	return u.repo.FindByID(ctx, id)
}

// Update validates the required fields and then overwrites the row.
// Nothing reaches the store when validation fails.
func (u *BlogUsecase) Update(ctx context.Context, id string, blog *entity.Blog) error {
	if !blog.HasRequiredFields() {
		return ErrMissingRequiredFields
	}
	return u.repo.Update(ctx, id, blog)
}

// Delete removes a blog by id.
func (u *BlogUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}
