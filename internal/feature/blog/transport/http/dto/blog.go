// Package dto defines data transfer objects for the blog HTTP API.
package dto

import "blog_backend/internal/feature/blog/domain/entity"

// BlogReq is the body of POST /api/blogs and PUT /api/blogs/:id.
// No binding tags: create accepts partial payloads and update validates in the usecase.
type BlogReq struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Image    string `json:"image"`
}

// ToEntity converts the request into a domain entity.
func (r BlogReq) ToEntity() *entity.Blog {
	return &entity.Blog{
		Title:    r.Title,
		Category: r.Category,
		Date:     r.Date,
		ReadTime: r.ReadTime,
		Image:    r.Image,
	}
}

// BlogItem is a blog row as returned to clients.
type BlogItem struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Image    string `json:"image"`
}

// NewBlogItem converts a domain entity into its response form.
func NewBlogItem(b entity.Blog) BlogItem {
	return BlogItem{
		ID:       b.ID,
		Title:    b.Title,
		Category: b.Category,
		Date:     b.Date,
		ReadTime: b.ReadTime,
		Image:    b.Image,
	}
}

// CreateBlogRes is returned with 201 after an insert.
type CreateBlogRes struct {
	Message  string `json:"message"`
	InsertID uint   `json:"insertId"`
}

// MessageRes carries a single human-readable message.
type MessageRes struct {
	Message string `json:"message"`
}
