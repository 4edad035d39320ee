package usecase

import "errors"

var (
	// ErrBlogNotFound is returned when no row matches the given id.
	ErrBlogNotFound = errors.New("blog not found")

	// ErrMissingRequiredFields is returned when an update lacks title, category or date.
	ErrMissingRequiredFields = errors.New("title, category and date are required")
)
