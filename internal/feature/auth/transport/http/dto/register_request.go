// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /register endpoint.
// All four fields must be present and non-empty.
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// RegisterRes is returned with 200 after a successful registration.
type RegisterRes struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}

// MessageRes carries a single human-readable message.
type MessageRes struct {
	Message string `json:"message"`
}
