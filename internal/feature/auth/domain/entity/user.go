// Package entity defines the domain entities for the auth feature.
package entity

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"column:id;primaryKey"`

	// Name is the display name given at registration.
	Name string `gorm:"column:name;size:255;not null"`

	// Email is the lookup key at login.
	// Uniqueness is assumed but not enforced here.
	Email string `gorm:"column:email;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// It never holds the plaintext value.
	Password string `gorm:"column:password;size:255;not null"`

	// Phone is the contact number given at registration.
	Phone string `gorm:"column:phone;size:50;not null"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
