package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	ImageURL     string    `json:"image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Role         UserRole  `json:"role" gorm:"default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserRef is the short projection embedded next to messages, reviews and
// photos (name + avatar, nothing else).
type UserRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image,omitempty"`
}
