package model

import "time"

const (
	RoleUser       = "user"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:128;not null" json:"name"`
	Phone        string     `gorm:"size:32;not null;uniqueIndex" json:"phone"`
	Email        string     `gorm:"size:128" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:32;not null;default:'user'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
