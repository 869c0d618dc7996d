package model

import (
	"time"

	"github.com/google/uuid"
)

// UserRole 使用者角色
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// IsValid 驗證角色是否有效
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// CanOrganize 主辦方權限（admin 也算）
func (r UserRole) CanOrganize() bool {
	return r == RoleOrganizer || r == RoleAdmin
}

type User struct {
	ID                  int       `json:"-" db:"id"`
	UserID              uuid.UUID `json:"id" db:"user_id"`
	Email               string    `json:"email" db:"email"`
	Name                string    `json:"name" db:"name"`
	Picture             *string   `json:"picture,omitempty" db:"picture"`
	Role                UserRole  `json:"role" db:"role"`
	Phone               *string   `json:"phone,omitempty" db:"phone"`
	IsVerifiedOrganizer bool      `json:"is_verified_organizer" db:"is_verified_organizer"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
