package models

import (
	"time"
)

// Permission is a bit carried by a Role
type Permission int

const (
	PermissionCustomer Permission = 2
	PermissionCaterer  Permission = 4
)

// Role names seeded at startup
const (
	RoleCustomer = "Customer"
	RoleAdmin    = "Admin"
)

type Role struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"uniqueIndex;size:64;not null"`
	IsDefault   bool       `json:"default" gorm:"column:is_default;index;not null;default:false"`
	Permissions Permission `json:"permissions" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"created_at"`
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:64;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:256;not null"`
	RoleID       uint      `json:"role_id" gorm:"index"`
	Role         Role      `json:"role" gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Can reports whether the user's role carries every bit in p.
// The Role must be loaded.
func (u *User) Can(p Permission) bool {
	return u.Role.ID != 0 && u.Role.Permissions&p == p
}

func (u *User) IsCaterer() bool {
	return u.Can(PermissionCaterer)
}
