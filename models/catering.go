package models

import (
	"time"

	"gorm.io/gorm"
)

type Catering struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Address   string    `json:"address" gorm:"size:100"`
	AdminID   uint      `json:"admin_id" gorm:"uniqueIndex;not null"`
	Admin     User      `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Meals     []Meal    `json:"meals,omitempty" gorm:"foreignKey:CateringID"`
	Menus     []Menu    `json:"menus,omitempty" gorm:"foreignKey:CateringID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meal is soft-deleted so orders keep the lines they were priced with.
type Meal struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"size:128;not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	CateringID  uint           `json:"catering_id" gorm:"index;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
