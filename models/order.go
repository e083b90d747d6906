package models

import "time"

// Order is a customer's purchase against a menu. It can be modified
// only while the current time is before ExpiresAt.
type Order struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TotalCost  float64   `json:"total_cost" gorm:"not null"`
	OrderCount int       `json:"order_count" gorm:"not null;default:1"`
	CustomerID uint      `json:"customer_id" gorm:"index;not null"`
	Customer   User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CateringID uint      `json:"catering_id" gorm:"index;not null"`
	Catering   Catering  `json:"catering,omitempty" gorm:"foreignKey:CateringID"`
	MenuID     uint      `json:"menu_id" gorm:"index;not null"`
	Menu       Menu      `json:"menu,omitempty" gorm:"foreignKey:MenuID"`
	Meals      []Meal    `json:"meals" gorm:"many2many:order_meals;"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
