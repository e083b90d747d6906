package models

import "time"

// MenuDateLayout is the only accepted menu date format
const MenuDateLayout = "2006-01-02"

// Menu is unique per (catering, date).
type Menu struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Date        string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_menu_catering_date"`
	CateringID  uint      `json:"catering_id" gorm:"not null;uniqueIndex:idx_menu_catering_date"`
	Catering    Catering  `json:"catering,omitempty" gorm:"foreignKey:CateringID"`
	Meals       []Meal    `json:"meals" gorm:"many2many:menu_meals;"`
	ImageURL    string    `json:"image_url" gorm:"size:256"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Offers reports whether the meal is on the menu. Meals must be loaded.
func (m *Menu) Offers(mealID uint) bool {
	for _, meal := range m.Meals {
		if meal.ID == mealID {
			return true
		}
	}
	return false
}
