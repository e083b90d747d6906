package handlers

import (
	"strings"
	"time"

	"catering-api/config"
	"catering-api/models"
	"catering-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}

func cateringView(c *models.Catering) gin.H {
	return gin.H{
		"id":      c.ID,
		"name":    c.Name,
		"address": c.Address,
	}
}

func mealView(m *models.Meal) gin.H {
	return gin.H{
		"id":          m.ID,
		"title":       m.Title,
		"description": m.Description,
		"price":       m.Price,
	}
}

func mealViews(meals []models.Meal) []gin.H {
	out := make([]gin.H, 0, len(meals))
	for i := range meals {
		out = append(out, mealView(&meals[i]))
	}
	return out
}

// menuView expects Meals and Catering preloaded
func menuView(m *models.Menu) gin.H {
	return gin.H{
		"id":          m.ID,
		"title":       m.Title,
		"description": m.Description,
		"meals":       mealViews(m.Meals),
		"menuDate":    m.Date,
		"catering":    cateringView(&m.Catering),
		"imageURL":    absoluteURL(m.ImageURL),
	}
}

func menuViews(menus []models.Menu) []gin.H {
	out := make([]gin.H, 0, len(menus))
	for i := range menus {
		out = append(out, menuView(&menus[i]))
	}
	return out
}

// orderView expects Meals and Customer preloaded
func orderView(o *models.Order, now time.Time) gin.H {
	return gin.H{
		"id":         o.ID,
		"totalCost":  o.TotalCost,
		"unitCost":   statemachine.UnitCost(o),
		"orderCount": o.OrderCount,
		"expiresAt":  o.ExpiresAt.UTC().Format(time.RFC3339),
		"createdAt":  o.CreatedAt.UTC().Format(time.RFC3339),
		"meals":      mealViews(o.Meals),
		"customer":   userView(&o.Customer),
		"menuId":     o.MenuID,
		"cateringId": o.CateringID,
		"status":     statemachine.StateOf(o, now),
	}
}

func orderViews(orders []models.Order, now time.Time) []gin.H {
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderView(&orders[i], now))
	}
	return out
}

// absoluteURL prefixes stored relative image paths with BASE_URL
func absoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(config.AppConfig.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// withMeals preloads meals including soft-deleted ones so past orders stay complete
func withMeals(db *gorm.DB) *gorm.DB {
	return db.Preload("Meals", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped().Order("meals.id")
	})
}
