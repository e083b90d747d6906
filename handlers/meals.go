package handlers

import (
	"errors"
	"net/http"
	"strings"

	"catering-api/cache"
	"catering-api/config"
	"catering-api/middleware"
	"catering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateMealRequest struct {
	Title       string  `json:"title" binding:"required,notblank"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

type UpdateMealRequest struct {
	Title       *string  `json:"title" binding:"omitempty,notblank"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Description *string  `json:"description"`
}

// ListMeals godoc
// @Summary List the caterer's meals
// @Tags Meals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /meals [get]
func ListMeals(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	var meals []models.Meal
	if err := config.DB.Where("catering_id = ?", catering.ID).Order("id").Find(&meals).Error; err != nil {
		serverError(c, "list_meals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": mealViews(meals), "status": "success"})
}

// CreateMeal godoc
// @Summary Add a meal to the caterer's catalogue
// @Tags Meals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateMealRequest true "Meal"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /meals [post]
func CreateMeal(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	var req CreateMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal := models.Meal{
		Title:       strings.TrimSpace(req.Title),
		Price:       req.Price,
		Description: req.Description,
		CateringID:  catering.ID,
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		serverError(c, "create_meal", err)
		return
	}
	c.JSON(http.StatusCreated, mealView(&meal))
}

// GetMeal godoc
// @Summary Get one of the caterer's meals
// @Tags Meals
// @Security BearerAuth
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /meals/{id} [get]
func GetMeal(c *gin.Context) {
	meal, ok := findOwnMeal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mealView(meal))
}

// UpdateMeal godoc
// @Summary Modify a meal
// @Tags Meals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Meal ID"
// @Param request body UpdateMealRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /meals/{id} [put]
func UpdateMeal(c *gin.Context) {
	meal, ok := findOwnMeal(c)
	if !ok {
		return
	}

	var req UpdateMealRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Title == nil && req.Price == nil && req.Description == nil {
		badRequest(c, "No fields specified to be modified")
		return
	}
	if req.Title != nil {
		meal.Title = strings.TrimSpace(*req.Title)
	}
	if req.Price != nil {
		meal.Price = *req.Price
	}
	if req.Description != nil {
		meal.Description = *req.Description
	}

	if err := config.DB.Save(meal).Error; err != nil {
		serverError(c, "update_meal", err)
		return
	}
	dates, err := menuDatesForMeal(meal.ID)
	if err != nil {
		serverError(c, "update_meal", err)
		return
	}
	cache.InvalidateMenus(c.Request.Context(), dates...)
	c.JSON(http.StatusOK, mealView(meal))
}

// DeleteMeal godoc
// @Summary Remove a meal from the catalogue and from every menu
// @Tags Meals
// @Security BearerAuth
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /meals/{id} [delete]
func DeleteMeal(c *gin.Context) {
	meal, ok := findOwnMeal(c)
	if !ok {
		return
	}

	dates, err := menuDatesForMeal(meal.ID)
	if err != nil {
		serverError(c, "delete_meal", err)
		return
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM menu_meals WHERE meal_id = ?", meal.ID).Error; err != nil {
			return err
		}
		return tx.Delete(meal).Error
	})
	if err != nil {
		serverError(c, "delete_meal", err)
		return
	}
	cache.InvalidateMenus(c.Request.Context(), dates...)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "successfully deleted"})
}

// findOwnMeal loads the :id meal scoped to the current catering
func findOwnMeal(c *gin.Context) (*models.Meal, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}
	catering := middleware.CurrentCatering(c)

	var meal models.Meal
	err := config.DB.Where("id = ? AND catering_id = ?", id, catering.ID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		badRequest(c, "Bad request, no meal with such id exists")
		return nil, false
	}
	if err != nil {
		serverError(c, "find_meal", err)
		return nil, false
	}
	return &meal, true
}

func menuDatesForMeal(mealID uint) ([]string, error) {
	var dates []string
	err := config.DB.Model(&models.Menu{}).
		Joins("JOIN menu_meals ON menu_meals.menu_id = menus.id").
		Where("menu_meals.meal_id = ?", mealID).
		Distinct().
		Pluck("menus.date", &dates).Error
	return dates, err
}
