package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"catering-api/cache"
	"catering-api/config"
	"catering-api/middleware"
	"catering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateMenuRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Meals       []uint `json:"meals" binding:"required,min=1"`
	ImageURL    string `json:"imageURL" binding:"omitempty,uri"`
}

type UpdateMenuRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank"`
	Description *string `json:"description"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Meals       []uint  `json:"meals" binding:"omitempty,min=1"`
	ImageURL    *string `json:"imageURL" binding:"omitempty,uri"`
}

// GetDayMenus godoc
// @Summary Menus offered on a day (today by default)
// @Tags Menus
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /menu [get]
func GetDayMenus(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(models.MenuDateLayout)
	} else if _, err := time.Parse(models.MenuDateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Incorrect date format, should be YYYY-MM-DD"}})
		return
	}

	ctx := c.Request.Context()
	if body, ok := cache.GetMenus(ctx, date); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var menus []models.Menu
	err := config.DB.Preload("Meals").Preload("Catering").
		Where("date = ?", date).
		Order("id").
		Find(&menus).Error
	if err != nil {
		serverError(c, "day_menus", err)
		return
	}

	body, err := json.Marshal(gin.H{"menus": menuViews(menus)})
	if err != nil {
		serverError(c, "day_menus", err)
		return
	}
	cache.SetMenus(ctx, date, body, config.AppConfig.MenuCacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ListMenus godoc
// @Summary The caterer's menus, newest first
// @Tags Menus
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /menus [get]
func ListMenus(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	var menus []models.Menu
	err := config.DB.Preload("Meals").Preload("Catering").
		Where("catering_id = ?", catering.ID).
		Order("created_at desc, id desc").
		Find(&menus).Error
	if err != nil {
		serverError(c, "list_menus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menuViews(menus), "status": "success"})
}

// CreateMenu godoc
// @Summary Publish the caterer's menu for a date
// @Tags Menus
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateMenuRequest true "Menu"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /menu [post]
func CreateMenu(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	var req CreateMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	if dateTaken(c, catering.ID, req.Date, 0) {
		return
	}
	meals, msg, err := cateringMeals(catering.ID, req.Meals)
	if err != nil {
		serverError(c, "create_menu", err)
		return
	}
	if msg != "" {
		badRequest(c, msg)
		return
	}

	menu := models.Menu{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
		CateringID:  catering.ID,
		Meals:       meals,
		ImageURL:    req.ImageURL,
	}
	if err := config.DB.Omit("Catering", "Meals.*").Create(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			menuDateConflict(c, req.Date)
			return
		}
		serverError(c, "create_menu", err)
		return
	}
	menu.Catering = *catering

	cache.InvalidateMenus(c.Request.Context(), menu.Date)
	c.JSON(http.StatusCreated, menuView(&menu))
}

// GetMenu godoc
// @Summary Get a menu by id
// @Tags Menus
// @Security BearerAuth
// @Produce json
// @Param id path int true "Menu ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /menu/{id} [get]
func GetMenu(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var menu models.Menu
	err := config.DB.Preload("Meals").Preload("Catering").First(&menu, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		badRequest(c, fmt.Sprintf("Requested menu with id %d does not exist", id))
		return
	}
	if err != nil {
		serverError(c, "get_menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menuView(&menu)})
}

// UpdateMenu godoc
// @Summary Modify one of the caterer's menus
// @Tags Menus
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Menu ID"
// @Param request body UpdateMenuRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /menu/{id} [put]
func UpdateMenu(c *gin.Context) {
	menu, ok := findOwnMenu(c)
	if !ok {
		return
	}

	var req UpdateMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Title == nil && req.Description == nil && req.Date == nil && req.Meals == nil && req.ImageURL == nil {
		badRequest(c, "No field(s) specified to be modified")
		return
	}

	oldDate := menu.Date
	if req.Date != nil && *req.Date != menu.Date {
		if dateTaken(c, menu.CateringID, *req.Date, menu.ID) {
			return
		}
		menu.Date = *req.Date
	}
	if req.Title != nil {
		menu.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.ImageURL != nil {
		menu.ImageURL = *req.ImageURL
	}

	var meals []models.Meal
	if req.Meals != nil {
		var msg string
		var err error
		meals, msg, err = cateringMeals(menu.CateringID, req.Meals)
		if err != nil {
			serverError(c, "update_menu", err)
			return
		}
		if msg != "" {
			badRequest(c, msg)
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(menu).
			Select("title", "description", "date", "image_url").
			Updates(menu).Error; err != nil {
			return err
		}
		if req.Meals != nil {
			if err := tx.Exec("DELETE FROM menu_meals WHERE menu_id = ?", menu.ID).Error; err != nil {
				return err
			}
			return tx.Table("menu_meals").Create(joinRows("menu_id", menu.ID, meals)).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			menuDateConflict(c, menu.Date)
			return
		}
		serverError(c, "update_menu", err)
		return
	}
	if req.Meals != nil {
		menu.Meals = meals
	}

	cache.InvalidateMenus(c.Request.Context(), oldDate, menu.Date)
	c.JSON(http.StatusOK, menuView(menu))
}

// DeleteMenu godoc
// @Summary Delete one of the caterer's menus
// @Tags Menus
// @Security BearerAuth
// @Produce json
// @Param id path int true "Menu ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /menu/{id} [delete]
func DeleteMenu(c *gin.Context) {
	menu, ok := findOwnMenu(c)
	if !ok {
		return
	}

	var orders int64
	if err := config.DB.Model(&models.Order{}).Where("menu_id = ?", menu.ID).Count(&orders).Error; err != nil {
		serverError(c, "delete_menu", err)
		return
	}
	if orders > 0 {
		badRequest(c, fmt.Sprintf("Menu with id %d has orders and cannot be deleted", menu.ID))
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM menu_meals WHERE menu_id = ?", menu.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Menu{}, menu.ID).Error
	})
	if err != nil {
		serverError(c, "delete_menu", err)
		return
	}

	cache.InvalidateMenus(c.Request.Context(), menu.Date)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Menu deleted successfully"})
}

// findOwnMenu loads the :id menu scoped to the current catering
func findOwnMenu(c *gin.Context) (*models.Menu, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}
	catering := middleware.CurrentCatering(c)

	var menu models.Menu
	err := config.DB.Preload("Meals").
		Where("id = ? AND catering_id = ?", id, catering.ID).
		First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		badRequest(c, fmt.Sprintf("Menu with id %d does not exist", id))
		return nil, false
	}
	if err != nil {
		serverError(c, "find_menu", err)
		return nil, false
	}
	menu.Catering = *catering
	return &menu, true
}

// dateTaken answers 400 when the catering already has a menu on date.
// exceptID excludes the menu being edited.
func dateTaken(c *gin.Context, cateringID uint, date string, exceptID uint) bool {
	var count int64
	q := config.DB.Model(&models.Menu{}).Where("catering_id = ? AND date = ?", cateringID, date)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		serverError(c, "menu_date", err)
		return true
	}
	if count > 0 {
		menuDateConflict(c, date)
		return true
	}
	return false
}

func menuDateConflict(c *gin.Context, date string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
		"date": fmt.Sprintf("Menu for the specific date %s is already set", date),
	}})
}

// cateringMeals resolves ids to the catering's meals, keeping request order
// and dropping duplicates. A non-empty message names the first unknown id.
func cateringMeals(cateringID uint, ids []uint) ([]models.Meal, string, error) {
	ids = uniqueIDs(ids)

	var found []models.Meal
	if err := config.DB.Where("catering_id = ? AND id IN ?", cateringID, ids).Find(&found).Error; err != nil {
		return nil, "", fmt.Errorf("load meals: %w", err)
	}
	byID := make(map[uint]models.Meal, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}

	meals := make([]models.Meal, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, fmt.Sprintf("No meal exists with id: %d", id), nil
		}
		meals = append(meals, m)
	}
	return meals, "", nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// joinRows builds many2many rows for a Table(...).Create call
func joinRows(ownerColumn string, ownerID uint, meals []models.Meal) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(meals))
	for _, m := range meals {
		rows = append(rows, map[string]interface{}{ownerColumn: ownerID, "meal_id": m.ID})
	}
	return rows
}
