package handlers

import (
	"net/http"
	"strings"

	"catering-api/cache"
	"catering-api/config"
	"catering-api/middleware"
	"catering-api/models"

	"github.com/gin-gonic/gin"
)

type UpdateCateringRequest struct {
	Name    *string `json:"name" binding:"omitempty,notblank"`
	Address *string `json:"address" binding:"omitempty,notblank"`
}

// GetCatering godoc
// @Summary The caterer's business with catalogue counts
// @Tags Catering
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catering [get]
func GetCatering(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	view := cateringView(catering)
	counts := []struct {
		key   string
		model interface{}
	}{
		{"mealCount", &models.Meal{}},
		{"menuCount", &models.Menu{}},
		{"orderCount", &models.Order{}},
	}
	for _, cnt := range counts {
		var n int64
		if err := config.DB.Model(cnt.model).Where("catering_id = ?", catering.ID).Count(&n).Error; err != nil {
			serverError(c, "get_catering", err)
			return
		}
		view[cnt.key] = n
	}
	c.JSON(http.StatusOK, gin.H{"catering": view})
}

// UpdateCatering godoc
// @Summary Rename or move the caterer's business
// @Tags Catering
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateCateringRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /catering [put]
func UpdateCatering(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	var req UpdateCateringRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil && req.Address == nil {
		badRequest(c, "No fields specified to be modified")
		return
	}
	if req.Name != nil {
		catering.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		catering.Address = strings.TrimSpace(*req.Address)
	}
	if err := config.DB.Model(catering).Select("name", "address").Updates(catering).Error; err != nil {
		serverError(c, "update_catering", err)
		return
	}

	// cached menus embed the catering name and address
	var dates []string
	if err := config.DB.Model(&models.Menu{}).Where("catering_id = ?", catering.ID).Distinct().Pluck("date", &dates).Error; err != nil {
		serverError(c, "update_catering", err)
		return
	}
	cache.InvalidateMenus(c.Request.Context(), dates...)

	c.JSON(http.StatusOK, gin.H{"catering": cateringView(catering)})
}
