package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"catering-api/config"
	"catering-api/events"
	"catering-api/middleware"
	"catering-api/models"
	"catering-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	MenuID     uint   `json:"menuId" binding:"required"`
	Meals      []uint `json:"meals" binding:"required,min=1"`
	OrderCount *int   `json:"orderCount" binding:"omitempty,min=1"`
}

type ModifyOrderRequest struct {
	Meals      []uint `json:"meals" binding:"omitempty,min=1"`
	OrderCount *int   `json:"orderCount" binding:"omitempty,min=1"`
}

// PlaceOrder godoc
// @Summary Order meals from a menu
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PlaceOrderRequest true "Order"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /orders [post]
func PlaceOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	count := 1
	if req.OrderCount != nil {
		count = *req.OrderCount
	}

	var menu models.Menu
	err := config.DB.Preload("Meals").First(&menu, req.MenuID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		badRequest(c, fmt.Sprintf("Menu with id %d does not exist", req.MenuID))
		return
	}
	if err != nil {
		serverError(c, "place_order", err)
		return
	}

	now := time.Now()
	if menu.Date < now.Format(models.MenuDateLayout) {
		badRequest(c, fmt.Sprintf("Menu for %s is no longer available for orders", menu.Date))
		return
	}

	meals, msg, err := menuMeals(&menu, req.Meals)
	if err != nil {
		serverError(c, "place_order", err)
		return
	}
	if msg != "" {
		badRequest(c, msg)
		return
	}

	order := models.Order{
		CustomerID: user.ID,
		CateringID: menu.CateringID,
		MenuID:     menu.ID,
	}
	if err := statemachine.Place(&order, meals, count, now, config.AppConfig.OrderExpiresIn); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := config.DB.Omit("Customer", "Catering", "Menu", "Meals.*").Create(&order).Error; err != nil {
		serverError(c, "place_order", err)
		return
	}
	order.Customer = *user

	emitOrder(c, events.OrderPlaced, &order)
	c.JSON(http.StatusCreated, gin.H{"order": orderView(&order, now)})
}

// GetOrder godoc
// @Summary Get one of the caller's orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /orders/{id} [get]
func GetOrder(c *gin.Context) {
	order, ok := findOwnOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orderView(order, time.Now())})
}

// ModifyOrder godoc
// @Summary Change meals or count of an order before it expires
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body ModifyOrderRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /orders/{id} [put]
func ModifyOrder(c *gin.Context) {
	order, ok := findOwnOrder(c)
	if !ok {
		return
	}

	var req ModifyOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Meals == nil && req.OrderCount == nil {
		badRequest(c, "No fields specified to be modified")
		return
	}

	var menu models.Menu
	if err := config.DB.Preload("Meals").First(&menu, order.MenuID).Error; err != nil {
		serverError(c, "modify_order", err)
		return
	}

	ids := req.Meals
	if ids == nil {
		for _, m := range order.Meals {
			ids = append(ids, m.ID)
		}
	}
	meals, msg, err := menuMeals(&menu, ids)
	if err != nil {
		serverError(c, "modify_order", err)
		return
	}
	if msg != "" {
		badRequest(c, msg)
		return
	}
	count := order.OrderCount
	if req.OrderCount != nil {
		count = *req.OrderCount
	}

	now := time.Now()
	if err := statemachine.Modify(order, meals, count, now, config.AppConfig.OrderExpiresIn); err != nil {
		if errors.Is(err, statemachine.ErrOrderExpired) {
			badRequest(c, "Order expired and cannot be modified")
			return
		}
		badRequest(c, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"total_cost":  order.TotalCost,
			"order_count": order.OrderCount,
			"expires_at":  order.ExpiresAt,
		}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM order_meals WHERE order_id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Table("order_meals").Create(joinRows("order_id", order.ID, meals)).Error
	})
	if err != nil {
		serverError(c, "modify_order", err)
		return
	}

	emitOrder(c, events.OrderModified, order)
	c.JSON(http.StatusOK, gin.H{"order": orderView(order, now)})
}

// MyOrders godoc
// @Summary The caller's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /myorders [get]
func MyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var orders []models.Order
	err := withMeals(config.DB).Preload("Customer").
		Where("customer_id = ?", user.ID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		serverError(c, "my_orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orderViews(orders, time.Now())})
}

// ListCateringOrders godoc
// @Summary Orders placed to the caller's catering, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /orders [get]
func ListCateringOrders(c *gin.Context) {
	catering := middleware.CurrentCatering(c)

	var orders []models.Order
	err := withMeals(config.DB).Preload("Customer").
		Where("catering_id = ?", catering.ID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		serverError(c, "catering_orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orderViews(orders, time.Now())})
}

// findOwnOrder loads the :id order of the current user. Orders of other
// customers look exactly like missing ones.
func findOwnOrder(c *gin.Context) (*models.Order, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}
	user := middleware.CurrentUser(c)

	var order models.Order
	err := withMeals(config.DB).Preload("Customer").
		Where("id = ? AND customer_id = ?", id, user.ID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		badRequest(c, fmt.Sprintf("order with id %d does not exist", id))
		return nil, false
	}
	if err != nil {
		serverError(c, "find_order", err)
		return nil, false
	}
	return &order, true
}

// menuMeals resolves ids against the meals offered on menu. A non-empty
// message names the first id that is unknown or not on the menu.
func menuMeals(menu *models.Menu, ids []uint) ([]models.Meal, string, error) {
	ids = uniqueIDs(ids)
	meals := make([]models.Meal, 0, len(ids))
	for _, id := range ids {
		if !menu.Offers(id) {
			var exists int64
			if err := config.DB.Model(&models.Meal{}).Where("id = ?", id).Count(&exists).Error; err != nil {
				return nil, "", fmt.Errorf("count meal %d: %w", id, err)
			}
			if exists == 0 {
				return nil, fmt.Sprintf("No meal exists with id: %d", id), nil
			}
			return nil, fmt.Sprintf("Meal with id %d is not on menu %d", id, menu.ID), nil
		}
		for _, m := range menu.Meals {
			if m.ID == id {
				meals = append(meals, m)
				break
			}
		}
	}
	return meals, "", nil
}

func emitOrder(c *gin.Context, eventType string, o *models.Order) {
	events.Emit(c.Request.Context(), middleware.GetRequestID(c), events.Event{
		Type:       eventType,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		CateringID: o.CateringID,
		MenuID:     o.MenuID,
		TotalCost:  o.TotalCost,
		OrderCount: o.OrderCount,
		ExpiresAt:  o.ExpiresAt,
	})
}
