package statemachine

import (
	"errors"
	"math"
	"time"

	"catering-api/models"
)

var (
	ErrInvalidCount = errors.New("order count must be at least 1")
	ErrNoMeals      = errors.New("order must contain at least one meal")
)

// TotalCost is the summed meal price multiplied by count, rounded to cents.
func TotalCost(meals []models.Meal, count int) (float64, error) {
	if count < 1 {
		return 0, ErrInvalidCount
	}
	if len(meals) == 0 {
		return 0, ErrNoMeals
	}
	var sum float64
	for _, m := range meals {
		sum += m.Price
	}
	return math.Round(sum*float64(count)*100) / 100, nil
}

func ExpiresAt(now time.Time, window time.Duration) time.Time {
	return now.Add(window)
}

// Place prices a new order and opens its modification window.
func Place(order *models.Order, meals []models.Meal, count int, now time.Time, window time.Duration) error {
	if err := CanTransition(StateOf(order, now), StateModifiable, "place"); err != nil {
		return err
	}
	return apply(order, meals, count, now, window)
}

// Modify replaces the order's meals and count, recomputes the total and
// refreshes the window. Fails with ErrOrderExpired once the window closed.
func Modify(order *models.Order, meals []models.Meal, count int, now time.Time, window time.Duration) error {
	if err := CanModify(order, now); err != nil {
		return err
	}
	return apply(order, meals, count, now, window)
}

func apply(order *models.Order, meals []models.Meal, count int, now time.Time, window time.Duration) error {
	total, err := TotalCost(meals, count)
	if err != nil {
		return err
	}
	order.Meals = meals
	order.OrderCount = count
	order.TotalCost = total
	order.ExpiresAt = ExpiresAt(now, window)
	return nil
}

// UnitCost is the price of a single portion set of the order.
func UnitCost(order *models.Order) float64 {
	if order.OrderCount < 1 {
		return order.TotalCost
	}
	return math.Round(order.TotalCost/float64(order.OrderCount)*100) / 100
}
