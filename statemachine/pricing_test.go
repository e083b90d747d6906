package statemachine

import (
	"errors"
	"testing"
	"time"

	"catering-api/models"
)

func TestTotalCost(t *testing.T) {
	meals := []models.Meal{{ID: 1, Price: 12.5}, {ID: 2, Price: 7.25}}

	tests := []struct {
		name    string
		meals   []models.Meal
		count   int
		want    float64
		wantErr error
	}{
		{name: "single portion", meals: meals, count: 1, want: 19.75},
		{name: "multiplied by count", meals: meals, count: 3, want: 59.25},
		{name: "cents are rounded", meals: []models.Meal{{Price: 0.1}, {Price: 0.2}}, count: 1, want: 0.3},
		{name: "zero count", meals: meals, count: 0, wantErr: ErrInvalidCount},
		{name: "no meals", meals: nil, count: 2, wantErr: ErrNoMeals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalCost(tt.meals, tt.count)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("TotalCost() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("TotalCost() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TotalCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaceSetsExpiryAndTotal(t *testing.T) {
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	window := 5 * time.Minute
	order := models.Order{}

	err := Place(&order, []models.Meal{{ID: 4, Price: 10}}, 2, now, window)
	if err != nil {
		t.Fatalf("Place() returned %v", err)
	}
	if order.TotalCost != 20 {
		t.Errorf("TotalCost = %v, want 20", order.TotalCost)
	}
	if order.OrderCount != 2 {
		t.Errorf("OrderCount = %d, want 2", order.OrderCount)
	}
	if !order.ExpiresAt.Equal(now.Add(window)) {
		t.Errorf("ExpiresAt = %v, want %v", order.ExpiresAt, now.Add(window))
	}
}

func TestModify(t *testing.T) {
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	order := models.Order{ID: 9, TotalCost: 10, OrderCount: 1, ExpiresAt: now.Add(time.Minute)}
	if err := Modify(&order, []models.Meal{{ID: 1, Price: 3}, {ID: 2, Price: 4}}, 2, now, window); err != nil {
		t.Fatalf("Modify() returned %v", err)
	}
	if order.TotalCost != 14 {
		t.Errorf("TotalCost = %v, want 14", order.TotalCost)
	}
	if !order.ExpiresAt.Equal(now.Add(window)) {
		t.Errorf("expiry not refreshed: %v", order.ExpiresAt)
	}

	expired := models.Order{ID: 10, TotalCost: 10, OrderCount: 1, ExpiresAt: now}
	err := Modify(&expired, []models.Meal{{ID: 1, Price: 3}}, 1, now, window)
	if !errors.Is(err, ErrOrderExpired) {
		t.Fatalf("Modify() on expired order = %v, want ErrOrderExpired", err)
	}
	if expired.TotalCost != 10 {
		t.Errorf("expired order was mutated: TotalCost = %v", expired.TotalCost)
	}
}

func TestUnitCost(t *testing.T) {
	order := models.Order{TotalCost: 45, OrderCount: 3}
	if got := UnitCost(&order); got != 15 {
		t.Errorf("UnitCost() = %v, want 15", got)
	}
}
