package handlers

import (
	"testing"
	"time"

	"catering-api/config"
	"catering-api/models"
	"catering-api/statemachine"
)

func TestAbsoluteURL(t *testing.T) {
	config.AppConfig = config.Default()
	config.AppConfig.BaseURL = "https://api.example.com/"
	t.Cleanup(func() { config.AppConfig = config.Default() })

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/images/lunch.png", "https://api.example.com/images/lunch.png"},
		{"images/lunch.png", "https://api.example.com/images/lunch.png"},
		{"https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
	}
	for _, tt := range tests {
		if got := absoluteURL(tt.in); got != tt.want {
			t.Errorf("absoluteURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrderViewStatus(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		ID:         3,
		TotalCost:  30,
		OrderCount: 3,
		MenuID:     2,
		Meals:      []models.Meal{{ID: 1, Title: "Rice", Price: 10}},
		ExpiresAt:  now.Add(time.Minute),
	}

	view := orderView(&order, now)
	if view["status"] != statemachine.StateModifiable {
		t.Errorf("status = %v", view["status"])
	}
	if view["unitCost"] != 10.0 {
		t.Errorf("unitCost = %v", view["unitCost"])
	}
	if view["expiresAt"] != "2026-10-19T12:01:00Z" {
		t.Errorf("expiresAt = %v", view["expiresAt"])
	}

	view = orderView(&order, now.Add(time.Minute))
	if view["status"] != statemachine.StateExpired {
		t.Errorf("status at expiry = %v, want expired", view["status"])
	}
}
