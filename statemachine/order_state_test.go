package statemachine

import (
	"errors"
	"testing"
	"time"

	"catering-api/models"
)

func TestStateOf(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		order models.Order
		want  OrderState
	}{
		{name: "unsaved order", order: models.Order{}, want: StateCreated},
		{name: "window open", order: models.Order{ID: 1, ExpiresAt: now.Add(time.Minute)}, want: StateModifiable},
		{name: "expires exactly now", order: models.Order{ID: 1, ExpiresAt: now}, want: StateExpired},
		{name: "window closed", order: models.Order{ID: 1, ExpiresAt: now.Add(-time.Second)}, want: StateExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(&tt.order, now); got != tt.want {
				t.Errorf("StateOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanModify(t *testing.T) {
	now := time.Now()

	open := models.Order{ID: 3, ExpiresAt: now.Add(5 * time.Minute)}
	if err := CanModify(&open, now); err != nil {
		t.Fatalf("CanModify() on open order returned %v", err)
	}

	closed := models.Order{ID: 3, ExpiresAt: now.Add(-5 * time.Minute)}
	if err := CanModify(&closed, now); !errors.Is(err, ErrOrderExpired) {
		t.Fatalf("CanModify() on expired order = %v, want ErrOrderExpired", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    OrderState
		to      OrderState
		trigger string
		wantErr error
	}{
		{StateCreated, StateModifiable, "place", nil},
		{StateModifiable, StateModifiable, "modify", nil},
		{StateModifiable, StateExpired, "clock", nil},
		{StateExpired, StateModifiable, "modify", ErrOrderExpired},
		{StateCreated, StateModifiable, "modify", ErrInvalidTransition},
		{StateModifiable, StateModifiable, "place", ErrInvalidTransition},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to, tt.trigger)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", tt.from, tt.to, tt.trigger, err, tt.wantErr)
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	if got := ValidTransitionsFrom(StateExpired); len(got) != 0 {
		t.Errorf("expired should be terminal, got %v", got)
	}
	got := ValidTransitionsFrom(StateModifiable)
	if len(got) != 2 {
		t.Fatalf("ValidTransitionsFrom(modifiable) = %v, want 2 states", got)
	}
}
