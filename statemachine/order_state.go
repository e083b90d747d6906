package statemachine

import (
	"errors"
	"time"

	"catering-api/models"
)

// OrderState is derived from an order's expiry, never stored.
type OrderState string

const (
	StateCreated    OrderState = "created"
	StateModifiable OrderState = "modifiable"
	StateExpired    OrderState = "expired"
)

var (
	ErrOrderExpired      = errors.New("order expired and cannot be modified")
	ErrInvalidTransition = errors.New("invalid order transition")
)

// Transition defines a valid state change and what triggers it
type Transition struct {
	From    OrderState `json:"from"`
	To      OrderState `json:"to"`
	Trigger string     `json:"trigger"` // "place", "modify", "clock"
}

var validTransitions = []Transition{
	// Customer places the order; the expiry window opens
	{From: StateCreated, To: StateModifiable, Trigger: "place"},
	// Modification refreshes the window
	{From: StateModifiable, To: StateModifiable, Trigger: "modify"},
	// Wall clock passes expires_at
	{From: StateModifiable, To: StateExpired, Trigger: "clock"},
}

type transitionKey struct {
	From    OrderState
	To      OrderState
	Trigger string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Trigger}] = true
	}
	return m
}()

// StateOf derives the lifecycle state of an order at the given instant.
// Expiry is inclusive: an order is expired once now >= ExpiresAt.
func StateOf(order *models.Order, now time.Time) OrderState {
	if order.ID == 0 || order.ExpiresAt.IsZero() {
		return StateCreated
	}
	if now.Before(order.ExpiresAt) {
		return StateModifiable
	}
	return StateExpired
}

// CanTransition checks whether the trigger moves from one state to another
func CanTransition(from, to OrderState, trigger string) error {
	if transitionMap[transitionKey{From: from, To: to, Trigger: trigger}] {
		return nil
	}
	if from == StateExpired {
		return ErrOrderExpired
	}
	return ErrInvalidTransition
}

// CanModify reports whether a customer may still change the order.
func CanModify(order *models.Order, now time.Time) error {
	return CanTransition(StateOf(order, now), StateModifiable, "modify")
}

// ValidTransitionsFrom returns all next states reachable from status
func ValidTransitionsFrom(status OrderState) []OrderState {
	var nexts []OrderState
	seen := map[OrderState]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// GetAllTransitions returns the full lifecycle for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
