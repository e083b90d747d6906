package handlers

import (
	"net/http"

	"catering-api/config"
	"catering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary Liveness and database check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "Catering Marketplace API",
		"version": "1.0.0",
	})
}

// GetOrderLifecycle godoc
// @Summary Describe the order lifecycle and the modification window
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /order-lifecycle [get]
func GetOrderLifecycle(c *gin.Context) {
	next := gin.H{}
	for _, state := range []statemachine.OrderState{
		statemachine.StateCreated, statemachine.StateModifiable, statemachine.StateExpired,
	} {
		reachable := statemachine.ValidTransitionsFrom(state)
		if reachable == nil {
			reachable = []statemachine.OrderState{}
		}
		next[string(state)] = reachable
	}

	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"next_states":     next,
		"terminal_states": []statemachine.OrderState{statemachine.StateExpired},
		"window_minutes":  int(config.AppConfig.OrderExpiresIn.Minutes()),
		"description":     "Orders can be modified until expiresAt, then become read-only",
	})
}
