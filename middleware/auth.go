package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"catering-api/config"
	"catering-api/logger"
	"catering-api/models"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey     = "currentUser"
	currentCateringKey = "currentCatering"
)

// AuthRequired validates the bearer token and loads the current user with its role
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No Bearer token in Authorization header"})
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			logger.Default.Debug("auth", GetRequestID(c), "token rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization failed try again"})
			return
		}

		var user models.User
		if err := config.DB.Preload("Role").First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization failed try again"})
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// CatererRequired admits only users whose role carries the caterer bit
// and who administer a catering. Must run after AuthRequired.
func CatererRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsCaterer() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "403 forbidden access is denied"})
			return
		}

		var catering models.Catering
		if err := config.DB.Where("admin_id = ?", user.ID).First(&catering).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "No catering is registered for this account"})
			return
		}

		c.Set(currentCateringKey, &catering)
		c.Next()
	}
}

// bearerToken accepts "Bearer <jwt>" and, for older clients, a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	return header
}

// CurrentUser returns the user loaded by AuthRequired
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

// CurrentCatering returns the catering loaded by CatererRequired
func CurrentCatering(c *gin.Context) *models.Catering {
	val, ok := c.Get(currentCateringKey)
	if !ok {
		return nil
	}
	catering, _ := val.(*models.Catering)
	return catering
}
