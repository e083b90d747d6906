package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"catering-api/config"
	"catering-api/logger"
	"catering-api/middleware"
	"catering-api/models"
	"catering-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,notblank,min=6"`
}

type BusinessSignupRequest struct {
	Name            string `json:"name" binding:"required,notblank"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,notblank,min=6"`
	BusinessName    string `json:"businessName" binding:"required,notblank"`
	BusinessAddress string `json:"businessAddress" binding:"required,notblank"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required,notblank"`
}

// Signup godoc
// @Summary Register a customer
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Customer details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/signup [post]
func Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	if emailTaken(c, email) {
		return
	}

	var user models.User
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("is_default = ?", true).First(&role).Error; err != nil {
			return err
		}
		u, err := newUser(req.Name, email, req.Password, role)
		if err != nil {
			return err
		}
		user = u
		return tx.Omit("Role").Create(&user).Error
	})
	if err != nil {
		serverError(c, "signup", err)
		return
	}

	logger.Default.Info("signup", middleware.GetRequestID(c), "customer registered",
		slog.Uint64("user_id", uint64(user.ID)))
	c.JSON(http.StatusCreated, userView(&user))
}

// BusinessSignup godoc
// @Summary Register a catering business and its admin
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body BusinessSignupRequest true "Admin and business details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/business/signup [post]
func BusinessSignup(c *gin.Context) {
	var req BusinessSignupRequest
	if !bindJSON(c, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	if emailTaken(c, email) {
		return
	}

	var user models.User
	var catering models.Catering
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
			return err
		}
		u, err := newUser(req.Name, email, req.Password, role)
		if err != nil {
			return err
		}
		user = u
		if err := tx.Omit("Role").Create(&user).Error; err != nil {
			return err
		}
		catering = models.Catering{
			Name:    strings.TrimSpace(req.BusinessName),
			Address: strings.TrimSpace(req.BusinessAddress),
			AdminID: user.ID,
		}
		return tx.Create(&catering).Error
	})
	if err != nil {
		serverError(c, "business_signup", err)
		return
	}

	logger.Default.Info("business_signup", middleware.GetRequestID(c), "catering registered",
		slog.Uint64("user_id", uint64(user.ID)), slog.Uint64("catering_id", uint64(catering.ID)))
	c.JSON(http.StatusCreated, gin.H{
		"user":     userView(&user),
		"business": cateringView(&catering),
	})
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	err := config.DB.Preload("Role").Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if err != nil || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": gin.H{"form": "Wrong username or password"}})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  meView(&user),
	})
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [get]
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": meView(middleware.CurrentUser(c))})
}

func meView(u *models.User) gin.H {
	view := userView(u)
	view["role"] = u.Role.Name
	view["isAdmin"] = u.IsCaterer()
	return view
}

func newUser(name, email, password string, role models.Role) (models.User, error) {
	hash, err := utils.HashPassword(password, config.AppConfig.PasswordHasher)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Role:         role,
	}, nil
}

// emailTaken answers 400 when the address is already registered
func emailTaken(c *gin.Context, email string) bool {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		serverError(c, "signup", err)
		return true
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "Email already in use"}})
		return true
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
