package routes

import (
	"catering-api/handlers"
	"catering-api/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(r *gin.Engine) {
	handlers.RegisterValidators()

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", handlers.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api/v1")
	{
		public.GET("/health", handlers.Health)

		// Auth
		public.POST("/auth/signup", handlers.Signup)
		public.POST("/auth/business/signup", handlers.BusinessSignup)
		public.POST("/auth/login", handlers.Login)

		// Today's menus across all caterings
		public.GET("/menu", handlers.GetDayMenus)

		public.GET("/order-lifecycle", handlers.GetOrderLifecycle)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api/v1")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/me", handlers.Me)
		auth.GET("/menu/:id", handlers.GetMenu)

		// Customer orders
		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id", handlers.ModifyOrder)
		auth.GET("/myorders", handlers.MyOrders)
	}

	// ── Caterer routes ─────────────────────────────────────────────
	caterer := r.Group("/api/v1")
	caterer.Use(middleware.AuthRequired(), middleware.CatererRequired())
	{
		caterer.GET("/catering", handlers.GetCatering)
		caterer.PUT("/catering", handlers.UpdateCatering)

		// Meal management
		caterer.GET("/meals", handlers.ListMeals)
		caterer.POST("/meals", handlers.CreateMeal)
		caterer.GET("/meals/:id", handlers.GetMeal)
		caterer.PUT("/meals/:id", handlers.UpdateMeal)
		caterer.DELETE("/meals/:id", handlers.DeleteMeal)

		// Menu management
		caterer.POST("/menu", handlers.CreateMenu)
		caterer.PUT("/menu/:id", handlers.UpdateMenu)
		caterer.DELETE("/menu/:id", handlers.DeleteMenu)
		caterer.GET("/menus", handlers.ListMenus)

		// Orders placed to this catering
		caterer.GET("/orders", handlers.ListCateringOrders)
	}
}
