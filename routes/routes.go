package routes

import (
	"marketplace-api/handlers"
	"marketplace-api/middleware"
	"marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.POST("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Partner (restaurant owner) routes ──────────────────────────
	partner := r.Group("/api/partner")
	partner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurant))
	{
		// Restaurant management
		partner.POST("/restaurant", handlers.CreateRestaurant)
		partner.GET("/restaurant", handlers.GetMyRestaurant)
		partner.PUT("/restaurant", handlers.UpdateRestaurant)

		// Weekly schedule, one weekday per request
		partner.PATCH("/restaurant/hours/:day", handlers.UpdateOpeningHours)
		partner.DELETE("/restaurant/hours/:day", handlers.DeleteOpeningHours)

		// Menu management
		partner.POST("/menu", handlers.AddMenuItem)
		partner.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		partner.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Order board and lifecycle transitions
		partner.GET("/orders", handlers.GetRestaurantOrders)
		partner.POST("/orders/:id/confirm", handlers.ConfirmOrder)
		partner.POST("/orders/:id/ready", handlers.StartPreparation)
		partner.POST("/orders/:id/dispatch", handlers.DispatchOrder)
		partner.POST("/orders/:id/complete", handlers.CompleteOrder)
		partner.POST("/orders/:id/cancel", handlers.RestaurantCancelOrder)

		// Dashboard analytics
		partner.GET("/analytics", handlers.GetRestaurantAnalytics)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
	}
}
