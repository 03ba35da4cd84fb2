package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fleetrent/handlers"
	"fleetrent/middleware"
)

// RegisterDealerRoutes registers account endpoints. Register and login are
// the only public API surface.
func RegisterDealerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dealers")
	{
		api.POST("/register", hb.Dealer.RegisterHandler)
		api.POST("/login", hb.Dealer.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.POST("/logout", hb.Dealer.LogoutHandler)
	}
}

// RegisterVehicleRoutes registers fleet management endpoints.
func RegisterVehicleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vehicles")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.POST("", hb.Vehicle.CreateVehicleHandler)
		api.GET("", hb.Vehicle.ListVehiclesHandler)
		api.GET("/:id", hb.Vehicle.GetVehicleHandler)
		api.PUT("/:id", hb.Vehicle.UpdateVehicleHandler)
		api.PUT("/:id/retire", hb.Vehicle.RetireVehicleHandler)
	}
}

// RegisterCustomerRoutes registers customer management endpoints.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/customers")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.POST("", hb.Customer.CreateCustomerHandler)
		api.GET("", hb.Customer.ListCustomersHandler)
		api.GET("/:id", hb.Customer.GetCustomerHandler)
		api.PUT("/:id", hb.Customer.UpdateCustomerHandler)
		api.DELETE("/:id", hb.Customer.DeactivateCustomerHandler)
	}
}

// RegisterRentalRoutes registers the rental lifecycle endpoints.
func RegisterRentalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rentals")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.POST("", hb.Rental.CreateRentalHandler)
		api.GET("", hb.Rental.ListRentalsHandler)
		api.GET("/:id", hb.Rental.GetRentalHandler)
		api.PUT("/:id/return", hb.Rental.ReturnRentalHandler)
		api.PUT("/:id/extend", hb.Rental.ExtendRentalHandler)
		api.PUT("/:id/cancel", hb.Rental.CancelRentalHandler)
	}
}

// RegisterPaymentRoutes registers payment bookkeeping endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.GET("", hb.Payment.ListPaymentsHandler)
		api.GET("/:id", hb.Payment.GetPaymentHandler)
		api.PUT("/:id/process", hb.Payment.ProcessPaymentHandler)
		api.PUT("/:id/refund", hb.Payment.RefundPaymentHandler)
		api.PUT("/:id/late-fee", hb.Payment.ApplyLateFeeHandler)
	}
}

// RegisterDashboardRoutes registers the reporting endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.GET("/stats", hb.Dashboard.StatsHandler)
		api.GET("/recent-activity", hb.Dashboard.RecentActivityHandler)
		api.GET("/revenue-chart", hb.Dashboard.RevenueChartHandler)
	}
}

// RegisterAlertRoutes registers the operator alert feed.
func RegisterAlertRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/alerts")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.DealerRepo))
		api.GET("", hb.Alert.ListAlertsHandler)
		api.PUT("/:id/acknowledge", hb.Alert.AcknowledgeAlertHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterDealerRoutes(r, hb)
	RegisterVehicleRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterRentalRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterAlertRoutes(r, hb)
}
