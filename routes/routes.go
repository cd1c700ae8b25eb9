package routes

import (
	"time"

	"ghtour/config"
	"ghtour/handlers"
	"ghtour/middleware"
	"ghtour/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-in, sign-up and sign-out.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/register", hb.Auth.RegisterHandler)

		// Protected routes (Require Authentication)
		api.POST("/logout", middleware.FirebaseAuthMiddleware(hb.Identity), hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.Identity))
		api.GET("/me", hb.Users.MeHandler)
	}
}

// RegisterCatalogRoutes registers the public destination and guide endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	destinations := r.Group("/api/destinations")
	{
		destinations.GET("", hb.Catalog.ListDestinationsHandler)
		destinations.GET("/sites", hb.Catalog.ListSitesHandler)
		destinations.GET("/attractions", hb.Catalog.ListAttractionsHandler)
		destinations.GET("/:kind/:id", hb.Catalog.GetDestinationHandler)
	}

	guides := r.Group("/api/guides")
	{
		guides.GET("", hb.Guides.ListGuidesHandler)
		guides.GET("/:id", hb.Guides.GetGuideHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.FirebaseAuthMiddleware(hb.Identity))
		bookingGroup.POST("", hb.Bookings.CreateBookingHandler)
		bookingGroup.GET("", hb.Bookings.ListBookingsHandler)
		bookingGroup.DELETE("/:id", hb.Bookings.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.HealthHandlerFunc)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(utils.GetLogger()))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
