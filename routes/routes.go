package routes

import (
	"time"

	"coolrentals/config"
	"coolrentals/handlers"
	"coolrentals/middleware"
	"coolrentals/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterUnitRoutes registers the public catalogue endpoints.
func RegisterUnitRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	units := api.Group("/units")
	{
		units.GET("", hb.Units.SearchUnits)
		units.GET("/:id", hb.Units.GetUnit)
		units.POST("/:id/inquiry", hb.Units.CreateInquiry)
	}
}

// RegisterServicingRoutes registers the public servicing endpoints.
func RegisterServicingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/services", hb.Servicing.ListServices)
	api.GET("/services/:id", hb.Servicing.GetService)
	api.POST("/service-bookings", hb.Servicing.CreateBooking)
	api.POST("/service-requests", hb.Servicing.CreateRequest)
}

// RegisterSubmissionRoutes registers the public contact forms.
func RegisterSubmissionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/vendor-listing-request", hb.Submissions.CreateVendorListing)
	api.POST("/leads", hb.Submissions.CreateLead)
	api.POST("/contact", hb.Submissions.CreateContact)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", hb.Admin.Login)

	protected := adminGroup.Group("")
	protected.Use(middleware.AdminAuth(hb.Tokens))
	{
		protected.POST("/logout", hb.Admin.Logout)

		protected.GET("/units", hb.Units.ListUnits)
		protected.POST("/units", hb.Units.CreateUnit)
		protected.PATCH("/units/:id", hb.Units.UpdateUnit)
		protected.DELETE("/units/:id", hb.Units.DeleteUnit)

		protected.GET("/rental-inquiries", hb.Units.ListInquiries)
		protected.PATCH("/rental-inquiries/:id", hb.Units.UpdateInquiryStatus)

		protected.POST("/services", hb.Servicing.CreateService)
		protected.PATCH("/services/:id", hb.Servicing.UpdateService)
		protected.DELETE("/services/:id", hb.Servicing.DeleteService)

		protected.GET("/service-bookings", hb.Servicing.ListBookings)
		protected.PATCH("/service-bookings/:id", hb.Servicing.UpdateBookingStatus)

		protected.GET("/service-requests", hb.Servicing.ListRequests)
		protected.PATCH("/service-requests/:id", hb.Servicing.UpdateRequestStatus)

		protected.GET("/vendor-requests", hb.Submissions.ListVendorListings)
		protected.GET("/leads", hb.Submissions.ListLeads)
		protected.GET("/contacts", hb.Submissions.ListContacts)

		protected.POST("/uploads", hb.Storage.UploadImages)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(api *gin.RouterGroup) {
	api.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	RegisterHealthRoute(api)
	RegisterUnitRoutes(api, hb)
	RegisterServicingRoutes(api, hb)
	RegisterSubmissionRoutes(api, hb)
	RegisterAdminRoutes(api, hb)

	r.NoRoute(utils.NotFoundRoute)
}

const defaultFrontendOrigin = "http://localhost:3000"

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin()},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func frontendOrigin() string {
	if config.AppConfig.FrontendURL == "" {
		return defaultFrontendOrigin
	}
	return config.AppConfig.FrontendURL
}

// NewRouter builds the engine with the global middleware chain and all routes.
func NewRouter(hb *handlers.HandlerBundle, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	// CORS headers go on every response, throttled ones included.
	r.Use(corsMiddleware())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	RegisterRoutes(r, hb)
	return r
}
