package routes

import (
	"time"

	"caribe-tours/internal/adapters/http/handlers"
	"caribe-tours/internal/adapters/http/middleware"
	"caribe-tours/internal/adapters/persistence/repositories"
	"caribe-tours/internal/config"
	"caribe-tours/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	agencyRepo := repositories.NewAgencyRepository(db)
	bankAccountRepo := repositories.NewBankAccountRepository(db)
	tourRepo := repositories.NewTourRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	planRepo := repositories.NewPlanRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, agencyRepo, cfg)
	userService := services.NewUserService(userRepo)
	agencyService := services.NewAgencyService(agencyRepo, bankAccountRepo, transactionRepo)
	tourService := services.NewTourService(tourRepo, agencyRepo, planRepo)
	bookingService := services.NewBookingService(bookingRepo, tourRepo, userRepo, agencyRepo, transactionRepo)
	paymentService := services.NewPaymentService(agencyRepo, tourRepo, planRepo, transactionRepo)
	adminService := services.NewAdminService(tourRepo, bookingRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	agencyHandler := handlers.NewAgencyHandler(agencyService)
	tourHandler := handlers.NewTourHandler(tourService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, agencyService)
	adminHandler := handlers.NewAdminHandler(adminService, agencyService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public catalog routes
	setupPublicRoutes(apiV1, tourHandler, agencyHandler, cfg)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/users/me")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Booking routes (authenticated travelers)
	bookingRoutes := apiV1.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBookingRoutes(bookingRoutes, bookingHandler)

	// Agency routes (agency or admin)
	agencyRoutes := apiV1.Group("/agency")
	agencyRoutes.Use(middleware.AuthMiddleware(cfg))
	agencyRoutes.Use(middleware.AgencyOrAdmin())
	setupAgencyRoutes(agencyRoutes, agencyHandler, tourHandler, bookingHandler, paymentHandler)

	// Admin routes (admin only)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes with stricter rate limits
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/external", middleware.AuthRateLimiter(), handler.ExternalLogin)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupPublicRoutes configures unauthenticated catalog routes
func setupPublicRoutes(router fiber.Router, tourHandler *handlers.TourHandler, agencyHandler *handlers.AgencyHandler, cfg *config.Config) {
	router.Get("/tours", middleware.CacheControl(1*time.Minute), tourHandler.ListTours)
	router.Get("/tours/featured", middleware.CacheControl(1*time.Minute), tourHandler.ListFeatured)

	// Tour detail supports optional auth: owners see their unpublished tours
	router.Get("/tours/:id", middleware.OptionalAuth(cfg), tourHandler.GetTour)

	router.Get("/plans", middleware.PlanCatalogCache(), tourHandler.ListPlans)
	router.Get("/agencies/:id", agencyHandler.GetPublicProfile)
}

// setupProfileRoutes configures user profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}

// setupBookingRoutes configures traveler booking routes
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	router.Post("/", handler.CreateBooking)
	router.Get("/", handler.ListMyBookings)
	router.Get("/:id", handler.GetBooking)
	router.Post("/:id/receipt", handler.SubmitReceipt)
}

// setupAgencyRoutes configures agency back-office routes
func setupAgencyRoutes(
	router fiber.Router,
	agencyHandler *handlers.AgencyHandler,
	tourHandler *handlers.TourHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	// Profile
	router.Get("/profile", agencyHandler.GetProfile)
	router.Put("/profile", agencyHandler.UpdateProfile)

	// Bank accounts
	router.Get("/bank-accounts", agencyHandler.ListBankAccounts)
	router.Post("/bank-accounts", agencyHandler.AddBankAccount)
	router.Delete("/bank-accounts/:id", agencyHandler.RemoveBankAccount)

	// Revenue ledger
	router.Get("/transactions", agencyHandler.ListTransactions)

	// Tour management
	router.Get("/tours", tourHandler.ListMyTours)
	router.Post("/tours", tourHandler.CreateTour)
	router.Put("/tours/:id", tourHandler.UpdateTour)
	router.Delete("/tours/:id", tourHandler.DeleteTour)
	router.Post("/tours/:id/promote", tourHandler.PromoteTour)

	// Bookings against the agency's tours
	router.Get("/bookings", bookingHandler.ListAgencyBookings)
	router.Put("/bookings/:id/status", bookingHandler.UpdateBookingStatus)

	// External payment verification
	router.Post("/payments/verify", middleware.StrictRateLimiter(), paymentHandler.VerifyPayment)
}

// setupAdminRoutes configures admin moderation routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	// Users
	router.Get("/users", handler.ListUsers)
	router.Put("/users/:id/role", handler.SetUserRole)

	// Agencies
	router.Get("/agencies", handler.ListAgencies)
	router.Put("/agencies/:id/status", handler.SetAgencyStatus)
	router.Put("/agencies/:id/verify", handler.SetAgencyVerified)
	router.Put("/agencies/:id/commission", handler.SetAgencyCommission)
	router.Get("/agencies/:id/transactions", handler.ListAgencyTransactions)

	// Tours
	router.Post("/tours/:id/moderate", handler.ModerateTour)

	// Bookings
	router.Delete("/bookings/:id", handler.DeleteBooking)
}
