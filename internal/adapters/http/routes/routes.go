package routes

import (
	"time"

	"petrol-tracker/internal/adapters/http/handlers"
	"petrol-tracker/internal/adapters/http/middleware"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/config"
	"petrol-tracker/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// masterDataMaxAge is how long clients may cache fuel type listings
const masterDataMaxAge = 5 * time.Minute

// Services exposes the services background jobs run against
type Services struct {
	Auth         *services.AuthService
	Fuel         *services.FuelService
	Notification *services.NotificationService
}

// Handlers groups every HTTP handler
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Dashboard *handlers.DashboardHandler
	Station   *handlers.StationHandler
	Pump      *handlers.PumpHandler
	Staff     *handlers.StaffHandler
	FuelType  *handlers.FuelTypeHandler
	Inventory *handlers.InventoryHandler
	Sale      *handlers.SaleHandler
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *Services {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	stationRepo := repositories.NewStationRepository(db)
	pumpRepo := repositories.NewPumpRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	fuelTypeRepo := repositories.NewFuelTypeRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	stationService := services.NewStationService(stationRepo, pumpRepo, staffRepo, fuelTypeRepo)
	fuelService := services.NewFuelService(fuelTypeRepo, inventoryRepo, stationRepo)
	saleService := services.NewSaleService(saleRepo, stationRepo, fuelTypeRepo, staffRepo, cfg.Now)
	dashboardService := services.NewDashboardService(dashboardRepo, cfg.Dashboard.SnapshotTx)
	notifyService := services.NewNotificationService(cfg.Twilio)

	// Initialize handlers
	h := &Handlers{
		Health:    handlers.NewHealthHandler(cfg, config.HealthCheck),
		Auth:      handlers.NewAuthHandler(authService, userService, cfg),
		User:      handlers.NewUserHandler(userService),
		Dashboard: handlers.NewDashboardHandler(dashboardService, cfg.Now),
		Station:   handlers.NewStationHandler(stationService),
		Pump:      handlers.NewPumpHandler(stationService),
		Staff:     handlers.NewStaffHandler(stationService),
		FuelType:  handlers.NewFuelTypeHandler(fuelService),
		Inventory: handlers.NewInventoryHandler(fuelService, cfg.Now),
		Sale:      handlers.NewSaleHandler(saleService),
	}

	Register(app, h, cfg)

	return &Services{
		Auth:         authService,
		Fuel:         fuelService,
		Notification: notifyService,
	}
}

// Register mounts every route on app
func Register(app *fiber.App, h *Handlers, cfg *config.Config) {
	// Health check & root routes
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, h, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(router fiber.Router, h *Handlers, cfg *config.Config) {
	// API Info
	router.Get("/", h.Health.APIInfo)

	// Auth routes
	authRoutes := router.Group("/auth", middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, h.Auth, cfg)

	// Dashboard (public, raw snapshot body)
	router.Get("/dashboard", middleware.NoCacheHeaders(), h.Dashboard.GetDashboard)

	// Station data: reads are public, writes need a manager or admin
	write := []fiber.Handler{middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin()}
	setupStationRoutes(router.Group("/stations"), h.Station, write)
	setupPumpRoutes(router.Group("/pumps"), h.Pump, write)
	setupStaffRoutes(router.Group("/staff"), h.Staff, write)
	setupFuelTypeRoutes(router.Group("/fuel-types"), h.FuelType, write)
	setupInventoryRoutes(router.Group("/inventory"), h.Inventory, write)
	setupSaleRoutes(router.Group("/sales"), h.Sale, write)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, h.User)
}

// with prepends the write guards to handler
func with(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, handler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(cfg), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(cfg), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(cfg), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
	router.Put("/password", middleware.StrictRateLimiter(cfg), middleware.AuthMiddleware(cfg), handler.ChangePassword)
}

// setupStationRoutes configures station routes
func setupStationRoutes(router fiber.Router, handler *handlers.StationHandler, write []fiber.Handler) {
	router.Get("/", handler.ListStations)
	router.Get("/:id", handler.GetStation)
	router.Post("/", with(write, handler.CreateStation)...)
	router.Patch("/:id", with(write, handler.UpdateStation)...)
	router.Delete("/:id", with(write, handler.DeleteStation)...)
}

// setupPumpRoutes configures pump routes
func setupPumpRoutes(router fiber.Router, handler *handlers.PumpHandler, write []fiber.Handler) {
	router.Get("/", handler.ListPumps)
	router.Get("/:id", handler.GetPump)
	router.Post("/", with(write, handler.CreatePump)...)
	router.Patch("/:id", with(write, handler.UpdatePump)...)
	router.Delete("/:id", with(write, handler.DeletePump)...)
}

// setupStaffRoutes configures staff routes
func setupStaffRoutes(router fiber.Router, handler *handlers.StaffHandler, write []fiber.Handler) {
	router.Get("/", handler.ListStaff)
	router.Get("/:id", handler.GetStaff)
	router.Post("/", with(write, handler.CreateStaff)...)
	router.Patch("/:id", with(write, handler.UpdateStaff)...)
	router.Delete("/:id", with(write, handler.DeleteStaff)...)
}

// setupFuelTypeRoutes configures fuel type routes. Listings change rarely
// and may be cached briefly.
func setupFuelTypeRoutes(router fiber.Router, handler *handlers.FuelTypeHandler, write []fiber.Handler) {
	router.Get("/", middleware.CacheControl(masterDataMaxAge), handler.ListFuelTypes)
	router.Get("/:id", middleware.CacheControl(masterDataMaxAge), handler.GetFuelType)
	router.Post("/", with(write, handler.CreateFuelType)...)
	router.Patch("/:id", with(write, handler.UpdateFuelType)...)
	router.Delete("/:id", with(write, handler.DeleteFuelType)...)
}

// setupInventoryRoutes configures inventory routes
func setupInventoryRoutes(router fiber.Router, handler *handlers.InventoryHandler, write []fiber.Handler) {
	router.Get("/", handler.ListInventory)
	router.Get("/:id", handler.GetInventory)
	router.Post("/", with(write, handler.CreateInventory)...)
	router.Post("/:id/refill", with(write, handler.RefillInventory)...)
	router.Patch("/:id", with(write, handler.UpdateInventory)...)
	router.Delete("/:id", with(write, handler.DeleteInventory)...)
}

// setupSaleRoutes configures sale routes
func setupSaleRoutes(router fiber.Router, handler *handlers.SaleHandler, write []fiber.Handler) {
	router.Get("/", handler.ListSales)
	router.Get("/:id", handler.GetSale)
	router.Post("/", with(write, handler.CreateSale)...)
	router.Patch("/:id", with(write, handler.UpdateSale)...)
	router.Delete("/:id", with(write, handler.DeleteSale)...)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Patch("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}
