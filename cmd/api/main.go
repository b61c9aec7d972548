package main

import (
	"log"

	"github.com/bottegasoft/bottega-api/internal/application/service"
	"github.com/bottegasoft/bottega-api/internal/config"
	"github.com/bottegasoft/bottega-api/internal/infrastructure/database"
	"github.com/bottegasoft/bottega-api/internal/infrastructure/repository"
	"github.com/bottegasoft/bottega-api/internal/presentation/http/handler"
	"github.com/bottegasoft/bottega-api/internal/presentation/http/routes"
	"github.com/bottegasoft/bottega-api/pkg/sequence"
	"github.com/bottegasoft/bottega-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	returnItemRepo := repository.NewReturnItemRepository(db)
	exchangeRepo := repository.NewExchangeRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(
		saleRepo,
		saleItemRepo,
		productRepo,
		customerRepo,
		sequence.NewRandomGenerator("INV"),
	)
	returnService := service.NewReturnService(
		returnRepo,
		returnItemRepo,
		saleRepo,
		saleItemRepo,
		productRepo,
		sequence.NewRandomGenerator("CN"),
		nil,
	)
	exchangeService := service.NewExchangeService(
		exchangeRepo,
		returnService,
		saleService,
		sequence.NewRandomGenerator("EXC"),
	)
	dashboardService := service.NewDashboardService(saleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Sale:      handler.NewSaleHandler(saleService),
		Return:    handler.NewReturnHandler(returnService),
		Exchange:  handler.NewExchangeHandler(exchangeService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes and start the server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
