package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/maghsala/maghsala-api/internal/application/service"
	"github.com/maghsala/maghsala-api/internal/config"
	"github.com/maghsala/maghsala-api/internal/infrastructure/database"
	"github.com/maghsala/maghsala-api/internal/infrastructure/repository"
	"github.com/maghsala/maghsala-api/internal/presentation/http/handler"
	"github.com/maghsala/maghsala-api/internal/presentation/http/routes"
	"github.com/maghsala/maghsala-api/pkg/email"
	"github.com/maghsala/maghsala-api/pkg/oauth"
	"github.com/maghsala/maghsala-api/pkg/printer"
	"github.com/maghsala/maghsala-api/pkg/utils"
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
	laundryRepo := repository.NewLaundryRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	categoryRepo := repository.NewServiceCategoryRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	reportRepo := repository.NewReportRepository(db)
	sessionRepo := repository.NewCashSessionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth
	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize receipt printer
	receiptPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: printer disabled: %v", err)
		receiptPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, planRepo)
	authService := service.NewAuthService(userRepo, roleRepo, laundryRepo, branchRepo, passwordResetRepo, jwtManager, emailService, googleOAuth)
	laundryService := service.NewLaundryService(laundryRepo, auditService)
	branchService := service.NewBranchService(branchRepo, subscriptionService)
	customerService := service.NewCustomerService(customerRepo)
	catalogService := service.NewCatalogService(serviceRepo, categoryRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, serviceRepo, customerRepo, laundryRepo, auditService)
	cashDrawerService := service.NewCashDrawerService(sessionRepo, invoiceRepo, auditService)
	reportService := service.NewReportService(invoiceRepo, reportRepo)
	userService := service.NewUserService(userRepo, roleRepo, subscriptionService)
	printerService := service.NewPrinterService(receiptPrinter, invoiceRepo, laundryRepo, branchRepo, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Laundry:      handler.NewLaundryHandler(laundryService),
		Branch:       handler.NewBranchHandler(branchService),
		Customer:     handler.NewCustomerHandler(customerService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		CashDrawer:   handler.NewCashDrawerHandler(cashDrawerService),
		Audit:        handler.NewAuditHandler(auditService),
		Report:       handler.NewReportHandler(reportService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		User:         handler.NewUserHandler(userService),
		Printer:      handler.NewPrinterHandler(printerService),
	}

	// Setup router
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s (%s)", cfg.App.Name, port, cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
