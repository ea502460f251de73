package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "reelstudio-backend/internal/api/http"
	"reelstudio-backend/internal/config"
	"reelstudio-backend/internal/logger"
	"reelstudio-backend/internal/repository/postgres"
	"reelstudio-backend/internal/security"
	"reelstudio-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ReelStudio Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "public_base_url", cfg.Server.PublicBaseURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	owner := service.OwnerContact{UserID: cfg.Owner.UserID, Email: cfg.Owner.Email}

	// Initialize Services
	proposalSvc := service.NewProposalService(
		store.ProposalRepository,
		store.ClientRepository,
		store.NotificationRepository,
		store,
		emailSvc,
		owner,
		cfg.Server.PublicBaseURL,
	)
	transactionSvc := service.NewTransactionService(store.TransactionRepository)
	projectSvc := service.NewProjectService(store.ProjectRepository)
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository)
	clientSvc := service.NewClientService(store.ClientRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP router
	router := httpapi.NewRouter(httpapi.Services{
		Proposals:     proposalSvc,
		Transactions:  transactionSvc,
		Projects:      projectSvc,
		Equipment:     equipmentSvc,
		Clients:       clientSvc,
		Notifications: noteSvc,
	}, tokenManager)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
