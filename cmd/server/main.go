package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "fleetyard-backend/internal/api/http"
	"fleetyard-backend/internal/config"
	"fleetyard-backend/internal/logger"
	"fleetyard-backend/internal/repository/postgres"
	"fleetyard-backend/internal/security"
	"fleetyard-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fleetyard Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
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

	// Initialize Services
	gate := service.NewAccessGate()
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	lifecycleSvc := service.NewVehicleLifecycle(gate, store.VehicleRepository, store.RentalRepository, store.TxManager)
	rentalSvc := service.NewRentalCoordinator(gate, lifecycleSvc, store.RentalRepository)
	ledgerSvc := service.NewStockLedger(gate, store.ChemicalRepository, store.ChemicalOrderRepository, store.TxManager)
	fuelSvc := service.NewFuelService(gate, store.FuelLogRepository, store.VehicleRepository)

	// Initialize HTTP handlers
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, authSvc)
	handlers := httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc),
		Vehicle:  httpapi.NewVehicleHandler(lifecycleSvc),
		Rental:   httpapi.NewRentalHandler(rentalSvc),
		Chemical: httpapi.NewChemicalHandler(ledgerSvc),
		Fuel:     httpapi.NewFuelHandler(fuelSvc),
		User:     httpapi.NewUserHandler(userSvc),
	}
	router := httpapi.NewRouter(handlers, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
