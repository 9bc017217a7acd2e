package main

import (
	"fmt"
	"log/slog"
	"os"

	"orderflow/cmd"
	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// A missing .env is fine in containerized environments where the
	// variables arrive from the orchestrator.
	_ = godotenv.Load(".env")

	config, err := cmd.ParseConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}, &historyrepo.HistoryEntryDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	root := cmd.NewCompositionRoot(config, db, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()
	defer root.Dispatcher().Wait()

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateRequestTransitionCommandHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
		root.CreateGetOrderHistoryQueryHandler(),
		root.TransitionValidator(),
		root.IdentityProvider(),
		root.RateLimiter(),
	)

	e := echo.New()
	server.RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}
