package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/nayotama/itumy-api/internal/config"
	"github.com/nayotama/itumy-api/internal/database"
	"github.com/nayotama/itumy-api/internal/handlers"
	"github.com/nayotama/itumy-api/internal/middleware"
	"github.com/nayotama/itumy-api/internal/services"
	"github.com/nayotama/itumy-api/internal/sweeper"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	apiKeyService := services.NewAPIKeyService(db, cfg.KeyMaxIdleDays)
	adminService := services.NewAdminService(db)
	sessionService := services.NewSessionService(db, cfg.SessionSecret, cfg.SessionTTL)
	dashboardService := services.NewDashboardService(db, cfg.KeyMaxIdleDays)

	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)
	adminHandler := handlers.NewAdminHandler(adminService, sessionService, dashboardService)
	pagesHandler := handlers.NewPagesHandler(sessionService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(driftmw.Recovery())
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Logger())

	app.Get("/", pagesHandler.Home)
	app.Post("/create", apiKeyHandler.Create)
	app.Post("/checkapi", apiKeyHandler.Check)

	admin := app.Group("/admin")
	admin.Get("/register", pagesHandler.RegisterPage)
	admin.Get("/login", pagesHandler.LoginPage)
	admin.Post("/register", adminHandler.Register)
	admin.Post("/login", adminHandler.Login)

	protected := admin.Group("")
	protected.Use(middleware.RequireAuth(sessionService))
	protected.Post("/logout", adminHandler.Logout)
	protected.Get("/dashboard", pagesHandler.DashboardPage)
	protected.Get("/users-apikeys", adminHandler.ListUsersWithKeys)
	protected.Delete("/apikeys/:id", adminHandler.DeleteKey)

	sw := sweeper.New(apiKeyService, sessionService, cfg.SweepInterval)
	sw.Start()
	defer sw.Stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logrus.Infof("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
}
