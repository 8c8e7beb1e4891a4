package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"taskhive/config"
	controller "taskhive/controllers"
	"taskhive/middleware"
	"taskhive/routes"
	"taskhive/utils"
	"taskhive/worker"

	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Sentry when a DSN is configured
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("⚠️ Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Initialize media storage; uploads are disabled when it is not configured
	media, err := utils.NewMediaStore(config.AppConfig.Media)
	if err != nil {
		logger.Printf("⚠️ Media storage unavailable, file uploads disabled: %v", err)
		media = nil
	}

	// Initialize and start the notification worker
	notifier := worker.NewNotifier(256, nil, logrus.New())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Start(ctx)

	// Hub for the websocket event feed
	events := controller.NewEventHub()

	// Setup routes
	routes.SetupRoutes(app, config.DB, notifier, media, events)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
