package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"musiclancer/internal/database"
	"musiclancer/internal/handlers"
	"musiclancer/internal/routes"
	"musiclancer/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("❌ Failed to migrate database:", err)
	}
	if err := database.SeedPlans(); err != nil {
		log.Fatal("❌ Failed to seed subscription plans:", err)
	}
	log.Println("✅ Database connected and migrated successfully")

	db := database.DB

	// Services
	storage, err := services.NewStorageService()
	if err != nil {
		log.Fatal("❌ Failed to initialize Cloudinary service:", err)
	}
	log.Println("✅ Cloudinary service initialized successfully")

	email := services.NewEmailService()
	upi := services.NewUPIService()
	quotas := services.NewQuotaService(db)
	notifier := services.NewNotificationService(db, email)
	projects := services.NewProjectService(db, quotas, upi, notifier)
	bids := services.NewBidService(db, quotas)
	payments := services.NewPaymentService(db, upi, notifier)
	work := services.NewWorkService(db, payments, notifier)
	subscriptions := services.NewSubscriptionService(db, upi)
	chat := services.NewChatService(db, payments)

	// Background janitor for abandoned pending purchases
	cleanup := services.NewCleanupService(db)
	go cleanup.Run(24*time.Hour, make(chan struct{}))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "MusicLancer API v1.0",
		BodyLimit: 25 * 1024 * 1024,
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to MusicLancer API",
			"status":  "running",
			"version": "1.0",
		})
	})

	// Setup application routes
	routes.Setup(app, routes.Handlers{
		Users:         handlers.NewUserHandler(db),
		Projects:      handlers.NewProjectHandler(projects),
		Bids:          handlers.NewBidHandler(bids),
		Payments:      handlers.NewPaymentHandler(payments),
		Work:          handlers.NewWorkHandler(work, storage),
		Subscriptions: handlers.NewSubscriptionHandler(subscriptions, quotas),
		Chat:          handlers.NewChatHandler(chat),
		Notifications: handlers.NewNotificationHandler(notifier),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 MusicLancer server starting on http://localhost:%s", port)
	log.Fatal(app.Listen(":" + port))
}
