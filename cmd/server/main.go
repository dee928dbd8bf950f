package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/AsanSh/zakup.one/internal/config"
	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/handlers"
	"github.com/AsanSh/zakup.one/internal/middleware"
	"github.com/AsanSh/zakup.one/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create admin user if it doesn't exist
	if err := database.EnsureAdminUser(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure admin user: %v", err)
	}

	// Initialize storage for uploaded price lists
	storage, err := services.NewStorageService(
		cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	if err := storage.EnsureBucket(context.Background()); err != nil {
		log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    52 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, storage)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// Catalog routes (public read)
	api.Get("/categories", h.ListCategories)
	api.Get("/products", h.ListProducts)
	api.Get("/products/:id", h.GetProduct)

	// Supplier routes (authenticated read, admin write)
	suppliers := api.Group("/suppliers", middleware.AuthRequired(cfg))
	suppliers.Get("/", h.ListSuppliers)
	suppliers.Get("/:id", h.GetSupplier)
	suppliers.Post("/", middleware.AdminRequired(), h.CreateSupplier)
	suppliers.Put("/:id", middleware.AdminRequired(), h.UpdateSupplier)
	suppliers.Delete("/:id", middleware.AdminRequired(), h.DeleteSupplier)

	// Price list routes (authenticated read, admin write)
	priceLists := api.Group("/price-lists", middleware.AuthRequired(cfg))
	priceLists.Post("/upload", middleware.AdminRequired(), h.UploadPriceList)
	priceLists.Get("/", h.ListPriceLists)
	priceLists.Get("/:id", h.GetPriceList)
	priceLists.Get("/:id/download", h.GetPriceListDownloadURL)
	priceLists.Post("/:id/process", middleware.AdminRequired(), h.ProcessPriceList)
	priceLists.Delete("/:id", middleware.AdminRequired(), h.DeletePriceList)

	// Admin routes (admin only)
	admin := api.Group("/admin", middleware.AuthRequired(cfg), middleware.AdminRequired())
	admin.Get("/stats", h.AdminGetStats)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
