package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prnvgithub28/Foundry/config"
	"github.com/prnvgithub28/Foundry/handlers"
	"github.com/prnvgithub28/Foundry/internal/imagestore"
	"github.com/prnvgithub28/Foundry/internal/mailer"
	"github.com/prnvgithub28/Foundry/internal/matcher"
	"github.com/prnvgithub28/Foundry/middleware"
	"github.com/prnvgithub28/Foundry/models"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		config.SeedItems(db)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Foundry Backend",
		ServerHeader: "Foundry Server/1.0",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(models.ErrorResponse{Error: msg})
		},
	})

	middleware.SetupMiddleware(app)

	// External collaborators, constructed once and injected.
	matchClient := matcher.NewClient(cfg.MatcherURL, 30*time.Second)
	notifier := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)

	var images imagestore.Store
	if cfg.CloudinaryCloudName != "" {
		images, err = imagestore.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatal("Failed to configure Cloudinary:", err)
		}
	} else {
		log.Println("Cloudinary not configured, storing uploads on local disk")
		images = imagestore.NewLocal(cfg.UploadDir, "/uploads")
		app.Static("/uploads", cfg.UploadDir)
	}

	itemHandler := handlers.NewItemHandler(db, matchClient, notifier)
	authHandler := handlers.NewAuthHandler(db)
	uploadHandler := handlers.NewUploadHandler(images)
	categoryHandler := handlers.NewCategoryHandler(db)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"message": "Foundry server is running",
		})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/create-user", authHandler.CreateUser)
	auth.Get("/me", authHandler.Me)
	auth.Get("/user/:uid", authHandler.GetUser)

	items := api.Group("/items")
	items.Post("/lost", itemHandler.CreateLostItem)
	items.Post("/found", itemHandler.CreateFoundItem)
	items.Get("/discover", itemHandler.GetDiscoverItems)
	items.Get("/lost", itemHandler.GetLostItems)
	items.Get("/found", itemHandler.GetFoundItems)
	items.Get("/lost/user/:email", itemHandler.GetUserLostItems)
	items.Get("/found/user/:email", itemHandler.GetUserFoundItems)
	items.Get("/user/:email", itemHandler.GetUserItems)
	items.Delete("/:id", itemHandler.DeleteItem)

	upload := api.Group("/upload")
	upload.Post("/upload", uploadHandler.UploadImage)
	upload.Delete("/delete/+", uploadHandler.DeleteImage)

	api.Get("/categories", categoryHandler.GetCategories)

	middleware.SetupErrorHandler(app)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}

	config.CloseDatabase(db)
	log.Println("Server stopped")
}
