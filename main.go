package main

import (
	"log"
	"os"

	"resultdesk/app/config"
	"resultdesk/app/database"
	"resultdesk/app/routes/auth"
	"resultdesk/app/routes/results"
	"resultdesk/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler keeps error responses JSON for every route
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Create schema and run migrations before any verifier can run
	if err := database.CreateTables(config.GetDB()); err != nil {
		log.Fatal("Failed to create schema:", err)
	}
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Seed the default admin on an empty install
	if err := database.EnsureDefaultAdmin(config.GetDB()); err != nil {
		log.Fatal("Failed to ensure default admin:", err)
	}

	// Resolve the mail capability and start background eviction of expired codes
	services.InitMailer(config.AppConfig.SMTP)
	services.StartSweeper(auth.Challenges)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup results routes
	results.SetupResultsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
