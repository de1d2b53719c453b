package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/milavdabgar/npni-flutter/app/config"
	"github.com/milavdabgar/npni-flutter/app/database"
	"github.com/milavdabgar/npni-flutter/app/importer"
	"github.com/milavdabgar/npni-flutter/app/routes/auth"
	"github.com/milavdabgar/npni-flutter/app/routes/evaluations"
	"github.com/milavdabgar/npni-flutter/app/routes/projects"
)

// customErrorHandler turns stray errors into the same JSON envelope the
// handlers use.
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
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	config.InitDB()
	defer config.GetClient().Disconnect(context.Background())

	if err := database.EnsureIndexes(context.Background(), config.GetDB()); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// One provisioning engine for the lifetime of the process; it
	// serializes concurrent imports
	stores := database.NewImportStores(config.GetClient(), config.GetDB())
	engine := importer.NewEngine(
		importer.DefaultSchema(config.TeamIDPrefix()),
		stores.Projects(),
		stores.Accounts(),
		stores,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NPNI Fair API",
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getEnv("CORS_ORIGIN", "http://localhost:5173"),
		AllowCredentials: true,
	}))

	// Basic route for testing
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "NPNI Fair API is running"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup projects routes (CRUD + CSV import)
	projects.SetupProjectsRoutes(app, engine)

	// Setup evaluations routes
	evaluations.SetupEvaluationsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	// Start server
	port := getEnv("PORT", "8080")
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
