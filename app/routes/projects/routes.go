package projects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/milavdabgar/npni-flutter/app/importer"
	"github.com/milavdabgar/npni-flutter/app/models"
	"github.com/milavdabgar/npni-flutter/app/routes/auth"
)

// SetupProjectsRoutes sets up project routes. The import endpoint shares
// one provisioning engine so concurrent uploads are serialized.
func SetupProjectsRoutes(app *fiber.App, engine *importer.Engine) {
	api := app.Group("/api/projects")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetProjectsAPI)
	api.Get("/mine", auth.RoleMiddleware(models.RoleTeam), GetMyProjectAPI)
	api.Get("/:id", GetProjectAPI)

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreateProjectAPI)
	api.Post("/import", admin, func(c *fiber.Ctx) error { return ImportProjectsAPI(c, engine) })
	api.Patch("/:id", admin, UpdateProjectAPI)
	api.Delete("/:id", admin, DeleteProjectAPI)
}
