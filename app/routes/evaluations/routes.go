package evaluations

import (
	"github.com/gofiber/fiber/v2"

	"github.com/milavdabgar/npni-flutter/app/models"
	"github.com/milavdabgar/npni-flutter/app/routes/auth"
)

// SetupEvaluationsRoutes sets up evaluation routes; all of them are jury-only.
func SetupEvaluationsRoutes(app *fiber.App) {
	api := app.Group("/api/evaluations")
	api.Use(auth.AuthMiddleware, auth.RoleMiddleware(models.RoleJury))

	api.Get("/project/:projectId", GetProjectEvaluationsAPI)
	api.Post("/", SubmitEvaluationAPI)
	api.Put("/:id/lock", LockEvaluationAPI)
}
