package projects

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/milavdabgar/npni-flutter/app/config"
	"github.com/milavdabgar/npni-flutter/app/database"
	"github.com/milavdabgar/npni-flutter/app/models"
)

// GetProjectsAPI returns all projects sorted by team ID, each carrying
// its evaluations
func GetProjectsAPI(c *fiber.Ctx) error {
	projects, err := database.ListProjects(c.Context(), config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch projects",
		})
	}

	evaluations, err := database.ListEvaluations(c.Context(), config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch evaluations",
		})
	}
	database.AttachEvaluations(projects, evaluations)

	return c.JSON(fiber.Map{
		"success":  true,
		"projects": projects,
	})
}

// withEvaluations joins one project's evaluations onto it for a read
// response.
func withEvaluations(c *fiber.Ctx, project *models.Project) error {
	evaluations, err := database.GetEvaluationsByProject(c.Context(), config.GetDB(), project.ID)
	if err != nil {
		return err
	}
	project.Evaluations = evaluations
	if project.Evaluations == nil {
		project.Evaluations = []models.Evaluation{}
	}
	return nil
}

// GetMyProjectAPI resolves the logged-in team account to its project via
// the email == teamId invariant.
func GetMyProjectAPI(c *fiber.Ctx) error {
	teamID, _ := c.Locals("user_email").(string)
	project, err := database.GetProjectByTeamID(c.Context(), config.GetDB(), teamID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "No project found for this team",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch project",
		})
	}

	if err := withEvaluations(c, project); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch evaluations",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// GetProjectAPI returns a single project by ID
func GetProjectAPI(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid project ID",
		})
	}

	project, err := database.GetProjectByID(c.Context(), config.GetDB(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "Project not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch project",
		})
	}

	if err := withEvaluations(c, project); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch evaluations",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// CreateProjectAPI creates a single project outside the import flow
func CreateProjectAPI(c *fiber.Ctx) error {
	project := new(models.Project)
	if err := c.BodyParser(project); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if project.TeamID == "" || project.Title == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "teamId and title are required",
		})
	}

	if err := database.CreateProject(c.Context(), config.GetDB(), project); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"error":   "A project with this team ID already exists",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create project",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// UpdateProjectAPI applies a partial update; venue assignment is the
// "location" field here.
func UpdateProjectAPI(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid project ID",
		})
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	// Only known fields pass through; teamId is import-owned and immutable
	fields := bson.M{}
	for _, key := range []string{
		"title", "description", "presentationType", "institution",
		"semester", "branch", "teamMembers", "mentorName",
		"contactNumber", "location",
	} {
		if v, ok := body[key]; ok {
			fields[key] = v
		}
	}
	if len(fields) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "No updatable fields in request",
		})
	}

	project, err := database.UpdateProject(c.Context(), config.GetDB(), id, fields)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "Project not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update project",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// DeleteProjectAPI deletes a single project
func DeleteProjectAPI(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid project ID",
		})
	}

	if err := database.DeleteProject(c.Context(), config.GetDB(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "Project not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete project",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project deleted successfully",
	})
}
