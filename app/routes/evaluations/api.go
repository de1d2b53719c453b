package evaluations

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/milavdabgar/npni-flutter/app/config"
	"github.com/milavdabgar/npni-flutter/app/database"
	"github.com/milavdabgar/npni-flutter/app/models"
)

var validate = validator.New()

// SubmitRequest is a jury member's score submission for one project round.
type SubmitRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	Marks     int    `json:"marks" validate:"min=0,max=100"`
	Comment   string `json:"comment" validate:"required"`
	Round     int    `json:"round" validate:"min=1,max=2"`
}

// GetProjectEvaluationsAPI lists a project's evaluations, newest first
func GetProjectEvaluationsAPI(c *fiber.Ctx) error {
	projectID, err := primitive.ObjectIDFromHex(c.Params("projectId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid project ID",
		})
	}

	evaluations, err := database.GetEvaluationsByProject(c.Context(), config.GetDB(), projectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch evaluations",
		})
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"evaluations": evaluations,
	})
}

// SubmitEvaluationAPI records one jury member's marks for a project round.
// The unique (project, jury, round) index turns a duplicate submission
// into a store-level rejection, so two tabs cannot both get through.
func SubmitEvaluationAPI(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Marks must be 0-100, round 1-2 and a comment is required",
		})
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid project ID",
		})
	}
	juryID, err := primitive.ObjectIDFromHex(c.Locals("user_id").(string))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Not authenticated",
		})
	}

	// The project must exist; the index cannot check references
	if _, err := database.GetProjectByID(c.Context(), config.GetDB(), projectID); err != nil {
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

	evaluation := &models.Evaluation{
		ProjectID: projectID,
		JuryID:    juryID,
		JuryName:  c.Locals("user_name").(string),
		Marks:     req.Marks,
		Comment:   req.Comment,
		Round:     req.Round,
		IsLocked:  false,
	}
	if err := database.CreateEvaluation(c.Context(), config.GetDB(), evaluation); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Already evaluated this project in this round",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to submit evaluation",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"evaluation": evaluation,
	})
}

// LockEvaluationAPI finalizes an evaluation; only its author may lock it
func LockEvaluationAPI(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid evaluation ID",
		})
	}

	evaluation, err := database.GetEvaluationByID(c.Context(), config.GetDB(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"error":   "Evaluation not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch evaluation",
		})
	}

	if evaluation.JuryID.Hex() != c.Locals("user_id").(string) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Not authorized",
		})
	}

	evaluation, err = database.LockEvaluation(c.Context(), config.GetDB(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to lock evaluation",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"evaluation": evaluation,
	})
}
