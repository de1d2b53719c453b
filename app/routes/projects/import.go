package projects

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/milavdabgar/npni-flutter/app/importer"
)

// ImportProjectsAPI accepts a roster CSV in the "file" form field and
// replaces the full project/team-account generation through the
// provisioning engine. Input problems come back as 400 with a message the
// administrator can act on; store failures as 500.
func ImportProjectsAPI(c *fiber.Ctx, engine *importer.Engine) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   importer.ErrNoFile.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Could not read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Could not read uploaded file",
		})
	}

	result, err := engine.ImportCSV(c.Context(), data)
	if err != nil {
		if importer.IsInputError(err) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  fmt.Sprintf("Successfully imported %d projects", result.Imported),
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"batch_id": result.BatchID,
	})
}
