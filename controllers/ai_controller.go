package controller

import (
	"log"

	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
)

type AIController struct {
	Client *utils.AIClient
	Logger *log.Logger
}

func NewAIController(client *utils.AIClient, logger *log.Logger) *AIController {
	return &AIController{
		Client: client,
		Logger: logger,
	}
}

// GenerateDescription produces a task description from a title via the
// configured LLM provider.
func (ac *AIController) GenerateDescription(c *fiber.Ctx) error {
	var input struct {
		Title   string `json:"title"`
		Context string `json:"context"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	if !ac.Client.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI provider is not configured",
		})
	}

	description, err := ac.Client.GenerateDescription(c.Context(), input.Title, input.Context)
	if err != nil {
		ac.Logger.Printf("Description generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate description",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"description": description,
	})
}
