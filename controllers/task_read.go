package controller

import (
	"taskhive/models"
	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
)

// GetTask returns a task with its relations
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := c.Params("id")

	var task models.Task
	err := tc.DB.Preload("Creator").Preload("Assignee").
		Preload("Comments").Preload("Comments.Attachments").Preload("Comments.Mentions").
		First(&task, taskID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	teamID, err := utils.TeamIDForProject(tc.DB, task.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}
	if _, err := utils.ResolveMembership(tc.DB, user.ID, teamID); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a member of this team",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}
