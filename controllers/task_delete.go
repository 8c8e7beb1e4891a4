package controller

import (
	"taskhive/models"
	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
)

// DeleteTask deletes a task. Allowed for the team owner, a manager, or
// anyone carrying the manage-tasks flag.
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := c.Params("id")

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
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

	member, err := utils.ResolveMembership(tc.DB, user.ID, teamID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a member of this team",
		})
	}
	if !member.CanDeleteTask() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to delete tasks",
		})
	}

	if err := tc.DB.Delete(&task).Error; err != nil {
		tc.Logger.Printf("Failed to delete task: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete task",
		})
	}

	tc.broadcast("task.deleted", &task, teamID)

	return c.JSON(fiber.Map{
		"success": true,
	})
}
