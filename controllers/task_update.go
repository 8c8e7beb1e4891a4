package controller

import (
	"taskhive/models"
	"taskhive/utils"
	"taskhive/worker"

	"github.com/gofiber/fiber/v2"
)

// UpdateTask is the PUT handler. Despite the verb it applies PATCH
// semantics like the rest of the system; it only additionally rejects
// an explicitly empty title.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	return tc.updateTask(c, true)
}

// UpdateTaskStatus is the PATCH handler for partial updates
func (tc *TaskController) UpdateTaskStatus(c *fiber.Ctx) error {
	return tc.updateTask(c, false)
}

func (tc *TaskController) updateTask(c *fiber.Ctx, rejectEmptyTitle bool) error {
	user := c.Locals("user").(*models.User)
	taskID := c.Params("id")

	var patch utils.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if rejectEmptyTitle && patch.Title != nil && *patch.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title cannot be empty",
		})
	}
	if patch.Status != nil && *patch.Status != "" && !models.ValidTaskStatus(*patch.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}
	if patch.Priority != nil && *patch.Priority != "" && !models.ValidTaskPriority(*patch.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid priority",
		})
	}

	// Load current state for diffing
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
	if _, err := utils.ResolveMembership(tc.DB, user.ID, teamID); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a member of this team",
		})
	}

	// A reassignment is rejected before any write when the new
	// assignee doesn't belong to the team
	if patch.AssigneeID != nil && !tc.assigneeIsMember(teamID, *patch.AssigneeID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Assignee is not a member of this team",
		})
	}

	changes, assigneeChanged := utils.ApplyTaskPatch(&task, patch)

	if len(changes) > 0 {
		if err := tc.DB.Save(&task).Error; err != nil {
			tc.Logger.Printf("Failed to update task: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update task",
			})
		}
	}

	// Exactly one notification per update: an assignment notice wins
	// over the generic field-change notice
	if len(changes) > 0 && task.AssigneeID != nil && *task.AssigneeID != user.ID {
		var assignee models.User
		if err := tc.DB.First(&assignee, *task.AssigneeID).Error; err == nil && assignee.Email != "" {
			notifType := worker.NotificationUpdate
			if assigneeChanged {
				notifType = worker.NotificationAssignment
			}
			tc.Notifier.Enqueue(worker.Notification{
				Type:      notifType,
				To:        assignee.Email,
				ActorName: user.Name,
				TaskID:    task.ID,
				TaskTitle: task.Title,
				Changes:   changes,
			})
		}
	}

	tc.broadcast("task.updated", &task, teamID)

	// Re-fetch relations for the response
	var updated models.Task
	if err := tc.DB.Preload("Creator").Preload("Assignee").First(&updated, task.ID).Error; err != nil {
		updated = task
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    updated,
		"changes": changes,
	})
}
