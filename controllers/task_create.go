package controller

import (
	"errors"
	"time"

	"taskhive/models"
	"taskhive/utils"
	"taskhive/worker"

	"github.com/gofiber/fiber/v2"
)

// CreateTask creates a task inside a project. The caller must be able
// to manage tasks in the owning team, and a provided assignee must be
// a member of that team.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		ProjectID      uint       `json:"project_id" validate:"required"`
		Title          string     `json:"title" validate:"required,max=300"`
		Description    string     `json:"description"`
		Status         string     `json:"status"`
		Priority       string     `json:"priority"`
		AssigneeID     *uint      `json:"assignee_id"`
		DueDate        *time.Time `json:"due_date"`
		StartDate      *time.Time `json:"start_date"`
		EstimatedHours *float64   `json:"estimated_hours"`
		Tags           []string   `json:"tags"`
		Notes          string     `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	teamID, err := utils.TeamIDForProject(tc.DB, input.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	if _, err := utils.RequirePermission(tc.DB, user.ID, teamID, models.PermManageTasks); err != nil {
		if errors.Is(err, utils.ErrNotAMember) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to manage tasks in this team",
			})
		}
		tc.Logger.Printf("Failed to resolve membership: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve membership",
		})
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskStatus(status) || !models.ValidTaskPriority(priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status or priority",
		})
	}

	if input.AssigneeID != nil && !tc.assigneeIsMember(teamID, *input.AssigneeID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Assignee is not a member of this team",
		})
	}

	task := models.Task{
		ProjectID:      input.ProjectID,
		CreatorID:      user.ID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		AssigneeID:     input.AssigneeID,
		DueDate:        input.DueDate,
		StartDate:      input.StartDate,
		EstimatedHours: input.EstimatedHours,
		Tags:           input.Tags,
		Notes:          input.Notes,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		tc.Logger.Printf("Failed to create task: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create task",
		})
	}

	// Tell the assignee, unless they created the task themselves
	if task.AssigneeID != nil && *task.AssigneeID != user.ID {
		var assignee models.User
		if err := tc.DB.First(&assignee, *task.AssigneeID).Error; err == nil && assignee.Email != "" {
			tc.Notifier.Enqueue(worker.Notification{
				Type:      worker.NotificationAssignment,
				To:        assignee.Email,
				ActorName: user.Name,
				TaskID:    task.ID,
				TaskTitle: task.Title,
			})
		}
	}

	tc.broadcast("task.created", &task, teamID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}
