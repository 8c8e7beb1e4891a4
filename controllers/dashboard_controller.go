package controller

import (
	"log"
	"strconv"
	"time"

	"taskhive/models"
	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type TaskCounts struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
	Overdue    int64 `json:"overdue"`
}

type PriorityCounts struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
	Urgent int64 `json:"urgent"`
}

// GetDashboard returns the caller's cross-team summary: their teams,
// project count, and assigned-task counts by status and priority.
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var memberships []models.TeamMember
	if err := dc.DB.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
		dc.Logger.Printf("Failed to load memberships: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	teamIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		teamIDs = append(teamIDs, m.TeamID)
	}

	var projectCount int64
	if len(teamIDs) > 0 {
		dc.DB.Model(&models.Project{}).Where("team_id IN ?", teamIDs).Count(&projectCount)
	}

	assigned := dc.DB.Model(&models.Task{}).Where("assignee_id = ?", user.ID)

	var tasks TaskCounts
	assigned.Session(&gorm.Session{}).Count(&tasks.Total)
	assigned.Session(&gorm.Session{}).Where("status = ?", models.TaskStatusTodo).Count(&tasks.Todo)
	assigned.Session(&gorm.Session{}).Where("status = ?", models.TaskStatusInProgress).Count(&tasks.InProgress)
	assigned.Session(&gorm.Session{}).Where("status = ?", models.TaskStatusDone).Count(&tasks.Done)
	assigned.Session(&gorm.Session{}).Where("due_date < ? AND status <> ?", time.Now(), models.TaskStatusDone).
		Count(&tasks.Overdue)

	var priorities PriorityCounts
	assigned.Session(&gorm.Session{}).Where("priority = ?", models.TaskPriorityLow).Count(&priorities.Low)
	assigned.Session(&gorm.Session{}).Where("priority = ?", models.TaskPriorityMedium).Count(&priorities.Medium)
	assigned.Session(&gorm.Session{}).Where("priority = ?", models.TaskPriorityHigh).Count(&priorities.High)
	assigned.Session(&gorm.Session{}).Where("priority = ?", models.TaskPriorityUrgent).Count(&priorities.Urgent)

	return c.JSON(fiber.Map{
		"success":    true,
		"teams":      len(teamIDs),
		"projects":   projectCount,
		"tasks":      tasks,
		"priorities": priorities,
	})
}

// GetAnalytics returns per-project completion stats for one of the
// caller's teams over a time window (default 30 days).
func (dc *DashboardController) GetAnalytics(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	teamID, err := strconv.ParseUint(c.Query("team_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "team_id query parameter is required",
		})
	}
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	member, err := utils.ResolveMembership(dc.DB, user.ID, uint(teamID))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a member of this team",
		})
	}
	// Team-wide stats expose everyone's work; managers see them by
	// role, everyone else needs the view-all flag
	if member.Role != models.RoleManager && !member.Allows(models.PermViewAll) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to view team analytics",
		})
	}

	var projects []models.Project
	if err := dc.DB.Where("team_id = ?", teamID).Find(&projects).Error; err != nil {
		dc.Logger.Printf("Failed to load projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analytics",
		})
	}

	summaries := make([]fiber.Map, 0, len(projects))
	for _, project := range projects {
		var created, completed int64
		dc.DB.Model(&models.Task{}).
			Where("project_id = ? AND created_at >= ?", project.ID, since).
			Count(&created)
		dc.DB.Model(&models.Task{}).
			Where("project_id = ? AND status = ? AND updated_at >= ?", project.ID, models.TaskStatusDone, since).
			Count(&completed)

		summaries = append(summaries, fiber.Map{
			"project_id":   project.ID,
			"project_name": project.Name,
			"created":      created,
			"completed":    completed,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"team_id":  teamID,
		"days":     days,
		"projects": summaries,
	})
}
