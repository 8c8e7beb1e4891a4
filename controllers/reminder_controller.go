package controller

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"taskhive/config"
	"taskhive/models"
	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReminderController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewReminderController(db *gorm.DB, logger *log.Logger) *ReminderController {
	return &ReminderController{
		DB:     db,
		Logger: logger,
	}
}

// RunDeadlineReminders sweeps for tasks due within the next 24 hours
// and emails each assignee. The sweep keeps no "already reminded"
// marker, so triggering it twice in the same window double-sends.
//
// The status exclusion literal is configurable and defaults to the
// historical "COMPLETED", which never matches the todo/in-progress/done
// vocabulary. See REMINDER_EXCLUDED_STATUS.
func (rc *ReminderController) RunDeadlineReminders(c *fiber.Ctx) error {
	now := time.Now()
	cutoff := now.Add(24 * time.Hour)

	var tasks []models.Task
	err := rc.DB.Preload("Assignee").
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", now, cutoff).
		Where("status <> ?", config.AppConfig.ReminderExcludedStatus).
		Find(&tasks).Error
	if err != nil {
		rc.Logger.Printf("Failed to query due tasks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to query due tasks",
		})
	}

	// One email per assigned task, sent concurrently; partial failure
	// is tolerated and only successes are counted
	var sent int64
	var wg sync.WaitGroup
	for _, task := range tasks {
		if task.AssigneeID == nil || task.Assignee == nil || task.Assignee.Email == "" {
			continue
		}
		wg.Add(1)
		go func(task models.Task) {
			defer wg.Done()
			if err := utils.SendDeadlineReminderEmail(task.Assignee.Email, task.Title, task.ID, *task.DueDate); err != nil {
				rc.Logger.Printf("Failed to send reminder for task %d: %v", task.ID, err)
				return
			}
			atomic.AddInt64(&sent, 1)
		}(task)
	}
	wg.Wait()

	return c.JSON(fiber.Map{
		"success":       true,
		"remindersSent": sent,
	})
}
