package controller

import (
	"testing"
	"time"

	"taskhive/config"
	"taskhive/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineRemindersNoDueTasks(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)
	config.AppConfig.ReminderExcludedStatus = "COMPLETED"

	// One task without a due date (the fixture's) and one due far
	// outside the 24h window
	farOut := time.Now().Add(14 * 24 * time.Hour)
	require.NoError(t, db.Create(&models.Task{
		ProjectID: fixture.project.ID,
		CreatorID: fixture.owner.ID,
		Title:     "Plan next quarter",
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityLow,
		DueDate:   &farOut,
	}).Error)

	rc := NewReminderController(db, testLogger())
	app := fiber.New()
	app.Post("/tasks/deadline-reminders", rc.RunDeadlineReminders)

	resp := jsonRequest(t, app, fiber.MethodPost, "/tasks/deadline-reminders", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["remindersSent"])
}
