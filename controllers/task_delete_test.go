package controller

import (
	"fmt"
	"testing"

	"taskhive/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestDeleteTaskWithoutPermissionKeepsRow(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)
	viewer := createUser(t, db, "ext-viewer", "viewer@example.com", "Vera Viewer")
	addMember(t, db, fixture.team.ID, viewer.ID, models.RoleViewer)

	tc := NewTaskController(db, testLogger(), testNotifier(), nil)
	app := fiber.New()
	app.Delete("/tasks/:id", asUser(viewer, tc.DeleteTask))

	resp := jsonRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/tasks/%d", fixture.task.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var task models.Task
	assert.NoError(t, db.First(&task, fixture.task.ID).Error)
}

func TestDeleteTaskByOwner(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)

	tc := NewTaskController(db, testLogger(), testNotifier(), nil)
	app := fiber.New()
	app.Delete("/tasks/:id", asUser(fixture.owner, tc.DeleteTask))

	resp := jsonRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/tasks/%d", fixture.task.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Task{}).Where("id = ?", fixture.task.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
