package controller

import (
	"fmt"
	"testing"

	"taskhive/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateCommentInvalidAttachmentLeavesNoRows(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)

	cc := NewCommentController(db, testLogger(), testNotifier(), nil)
	app := fiber.New()
	app.Post("/tasks/:id/comments", asUser(fixture.owner, cc.CreateComment))

	resp := jsonRequest(t, app, fiber.MethodPost,
		fmt.Sprintf("/tasks/%d/comments", fixture.task.ID),
		fiber.Map{
			"content": "see the attached file",
			"attachments": []fiber.Map{
				{"file_name": "report.pdf", "file_type": "application/pdf", "data": "not base64!!"},
			},
		})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// A rejected request must not leave a partially created comment
	var comments, attachments int64
	db.Model(&models.TaskComment{}).Count(&comments)
	db.Model(&models.TaskCommentAttachment{}).Count(&attachments)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), attachments)
}

func TestCreateCommentWithoutAttachments(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)

	cc := NewCommentController(db, testLogger(), testNotifier(), nil)
	app := fiber.New()
	app.Post("/tasks/:id/comments", asUser(fixture.owner, cc.CreateComment))

	resp := jsonRequest(t, app, fiber.MethodPost,
		fmt.Sprintf("/tasks/%d/comments", fixture.task.ID),
		fiber.Map{"content": "looks good to me"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var comment models.TaskComment
	assert.NoError(t, db.Where("task_id = ?", fixture.task.ID).First(&comment).Error)
	assert.Equal(t, "looks good to me", comment.Content)
	assert.Equal(t, fixture.owner.ID, comment.AuthorID)
}
