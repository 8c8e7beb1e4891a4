package controller

import (
	"log"

	"taskhive/models"
	"taskhive/utils"
	"taskhive/worker"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommentController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Notifier *worker.Notifier
	Media    *utils.MediaStore
}

func NewCommentController(db *gorm.DB, logger *log.Logger, notifier *worker.Notifier, media *utils.MediaStore) *CommentController {
	return &CommentController{
		DB:       db,
		Logger:   logger,
		Notifier: notifier,
		Media:    media,
	}
}

// CreateComment appends a comment to a task. Attachments are optional
// base64 payloads stored in the media store; @mentions in the content
// are resolved against the team roster and notified.
func (cc *CommentController) CreateComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := c.Params("id")

	var input struct {
		Content     string `json:"content"`
		Attachments []struct {
			FileName string `json:"file_name"`
			FileType string `json:"file_type"`
			Data     string `json:"data"`
		} `json:"attachments"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment content is required",
		})
	}

	var task models.Task
	if err := cc.DB.First(&task, taskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	teamID, err := utils.TeamIDForProject(cc.DB, task.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}
	if _, err := utils.ResolveMembership(cc.DB, user.ID, teamID); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a member of this team",
		})
	}

	// Decode every attachment before the first write so a bad payload
	// cannot leave a half-created comment behind
	type pendingUpload struct {
		fileName    string
		contentType string
		data        []byte
	}
	uploads := make([]pendingUpload, 0, len(input.Attachments))
	for _, upload := range input.Attachments {
		data, contentType, err := utils.DecodeBase64Payload(upload.Data, upload.FileType)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid attachment payload",
			})
		}
		uploads = append(uploads, pendingUpload{
			fileName:    upload.FileName,
			contentType: contentType,
			data:        data,
		})
	}

	if len(uploads) > 0 && cc.Media == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Media store is not configured",
		})
	}

	// Store the objects first; the rows reference them afterwards
	attachments := make([]models.TaskCommentAttachment, 0, len(uploads))
	objectKeys := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		url, objectKey, err := cc.Media.Upload(c.Context(), upload.fileName, upload.contentType, upload.data)
		if err != nil {
			cc.Logger.Printf("Failed to upload attachment: %v", err)
			cc.removeObjects(c, objectKeys)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to upload attachment",
			})
		}
		objectKeys = append(objectKeys, objectKey)
		attachments = append(attachments, models.TaskCommentAttachment{
			FileName:  upload.fileName,
			FileType:  upload.contentType,
			FileSize:  int64(len(upload.data)),
			Category:  utils.CategoryFromMIME(upload.contentType),
			URL:       url,
			ObjectKey: objectKey,
		})
	}

	comment := models.TaskComment{
		TaskID:   task.ID,
		AuthorID: user.ID,
		Content:  input.Content,
	}

	// The comment and its attachment rows land in one transaction
	tx := cc.DB.Begin()
	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		cc.removeObjects(c, objectKeys)
		cc.Logger.Printf("Failed to create comment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create comment",
		})
	}
	for i := range attachments {
		attachments[i].CommentID = comment.ID
		if err := tx.Create(&attachments[i]).Error; err != nil {
			tx.Rollback()
			cc.removeObjects(c, objectKeys)
			cc.Logger.Printf("Failed to record attachment: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record attachment",
			})
		}
	}
	if err := tx.Commit().Error; err != nil {
		cc.removeObjects(c, objectKeys)
		cc.Logger.Printf("Transaction commit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create comment",
		})
	}

	cc.resolveMentions(&comment, teamID, user, task.Title)

	// Tell the assignee about the new comment, unless they wrote it
	if task.AssigneeID != nil && *task.AssigneeID != user.ID {
		var assignee models.User
		if err := cc.DB.First(&assignee, *task.AssigneeID).Error; err == nil && assignee.Email != "" {
			cc.Notifier.Enqueue(worker.Notification{
				Type:      worker.NotificationUpdate,
				To:        assignee.Email,
				ActorName: user.Name,
				TaskID:    task.ID,
				TaskTitle: task.Title,
				Changes:   []string{"comment: " + utils.Truncate(input.Content, 120)},
			})
		}
	}

	var created models.TaskComment
	if err := cc.DB.Preload("Author").Preload("Attachments").Preload("Mentions").
		First(&created, comment.ID).Error; err != nil {
		created = comment
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": created,
	})
}

// removeObjects best-effort cleans up stored objects after a failure
func (cc *CommentController) removeObjects(c *fiber.Ctx, objectKeys []string) {
	for _, objectKey := range objectKeys {
		if err := cc.Media.Delete(c.Context(), objectKey); err != nil {
			cc.Logger.Printf("Failed to clean up object %s: %v", objectKey, err)
		}
	}
}

// resolveMentions matches @handles in the comment against the team
// roster, records mention rows, and queues mention emails.
func (cc *CommentController) resolveMentions(comment *models.TaskComment, teamID uint, author *models.User, taskTitle string) {
	handles := utils.ExtractMentions(comment.Content)
	if len(handles) == 0 {
		return
	}
	wanted := make(map[string]bool, len(handles))
	for _, h := range handles {
		wanted[h] = true
	}

	var members []models.TeamMember
	if err := cc.DB.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		cc.Logger.Printf("Failed to load team roster for mentions: %v", err)
		return
	}

	for _, m := range members {
		var mentioned models.User
		if err := cc.DB.First(&mentioned, m.UserID).Error; err != nil {
			continue
		}
		if !wanted[utils.MentionHandle(mentioned.Name)] {
			continue
		}

		mention := models.TaskCommentMention{
			CommentID: comment.ID,
			UserID:    mentioned.ID,
		}
		if err := cc.DB.Create(&mention).Error; err != nil {
			cc.Logger.Printf("Failed to record mention: %v", err)
			continue
		}

		if mentioned.ID != author.ID && mentioned.Email != "" {
			cc.Notifier.Enqueue(worker.Notification{
				Type:      worker.NotificationMention,
				To:        mentioned.Email,
				ActorName: author.Name,
				TaskID:    comment.TaskID,
				TaskTitle: taskTitle,
				Excerpt:   utils.Truncate(comment.Content, 200),
			})
		}
	}
}

// DeleteComment removes a comment. Only the author or a team owner or
// manager may delete; attachments are removed from the media store
// before the database rows go away.
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	commentID := c.Params("id")

	var comment models.TaskComment
	if err := cc.DB.Preload("Attachments").First(&comment, commentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Comment not found",
		})
	}

	teamID, err := utils.TeamIDForTask(cc.DB, comment.TaskID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Comment not found",
		})
	}

	if comment.AuthorID != user.ID {
		member, err := utils.ResolveMembership(cc.DB, user.ID, teamID)
		if err != nil || (member.Role != models.RoleOwner && member.Role != models.RoleManager) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to delete this comment",
			})
		}
	}

	for _, attachment := range comment.Attachments {
		if cc.Media == nil {
			break
		}
		if err := cc.Media.Delete(c.Context(), attachment.ObjectKey); err != nil {
			cc.Logger.Printf("Failed to delete attachment object %s: %v", attachment.ObjectKey, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to delete attachments",
			})
		}
	}

	tx := cc.DB.Begin()
	if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.TaskCommentAttachment{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}
	if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.TaskCommentMention{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}
	if err := tx.Delete(&comment).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
