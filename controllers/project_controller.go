package controller

import (
	"errors"
	"log"

	"taskhive/models"
	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Media  *utils.MediaStore
}

func NewProjectController(db *gorm.DB, logger *log.Logger, media *utils.MediaStore) *ProjectController {
	return &ProjectController{
		DB:     db,
		Logger: logger,
		Media:  media,
	}
}

// CreateProject creates a project inside a team
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		TeamID      uint   `json:"team_id" validate:"required"`
		Name        string `json:"name" validate:"required,max=200"`
		Description string `json:"description"`
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

	if _, err := utils.RequirePermission(pc.DB, user.ID, input.TeamID, models.PermManageProjects); err != nil {
		if errors.Is(err, utils.ErrNotAMember) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to manage projects in this team",
			})
		}
		pc.Logger.Printf("Failed to resolve membership: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve membership",
		})
	}

	project := models.Project{
		TeamID:      input.TeamID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := pc.DB.Create(&project).Error; err != nil {
		pc.Logger.Printf("Failed to create project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// GetProject returns a project with its files and task counts
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	projectID := c.Params("id")

	var project models.Project
	if err := pc.DB.Preload("Files").First(&project, projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	if _, err := utils.ResolveMembership(pc.DB, user.ID, project.TeamID); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not a member of this team",
		})
	}

	var taskCounts struct {
		Total int64 `json:"total"`
		Done  int64 `json:"done"`
	}
	pc.DB.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCounts.Total)
	pc.DB.Model(&models.Task{}).Where("project_id = ? AND status = ?", project.ID, models.TaskStatusDone).
		Count(&taskCounts.Done)

	return c.JSON(fiber.Map{
		"success": true,
		"project": project,
		"tasks":   taskCounts,
	})
}

// UploadProjectFile decodes a base64 upload, stores it in the media
// store, and records the file metadata on the project.
func (pc *ProjectController) UploadProjectFile(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	projectID := c.Params("id")

	var input struct {
		FileName string `json:"file_name"`
		FileType string `json:"file_type"`
		Data     string `json:"data"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.FileName == "" || input.Data == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file_name and data are required",
		})
	}

	var project models.Project
	if err := pc.DB.First(&project, projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	if _, err := utils.RequirePermission(pc.DB, user.ID, project.TeamID, models.PermManageProjects); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to manage projects in this team",
		})
	}

	if pc.Media == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Media store is not configured",
		})
	}

	data, contentType, err := utils.DecodeBase64Payload(input.Data, input.FileType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file payload",
		})
	}

	url, objectKey, err := pc.Media.Upload(c.Context(), input.FileName, contentType, data)
	if err != nil {
		pc.Logger.Printf("Failed to upload project file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	file := models.ProjectFile{
		ProjectID:  project.ID,
		UploaderID: user.ID,
		FileName:   input.FileName,
		FileType:   contentType,
		FileSize:   int64(len(data)),
		Category:   utils.CategoryFromMIME(contentType),
		URL:        url,
		ObjectKey:  objectKey,
	}
	if err := pc.DB.Create(&file).Error; err != nil {
		pc.Logger.Printf("Failed to record project file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"file":    file,
	})
}
