package controller

import (
	"log"
	"time"

	"taskhive/models"
	"taskhive/worker"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeamController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Notifier *worker.Notifier
}

func NewTeamController(db *gorm.DB, logger *log.Logger, notifier *worker.Notifier) *TeamController {
	return &TeamController{
		DB:       db,
		Logger:   logger,
		Notifier: notifier,
	}
}

// CreateTeam creates a team and makes the caller its first member with
// role owner and all capability flags set.
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Team name is required",
		})
	}

	tx := tc.DB.Begin()

	team := models.Team{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := tx.Create(&team).Error; err != nil {
		tx.Rollback()
		tc.Logger.Printf("Failed to create team: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create team",
		})
	}

	member := models.NewOwnerMembership(team.ID, user.ID)
	if err := tx.Create(&member).Error; err != nil {
		tx.Rollback()
		tc.Logger.Printf("Failed to create owner membership: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create team",
		})
	}

	if err := tx.Commit().Error; err != nil {
		tc.Logger.Printf("Transaction commit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create team",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"team":    team,
		"member":  member,
	})
}

// GetTeam returns a team with its members and their user info
func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var team models.Team
	if err := tc.DB.Preload("Members").First(&team, teamID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Team not found",
		})
	}

	members := make([]fiber.Map, 0, len(team.Members))
	for _, m := range team.Members {
		var user models.User
		if err := tc.DB.First(&user, m.UserID).Error; err != nil {
			tc.Logger.Printf("Member %d references missing user %d", m.ID, m.UserID)
			continue
		}
		members = append(members, fiber.Map{
			"id":                  m.ID,
			"user_id":             m.UserID,
			"name":                user.Name,
			"email":               user.Email,
			"role":                m.Role,
			"custom_role_title":   m.CustomRoleTitle,
			"can_manage_team":     m.CanManageTeam,
			"can_manage_projects": m.CanManageProjects,
			"can_manage_tasks":    m.CanManageTasks,
			"can_view_all":        m.CanViewAll,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team": fiber.Map{
			"id":          team.ID,
			"name":        team.Name,
			"description": team.Description,
			"members":     members,
		},
	})
}

// AcceptInvitation joins a user to a team. An invitation code is
// honored when provided, but a plain team ID join is also accepted.
func (tc *TeamController) AcceptInvitation(c *fiber.Ctx) error {
	var input struct {
		TeamID uint   `json:"team_id"`
		UserID uint   `json:"user_id"`
		Code   string `json:"code"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.TeamID == 0 || input.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "team_id and user_id are required",
		})
	}

	var team models.Team
	if err := tc.DB.First(&team, input.TeamID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Team not found",
		})
	}

	var existing models.TeamMember
	err := tc.DB.Where("team_id = ? AND user_id = ?", input.TeamID, input.UserID).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Already a member",
		})
	}

	role := models.RoleMember
	if input.Code != "" {
		var invitation models.Invitation
		if err := tc.DB.Where("code = ?", input.Code).First(&invitation).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invitation not found",
			})
		}
		if invitation.TeamID != input.TeamID || !invitation.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invitation is no longer valid",
			})
		}
		role = invitation.Role
		tc.DB.Model(&invitation).Update("used", true)
	}

	member := models.TeamMember{
		TeamID: input.TeamID,
		UserID: input.UserID,
		Role:   role,
	}
	if err := tc.DB.Create(&member).Error; err != nil {
		tc.Logger.Printf("Failed to create membership: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join team",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"member":  member,
	})
}

// InviteMember records an invitation and sends the invitation email
// through the notifier (best effort).
func (tc *TeamController) InviteMember(c *fiber.Ctx) error {
	var input struct {
		TeamID    uint        `json:"team_id"`
		Email     string      `json:"email"`
		Role      models.Role `json:"role"`
		InviterID uint        `json:"inviter_id"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.TeamID == 0 || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "team_id and email are required",
		})
	}
	if err := checkmail.ValidateFormat(input.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	var team models.Team
	if err := tc.DB.First(&team, input.TeamID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Team not found",
		})
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) || role == models.RoleOwner {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	code, err := models.GenerateInvitationCode()
	if err != nil {
		tc.Logger.Printf("Failed to generate invitation code: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create invitation",
		})
	}

	inviterName := "A teammate"
	if input.InviterID != 0 {
		var inviter models.User
		if err := tc.DB.First(&inviter, input.InviterID).Error; err == nil {
			inviterName = inviter.Name
		}
	}

	invitation := models.Invitation{
		TeamID:    input.TeamID,
		Email:     input.Email,
		Role:      role,
		Code:      code,
		InviterID: input.InviterID,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := tc.DB.Create(&invitation).Error; err != nil {
		tc.Logger.Printf("Failed to create invitation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create invitation",
		})
	}

	tc.Notifier.Enqueue(worker.Notification{
		Type:      worker.NotificationInvitation,
		To:        input.Email,
		ActorName: inviterName,
		TeamName:  team.Name,
		Code:      code,
	})

	return c.JSON(fiber.Map{
		"success":    true,
		"invitation": fiber.Map{"id": invitation.ID, "email": invitation.Email, "expires_at": invitation.ExpiresAt},
	})
}
