package controller

import (
	"errors"
	"strconv"

	"taskhive/models"
	"taskhive/utils"

	"github.com/gofiber/fiber/v2"
)

// UpdateMember changes a member's role, custom title, or capability
// flags. Only callers with the manage-team capability may do this, and
// the owner role can never be granted or revoked by a non-owner.
func (tc *TeamController) UpdateMember(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	teamID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}
	memberID := c.Params("memberId")

	var input struct {
		Role              *models.Role `json:"role"`
		CustomRoleTitle   *string      `json:"custom_role_title"`
		CanManageTeam     *bool        `json:"can_manage_team"`
		CanManageProjects *bool        `json:"can_manage_projects"`
		CanManageTasks    *bool        `json:"can_manage_tasks"`
		CanViewAll        *bool        `json:"can_view_all"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	caller, err := utils.ResolveMembership(tc.DB, user.ID, uint(teamID))
	if err != nil {
		if errors.Is(err, utils.ErrNotAMember) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not a member of this team",
			})
		}
		tc.Logger.Printf("Failed to resolve membership: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve membership",
		})
	}
	if !caller.Allows(models.PermManageTeam) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to manage this team",
		})
	}

	var target models.TeamMember
	if err := tc.DB.Where("team_id = ? AND id = ?", teamID, memberID).First(&target).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid role",
			})
		}
		// Only an owner may hand out or take away the owner role
		touchesOwner := *input.Role == models.RoleOwner || target.Role == models.RoleOwner
		if touchesOwner && caller.Role != models.RoleOwner {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only the owner can change ownership",
			})
		}
		target.Role = *input.Role
	}
	if input.CustomRoleTitle != nil {
		target.CustomRoleTitle = *input.CustomRoleTitle
	}
	if input.CanManageTeam != nil {
		target.CanManageTeam = *input.CanManageTeam
	}
	if input.CanManageProjects != nil {
		target.CanManageProjects = *input.CanManageProjects
	}
	if input.CanManageTasks != nil {
		target.CanManageTasks = *input.CanManageTasks
	}
	if input.CanViewAll != nil {
		target.CanViewAll = *input.CanViewAll
	}

	// BeforeSave re-applies the owner invariant whatever was sent
	if err := tc.DB.Save(&target).Error; err != nil {
		tc.Logger.Printf("Failed to update member: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update member",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"member":  target,
	})
}

// RemoveMember removes a member from a team. The owner can never be
// removed, and members cannot remove themselves.
func (tc *TeamController) RemoveMember(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	teamID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}
	memberID := c.Params("memberId")

	caller, err := utils.ResolveMembership(tc.DB, user.ID, uint(teamID))
	if err != nil {
		if errors.Is(err, utils.ErrNotAMember) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not a member of this team",
			})
		}
		tc.Logger.Printf("Failed to resolve membership: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve membership",
		})
	}
	if !caller.Allows(models.PermManageTeam) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to manage this team",
		})
	}

	var target models.TeamMember
	if err := tc.DB.Where("team_id = ? AND id = ?", teamID, memberID).First(&target).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	if target.Role == models.RoleOwner {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The owner cannot be removed",
		})
	}
	if target.UserID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot remove yourself",
		})
	}

	if err := tc.DB.Delete(&target).Error; err != nil {
		tc.Logger.Printf("Failed to remove member: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove member",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
