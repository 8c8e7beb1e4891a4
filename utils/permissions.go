package utils

import (
	"errors"

	"taskhive/models"

	"gorm.io/gorm"
)

// ErrNotAMember is returned when the caller has no membership row for
// the target team.
var ErrNotAMember = errors.New("not a member of this team")

// ResolveMembership loads the caller's membership row for a team.
// A missing row is the deny case of the permission decision table.
func ResolveMembership(db *gorm.DB, userID, teamID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAMember
		}
		return nil, err
	}
	return &member, nil
}

// RequirePermission resolves the membership and evaluates the decision
// table for a single capability. Callers perform the mutation only on
// a nil error.
func RequirePermission(db *gorm.DB, userID, teamID uint, perm models.Permission) (*models.TeamMember, error) {
	member, err := ResolveMembership(db, userID, teamID)
	if err != nil {
		return nil, err
	}
	if !member.Allows(perm) {
		return nil, ErrNotAMember
	}
	return member, nil
}

// TeamIDForProject resolves the owning team of a project
func TeamIDForProject(db *gorm.DB, projectID uint) (uint, error) {
	var project models.Project
	if err := db.Select("id", "team_id").First(&project, projectID).Error; err != nil {
		return 0, err
	}
	return project.TeamID, nil
}

// TeamIDForTask resolves the owning team of a task through its project
func TeamIDForTask(db *gorm.DB, taskID uint) (uint, error) {
	var task models.Task
	if err := db.Select("id", "project_id").First(&task, taskID).Error; err != nil {
		return 0, err
	}
	return TeamIDForProject(db, task.ProjectID)
}
