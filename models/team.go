package models

import "gorm.io/gorm"

// Team represents a collaboration space owned by its members
type Team struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Relations
	Members  []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Projects []Project    `gorm:"foreignKey:TeamID" json:"projects,omitempty"`
}

// Role is the coarse team role carried by every membership
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleWriter  Role = "writer"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

// ValidRole reports whether r is one of the five known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleManager, RoleWriter, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Permission names one of the four capability flags on a membership
type Permission string

const (
	PermManageTeam     Permission = "manage_team"
	PermManageProjects Permission = "manage_projects"
	PermManageTasks    Permission = "manage_tasks"
	PermViewAll        Permission = "view_all"
)

// TeamMember joins a User to a Team with a role and capability flags
type TeamMember struct {
	gorm.Model
	TeamID uint `gorm:"not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_team_user" json:"user_id"`

	Role            Role   `gorm:"default:'member'" json:"role"`
	CustomRoleTitle string `json:"custom_role_title"`

	CanManageTeam     bool `gorm:"default:false" json:"can_manage_team"`
	CanManageProjects bool `gorm:"default:false" json:"can_manage_projects"`
	CanManageTasks    bool `gorm:"default:false" json:"can_manage_tasks"`
	CanViewAll        bool `gorm:"default:false" json:"can_view_all"`

	// Relations
	Team Team `json:"-"`
	User User `json:"-"`
}

// Normalize enforces the owner invariant: an owner always carries all
// four capability flags, whatever the client sent.
func (m *TeamMember) Normalize() {
	if m.Role == RoleOwner {
		m.CanManageTeam = true
		m.CanManageProjects = true
		m.CanManageTasks = true
		m.CanViewAll = true
	}
}

// BeforeSave keeps the owner invariant on every create and update path
func (m *TeamMember) BeforeSave(tx *gorm.DB) error {
	m.Normalize()
	return nil
}

// Allows evaluates the fixed permission decision table for a single
// capability. Owners pass unconditionally; everyone else needs the
// matching flag on their membership row.
func (m *TeamMember) Allows(perm Permission) bool {
	if m.Role == RoleOwner {
		return true
	}
	switch perm {
	case PermManageTeam:
		return m.CanManageTeam
	case PermManageProjects:
		return m.CanManageProjects
	case PermManageTasks:
		return m.CanManageTasks
	case PermViewAll:
		return m.CanViewAll
	}
	return false
}

// CanDeleteTask layers the task-deletion special case on top of the
// decision table: managers may delete tasks even without the flag.
func (m *TeamMember) CanDeleteTask() bool {
	return m.Role == RoleOwner || m.Role == RoleManager || m.CanManageTasks
}

// NewOwnerMembership builds the bootstrap membership created alongside
// a team for its creator.
func NewOwnerMembership(teamID, userID uint) TeamMember {
	m := TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   RoleOwner,
	}
	m.Normalize()
	return m
}
