package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOwnerForcesAllFlags(t *testing.T) {
	m := TeamMember{
		Role:           RoleOwner,
		CanManageTeam:  false,
		CanManageTasks: false,
	}
	m.Normalize()

	assert.True(t, m.CanManageTeam)
	assert.True(t, m.CanManageProjects)
	assert.True(t, m.CanManageTasks)
	assert.True(t, m.CanViewAll)
}

func TestNormalizeLeavesOtherRolesAlone(t *testing.T) {
	m := TeamMember{
		Role:              RoleManager,
		CanManageProjects: true,
	}
	m.Normalize()

	assert.False(t, m.CanManageTeam)
	assert.True(t, m.CanManageProjects)
	assert.False(t, m.CanManageTasks)
	assert.False(t, m.CanViewAll)
}

func TestAllows(t *testing.T) {
	tests := []struct {
		name   string
		member TeamMember
		perm   Permission
		want   bool
	}{
		{"owner always allowed", TeamMember{Role: RoleOwner}, PermManageTeam, true},
		{"owner allowed without flags", TeamMember{Role: RoleOwner}, PermViewAll, true},
		{"manager without flag denied", TeamMember{Role: RoleManager}, PermManageTeam, false},
		{"manager with flag allowed", TeamMember{Role: RoleManager, CanManageTeam: true}, PermManageTeam, true},
		{"viewer with tasks flag allowed", TeamMember{Role: RoleViewer, CanManageTasks: true}, PermManageTasks, true},
		{"member without view flag denied", TeamMember{Role: RoleMember}, PermViewAll, false},
		{"unknown permission denied", TeamMember{Role: RoleManager, CanManageTeam: true}, Permission("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.member.Allows(tt.perm))
		})
	}
}

func TestCanDeleteTask(t *testing.T) {
	assert.True(t, (&TeamMember{Role: RoleOwner}).CanDeleteTask())
	assert.True(t, (&TeamMember{Role: RoleManager}).CanDeleteTask())
	assert.True(t, (&TeamMember{Role: RoleWriter, CanManageTasks: true}).CanDeleteTask())
	assert.False(t, (&TeamMember{Role: RoleWriter}).CanDeleteTask())
	assert.False(t, (&TeamMember{Role: RoleViewer}).CanDeleteTask())
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleManager, RoleWriter, RoleMember, RoleViewer} {
		assert.True(t, ValidRole(r), string(r))
	}
	assert.False(t, ValidRole(Role("admin")))
	assert.False(t, ValidRole(Role("")))
}

func TestNewOwnerMembership(t *testing.T) {
	m := NewOwnerMembership(7, 42)

	assert.Equal(t, uint(7), m.TeamID)
	assert.Equal(t, uint(42), m.UserID)
	assert.Equal(t, RoleOwner, m.Role)
	assert.True(t, m.CanManageTeam)
	assert.True(t, m.CanManageProjects)
	assert.True(t, m.CanManageTasks)
	assert.True(t, m.CanViewAll)
}
