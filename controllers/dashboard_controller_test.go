package controller

import (
	"fmt"
	"testing"

	"taskhive/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRequiresViewAll(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)
	viewer := createUser(t, db, "ext-viewer", "viewer@example.com", "Vera Viewer")
	addMember(t, db, fixture.team.ID, viewer.ID, models.RoleViewer)

	dc := NewDashboardController(db, testLogger())
	app := fiber.New()
	app.Get("/analytics", asUser(viewer, dc.GetAnalytics))

	resp := jsonRequest(t, app, fiber.MethodGet,
		fmt.Sprintf("/analytics?team_id=%d", fixture.team.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAnalyticsAllowedWithViewAllFlag(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)
	analyst := createUser(t, db, "ext-analyst", "analyst@example.com", "Alan Analyst")
	member := addMember(t, db, fixture.team.ID, analyst.ID, models.RoleMember)
	member.CanViewAll = true
	require.NoError(t, db.Save(&member).Error)

	dc := NewDashboardController(db, testLogger())
	app := fiber.New()
	app.Get("/analytics", asUser(analyst, dc.GetAnalytics))

	resp := jsonRequest(t, app, fiber.MethodGet,
		fmt.Sprintf("/analytics?team_id=%d", fixture.team.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
}

func TestAnalyticsAllowedForManager(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedTeam(t, db)
	manager := createUser(t, db, "ext-manager", "manager@example.com", "Mona Manager")
	addMember(t, db, fixture.team.ID, manager.ID, models.RoleManager)

	dc := NewDashboardController(db, testLogger())
	app := fiber.New()
	app.Get("/analytics", asUser(manager, dc.GetAnalytics))

	resp := jsonRequest(t, app, fiber.MethodGet,
		fmt.Sprintf("/analytics?team_id=%d", fixture.team.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
