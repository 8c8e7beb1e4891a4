package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhive/models"
	"taskhive/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second connection to :memory: would see an empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Invitation{},
		&models.Project{},
		&models.ProjectFile{},
		&models.Task{},
		&models.TaskComment{},
		&models.TaskCommentAttachment{},
		&models.TaskCommentMention{},
	))
	return db
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// testNotifier buffers enqueued notifications without delivering them
func testNotifier() *worker.Notifier {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return worker.NewNotifier(64, func(worker.Notification) error { return nil }, logger)
}

// asUser injects an authenticated user the way the JWT middleware does
func asUser(user *models.User, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", user)
		c.Locals("userID", user.ID)
		return handler(c)
	}
}

func createUser(t *testing.T, db *gorm.DB, externalID, email, name string) *models.User {
	t.Helper()
	user := models.User{ExternalID: externalID, Email: email, Name: name, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func jsonRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// teamFixture is a seeded team with an owner, a project, and a task
// assigned to nobody.
type teamFixture struct {
	owner   *models.User
	team    models.Team
	project models.Project
	task    models.Task
}

func seedTeam(t *testing.T, db *gorm.DB) teamFixture {
	t.Helper()

	owner := createUser(t, db, "ext-owner", "owner@example.com", "Olive Owner")
	team := models.Team{Name: "Platform"}
	require.NoError(t, db.Create(&team).Error)
	membership := models.NewOwnerMembership(team.ID, owner.ID)
	require.NoError(t, db.Create(&membership).Error)

	project := models.Project{TeamID: team.ID, Name: "Backend"}
	require.NoError(t, db.Create(&project).Error)

	task := models.Task{
		ProjectID: project.ID,
		CreatorID: owner.ID,
		Title:     "Ship v1",
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
	}
	require.NoError(t, db.Create(&task).Error)

	return teamFixture{owner: owner, team: team, project: project, task: task}
}

// addMember joins a user to the fixture team with the given role and
// no capability flags.
func addMember(t *testing.T, db *gorm.DB, teamID, userID uint, role models.Role) models.TeamMember {
	t.Helper()
	member := models.TeamMember{TeamID: teamID, UserID: userID, Role: role}
	require.NoError(t, db.Create(&member).Error)
	return member
}
