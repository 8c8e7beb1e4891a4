package routes

import (
	"log"
	"os"

	"taskhive/config"
	controller "taskhive/controllers"
	"taskhive/middleware"
	"taskhive/utils"
	"taskhive/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires every HTTP endpoint to its controller
func SetupRoutes(app *fiber.App, db *gorm.DB, notifier *worker.Notifier, media *utils.MediaStore, events *controller.EventHub) {
	teamController := controller.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags), notifier)
	projectController := controller.NewProjectController(db, log.New(os.Stdout, "PROJECT: ", log.LstdFlags), media)
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags), notifier, events)
	commentController := controller.NewCommentController(db, log.New(os.Stdout, "COMMENT: ", log.LstdFlags), notifier, media)
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	reminderController := controller.NewReminderController(db, log.New(os.Stdout, "REMINDER: ", log.LstdFlags))
	aiController := controller.NewAIController(utils.NewAIClient(config.AppConfig.OpenAIAPIKey), log.New(os.Stdout, "AI: ", log.LstdFlags))

	// Health check endpoint with a database ping
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  "database unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requestLogger := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	// Team routes
	teams := app.Group("/teams", requestLogger)
	teams.Post("/", middleware.Protected(), teamController.CreateTeam)
	teams.Post("/accept-invitation", teamController.AcceptInvitation)
	teams.Post("/invite", middleware.InviteRateLimiter(), teamController.InviteMember)
	teams.Get("/:id", teamController.GetTeam)
	teams.Patch("/:id/members/:memberId", middleware.Protected(), teamController.UpdateMember)
	teams.Delete("/:id/members/:memberId", middleware.Protected(), teamController.RemoveMember)

	// Project routes
	projects := app.Group("/projects", requestLogger, middleware.Protected())
	projects.Post("/", projectController.CreateProject)
	projects.Get("/:id", projectController.GetProject)
	projects.Post("/:id/files", projectController.UploadProjectFile)

	// Task routes; the cron sweep carries its own bearer secret
	tasks := app.Group("/tasks", requestLogger)
	tasks.Post("/deadline-reminders", middleware.CronProtected(), reminderController.RunDeadlineReminders)
	tasks.Post("/", middleware.Protected(), taskController.CreateTask)
	tasks.Get("/:id", middleware.Protected(), taskController.GetTask)
	tasks.Patch("/:id", middleware.Protected(), taskController.UpdateTaskStatus)
	tasks.Put("/:id", middleware.Protected(), taskController.UpdateTask)
	tasks.Delete("/:id", middleware.Protected(), taskController.DeleteTask)
	tasks.Post("/:id/comments", middleware.Protected(), commentController.CreateComment)

	// Comment routes
	app.Delete("/comments/:id", requestLogger, middleware.Protected(), commentController.DeleteComment)

	// AI and aggregate views
	app.Post("/ai-description", requestLogger, middleware.Protected(), aiController.GenerateDescription)
	app.Get("/dashboard", requestLogger, middleware.Protected(), dashboardController.GetDashboard)
	app.Get("/analytics", requestLogger, middleware.Protected(), dashboardController.GetAnalytics)

	// WebSocket route for the live task-event feed
	app.Get("/ws/events", websocket.New(func(c *websocket.Conn) {
		events.HandleEventsWS(c)
	}))

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	log.Println("API routes initialized successfully")
}
