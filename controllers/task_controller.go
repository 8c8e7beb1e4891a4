package controller

import (
	"log"

	"taskhive/models"
	"taskhive/utils"
	"taskhive/worker"

	"gorm.io/gorm"
)

type TaskController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Notifier *worker.Notifier
	Events   *EventHub
}

func NewTaskController(db *gorm.DB, logger *log.Logger, notifier *worker.Notifier, events *EventHub) *TaskController {
	return &TaskController{
		DB:       db,
		Logger:   logger,
		Notifier: notifier,
		Events:   events,
	}
}

// assigneeIsMember verifies a prospective assignee belongs to the team
func (tc *TaskController) assigneeIsMember(teamID, userID uint) bool {
	_, err := utils.ResolveMembership(tc.DB, userID, teamID)
	return err == nil
}

// broadcast publishes a task event to connected websocket clients
func (tc *TaskController) broadcast(eventType string, task *models.Task, teamID uint) {
	if tc.Events == nil {
		return
	}
	tc.Events.Broadcast(TaskEvent{
		Type:      eventType,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		TeamID:    teamID,
		Title:     task.Title,
		Status:    task.Status,
	})
}
