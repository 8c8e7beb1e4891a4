package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// ValidTaskStatus reports whether s is a known task status
func ValidTaskStatus(s string) bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress || s == TaskStatusDone
}

// ValidTaskPriority reports whether p is a known task priority
func ValidTaskPriority(p string) bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh || p == TaskPriorityUrgent
}

// Task is a unit of work owned by exactly one project
type Task struct {
	gorm.Model
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	CreatorID uint   `gorm:"not null" json:"creator_id"`
	Title     string `gorm:"not null" json:"title"`

	Description string `json:"description"`
	Status      string `gorm:"default:'todo'" json:"status"`     // todo, in-progress, done
	Priority    string `gorm:"default:'medium'" json:"priority"` // low, medium, high, urgent

	AssigneeID     *uint      `gorm:"index" json:"assignee_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`

	Tags  []string `gorm:"type:jsonb;serializer:json" json:"tags"`
	Notes string   `json:"notes"`

	// Relations
	Project  Project       `json:"-"`
	Creator  User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee *User         `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []TaskComment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
