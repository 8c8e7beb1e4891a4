package utils

import (
	"fmt"
	"time"

	"taskhive/models"
)

// TaskPatch is a sparse task update. Nil fields are left untouched;
// this is PATCH semantics even on the PUT handler.
type TaskPatch struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	StartDate      *time.Time `json:"start_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	Tags           *[]string  `json:"tags"`
	Notes          *string    `json:"notes"`
	AssigneeID     *uint      `json:"assignee_id"`
}

// ApplyTaskPatch applies the provided fields to the task and returns a
// human-readable descriptor per changed field, plus whether the
// assignee itself changed. Descriptors drive the notification email.
//
// A description explicitly set to empty still counts as a change and is
// recorded as "No description"; the other optional string fields only
// update when non-empty.
func ApplyTaskPatch(task *models.Task, patch TaskPatch) (changes []string, assigneeChanged bool) {
	if patch.Title != nil && *patch.Title != "" && *patch.Title != task.Title {
		task.Title = *patch.Title
		changes = append(changes, fmt.Sprintf("title: %q", task.Title))
	}
	if patch.Description != nil && *patch.Description != task.Description {
		task.Description = *patch.Description
		if task.Description == "" {
			changes = append(changes, "description: No description")
		} else {
			changes = append(changes, fmt.Sprintf("description: %q", task.Description))
		}
	}
	if patch.Status != nil && *patch.Status != "" && *patch.Status != task.Status {
		task.Status = *patch.Status
		changes = append(changes, fmt.Sprintf("status: %q", task.Status))
	}
	if patch.Priority != nil && *patch.Priority != "" && *patch.Priority != task.Priority {
		task.Priority = *patch.Priority
		changes = append(changes, fmt.Sprintf("priority: %q", task.Priority))
	}
	if patch.DueDate != nil && !timesEqual(patch.DueDate, task.DueDate) {
		task.DueDate = patch.DueDate
		changes = append(changes, "dueDate: "+formatDate(patch.DueDate))
	}
	if patch.StartDate != nil && !timesEqual(patch.StartDate, task.StartDate) {
		task.StartDate = patch.StartDate
		changes = append(changes, "startDate: "+formatDate(patch.StartDate))
	}
	if patch.EstimatedHours != nil && !floatsEqual(patch.EstimatedHours, task.EstimatedHours) {
		task.EstimatedHours = patch.EstimatedHours
		changes = append(changes, fmt.Sprintf("estimatedHours: %g", *patch.EstimatedHours))
	}
	if patch.Tags != nil && !stringSlicesEqual(*patch.Tags, task.Tags) {
		task.Tags = *patch.Tags
		changes = append(changes, fmt.Sprintf("tags: %v", task.Tags))
	}
	if patch.Notes != nil && *patch.Notes != "" && *patch.Notes != task.Notes {
		task.Notes = *patch.Notes
		changes = append(changes, "notes updated")
	}
	if patch.AssigneeID != nil && !uintsEqual(patch.AssigneeID, task.AssigneeID) {
		task.AssigneeID = patch.AssigneeID
		assigneeChanged = true
		changes = append(changes, "assignee changed")
	}
	return changes, assigneeChanged
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format("Jan 2, 2006")
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func floatsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func uintsEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
