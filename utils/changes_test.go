package utils

import (
	"testing"
	"time"

	"taskhive/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyTaskPatchNilFieldsUntouched(t *testing.T) {
	task := models.Task{Title: "Ship v1", Description: "original", Status: models.TaskStatusTodo}

	changes, assigneeChanged := ApplyTaskPatch(&task, TaskPatch{})

	assert.Empty(t, changes)
	assert.False(t, assigneeChanged)
	assert.Equal(t, "Ship v1", task.Title)
	assert.Equal(t, "original", task.Description)
}

func TestApplyTaskPatchEmptyTitleIgnored(t *testing.T) {
	task := models.Task{Title: "Ship v1"}

	changes, _ := ApplyTaskPatch(&task, TaskPatch{Title: Pointer("")})

	assert.Empty(t, changes)
	assert.Equal(t, "Ship v1", task.Title)
}

func TestApplyTaskPatchEmptyDescriptionIsAChange(t *testing.T) {
	task := models.Task{Description: "something"}

	changes, _ := ApplyTaskPatch(&task, TaskPatch{Description: Pointer("")})

	assert.Equal(t, []string{"description: No description"}, changes)
	assert.Equal(t, "", task.Description)
}

func TestApplyTaskPatchUnchangedValuesNotRecorded(t *testing.T) {
	task := models.Task{Title: "Ship v1", Status: models.TaskStatusTodo, Priority: models.TaskPriorityHigh}

	changes, _ := ApplyTaskPatch(&task, TaskPatch{
		Title:    Pointer("Ship v1"),
		Status:   Pointer(models.TaskStatusTodo),
		Priority: Pointer(models.TaskPriorityHigh),
	})

	assert.Empty(t, changes)
}

func TestApplyTaskPatchRecordsEachChangedField(t *testing.T) {
	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	task := models.Task{Title: "Ship v1", Status: models.TaskStatusTodo}

	changes, assigneeChanged := ApplyTaskPatch(&task, TaskPatch{
		Status:  Pointer(models.TaskStatusInProgress),
		DueDate: &due,
		Tags:    &[]string{"backend", "urgent"},
	})

	assert.False(t, assigneeChanged)
	assert.Contains(t, changes, `status: "in-progress"`)
	assert.Contains(t, changes, "dueDate: Sep 15, 2026")
	assert.Contains(t, changes, `tags: [backend urgent]`)
	assert.Equal(t, models.TaskStatusInProgress, task.Status)
	assert.Equal(t, []string{"backend", "urgent"}, task.Tags)
}

func TestApplyTaskPatchAssigneeChange(t *testing.T) {
	task := models.Task{AssigneeID: Pointer(uint(3))}

	changes, assigneeChanged := ApplyTaskPatch(&task, TaskPatch{AssigneeID: Pointer(uint(9))})

	assert.True(t, assigneeChanged)
	assert.Equal(t, []string{"assignee changed"}, changes)
	assert.Equal(t, uint(9), *task.AssigneeID)
}

func TestApplyTaskPatchSameAssigneeNotAChange(t *testing.T) {
	task := models.Task{AssigneeID: Pointer(uint(3))}

	changes, assigneeChanged := ApplyTaskPatch(&task, TaskPatch{AssigneeID: Pointer(uint(3))})

	assert.False(t, assigneeChanged)
	assert.Empty(t, changes)
}
