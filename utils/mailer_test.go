package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmailTemplateInvitation(t *testing.T) {
	body, err := RenderEmailTemplate("invitation", struct {
		Subject     string
		TeamName    string
		InviterName string
		InviteLink  string
		Year        int
	}{
		Subject:     "Invitation to join Platform",
		TeamName:    "Platform",
		InviterName: "Ada",
		InviteLink:  "http://localhost:3000/teams/join?code=abc",
		Year:        2026,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Platform")
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "http://localhost:3000/teams/join?code=abc")
}

func TestRenderEmailTemplateTaskUpdatedListsChanges(t *testing.T) {
	body, err := RenderEmailTemplate("task_updated", struct {
		Subject   string
		ActorName string
		TaskTitle string
		Changes   []string
		TaskLink  string
		Year      int
	}{
		Subject:   "Task updated: Ship v1",
		ActorName: "Ada",
		TaskTitle: "Ship v1",
		Changes:   []string{`status: "done"`, "assignee changed"},
		TaskLink:  "http://localhost:3000/tasks/1",
		Year:      2026,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Ship v1")
	assert.Contains(t, body, "status: &#34;done&#34;")
	assert.Contains(t, body, "assignee changed")
}

func TestRenderEmailTemplateEscapesHTML(t *testing.T) {
	body, err := RenderEmailTemplate("mention", struct {
		Subject    string
		AuthorName string
		TaskTitle  string
		Excerpt    string
		TaskLink   string
		Year       int
	}{
		AuthorName: "Ada",
		TaskTitle:  "Ship v1",
		Excerpt:    "<script>alert(1)</script>",
		TaskLink:   "http://localhost:3000/tasks/1",
		Year:       2026,
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderEmailTemplateUnknownName(t *testing.T) {
	_, err := RenderEmailTemplate("nope", nil)
	assert.Error(t, err)
}
