package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"taskhive/config"

	"gopkg.in/gomail.v2"
)

type EmailData struct {
	Subject  string
	To       []string
	Template string
	Data     interface{}
	Year     int
}

// Embedded email templates
var emailTemplates = map[string]string{
	"invitation": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .button { display: inline-block; padding: 10px 20px; background-color: #3498db; color: white; text-decoration: none; border-radius: 4px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>You're invited to join {{.TeamName}}</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>{{.InviterName}} has invited you to collaborate on the team <strong>{{.TeamName}}</strong>.</p>

        <p style="text-align: center;">
            <a href="{{.InviteLink}}" class="button">Accept Invitation</a>
        </p>

        <p>Or copy and paste this link into your browser:<br>
        <small>{{.InviteLink}}</small></p>
    </div>

    <div class="footer">
        <p>If you weren't expecting this invitation, you can safely ignore this email.</p>
        <p>© {{.Year}} TaskHive. All rights reserved.</p>
    </div>
</body>
</html>`,

	"task_assigned": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .task-title { font-size: 18px; font-weight: bold; color: #3498db; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>A task was assigned to you</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>{{.ActorName}} assigned you the following task:</p>

        <div class="task-title">{{.TaskTitle}}</div>

        <p><a href="{{.TaskLink}}">Open the task</a> to see the details.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} TaskHive. All rights reserved.</p>
    </div>
</body>
</html>`,

	"task_updated": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .task-title { font-size: 18px; font-weight: bold; color: #3498db; margin: 20px 0; }
        .changes { background: #f8f9fa; padding: 10px 20px; border-radius: 4px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>A task you're assigned to was updated</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>{{.ActorName}} updated the task:</p>

        <div class="task-title">{{.TaskTitle}}</div>

        <ul class="changes">
        {{range .Changes}}<li>{{.}}</li>
        {{end}}</ul>

        <p><a href="{{.TaskLink}}">Open the task</a> to see the details.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} TaskHive. All rights reserved.</p>
    </div>
</body>
</html>`,

	"deadline_reminder": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .task-title { font-size: 18px; font-weight: bold; color: #e74c3c; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Task due soon</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>This task is due {{.DueDate}}:</p>

        <div class="task-title">{{.TaskTitle}}</div>

        <p><a href="{{.TaskLink}}">Open the task</a> to see the details.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} TaskHive. All rights reserved.</p>
    </div>
</body>
</html>`,

	"mention": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .comment { background: #f8f9fa; padding: 10px 20px; border-radius: 4px; font-style: italic; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>You were mentioned in a comment</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>{{.AuthorName}} mentioned you on the task <strong>{{.TaskTitle}}</strong>:</p>

        <div class="comment">{{.Excerpt}}</div>

        <p><a href="{{.TaskLink}}">Open the task</a> to reply.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} TaskHive. All rights reserved.</p>
    </div>
</body>
</html>`,
}

// RenderEmailTemplate executes one of the embedded templates
func RenderEmailTemplate(name string, data interface{}) (string, error) {
	tmplContent, ok := emailTemplates[name]
	if !ok {
		return "", fmt.Errorf("template '%s' not found", name)
	}

	tmpl, err := template.New("email").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error executing template: %v", err)
	}
	return body.String(), nil
}

// SendEmail renders the named template and delivers it over SMTP
func SendEmail(data EmailData) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return fmt.Errorf("email configuration not initialized")
	}

	body, err := RenderEmailTemplate(data.Template, data.Data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail))
	m.SetHeader("To", data.To...)
	m.SetHeader("Subject", data.Subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// TaskLink builds the task URL used in notification emails
func TaskLink(taskID uint) string {
	return fmt.Sprintf("%s/tasks/%d", config.AppConfig.AppURL, taskID)
}

func SendInvitationEmail(to, teamName, inviterName, code string) error {
	return SendEmail(EmailData{
		Subject:  fmt.Sprintf("Invitation to join %s", teamName),
		To:       []string{to},
		Template: "invitation",
		Data: struct {
			Subject     string
			TeamName    string
			InviterName string
			InviteLink  string
			Year        int
		}{
			Subject:     fmt.Sprintf("Invitation to join %s", teamName),
			TeamName:    teamName,
			InviterName: inviterName,
			InviteLink:  fmt.Sprintf("%s/teams/join?code=%s", config.AppConfig.AppURL, code),
			Year:        time.Now().Year(),
		},
	})
}

func SendTaskAssignedEmail(to, actorName, taskTitle string, taskID uint) error {
	return SendEmail(EmailData{
		Subject:  "A task was assigned to you",
		To:       []string{to},
		Template: "task_assigned",
		Data: struct {
			Subject   string
			ActorName string
			TaskTitle string
			TaskLink  string
			Year      int
		}{
			Subject:   "A task was assigned to you",
			ActorName: actorName,
			TaskTitle: taskTitle,
			TaskLink:  TaskLink(taskID),
			Year:      time.Now().Year(),
		},
	})
}

func SendTaskUpdatedEmail(to, actorName, taskTitle string, taskID uint, changes []string) error {
	return SendEmail(EmailData{
		Subject:  "Task updated: " + taskTitle,
		To:       []string{to},
		Template: "task_updated",
		Data: struct {
			Subject   string
			ActorName string
			TaskTitle string
			Changes   []string
			TaskLink  string
			Year      int
		}{
			Subject:   "Task updated: " + taskTitle,
			ActorName: actorName,
			TaskTitle: taskTitle,
			Changes:   changes,
			TaskLink:  TaskLink(taskID),
			Year:      time.Now().Year(),
		},
	})
}

func SendDeadlineReminderEmail(to, taskTitle string, taskID uint, due time.Time) error {
	return SendEmail(EmailData{
		Subject:  "Reminder: task due soon",
		To:       []string{to},
		Template: "deadline_reminder",
		Data: struct {
			Subject   string
			TaskTitle string
			DueDate   string
			TaskLink  string
			Year      int
		}{
			Subject:   "Reminder: task due soon",
			TaskTitle: taskTitle,
			DueDate:   due.Format("Jan 2, 2006 15:04"),
			TaskLink:  TaskLink(taskID),
			Year:      time.Now().Year(),
		},
	})
}

func SendMentionEmail(to, authorName, taskTitle, excerpt string, taskID uint) error {
	return SendEmail(EmailData{
		Subject:  "You were mentioned in a comment",
		To:       []string{to},
		Template: "mention",
		Data: struct {
			Subject    string
			AuthorName string
			TaskTitle  string
			Excerpt    string
			TaskLink   string
			Year       int
		}{
			Subject:    "You were mentioned in a comment",
			AuthorName: authorName,
			TaskTitle:  taskTitle,
			Excerpt:    excerpt,
			TaskLink:   TaskLink(taskID),
			Year:       time.Now().Year(),
		},
	})
}
