package worker

import (
	"context"
	"fmt"
	"time"

	"taskhive/utils"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// NotificationType selects the email template for a queued notification
type NotificationType string

const (
	NotificationAssignment NotificationType = "assignment"
	NotificationUpdate     NotificationType = "update"
	NotificationMention    NotificationType = "mention"
	NotificationInvitation NotificationType = "invitation"
	NotificationReminder   NotificationType = "reminder"
)

// Notification is one queued email. Fields are used per type; unused
// fields stay zero.
type Notification struct {
	Type      NotificationType
	To        string
	ActorName string
	TaskID    uint
	TaskTitle string
	Changes   []string
	Excerpt   string
	TeamName  string
	Code      string
	Due       time.Time
}

// SendFunc delivers a single notification
type SendFunc func(Notification) error

// Notifier decouples notification emails from the request/response
// cycle. Delivery is at-most-once: a failed or dropped send is logged
// and never retried, and never fails the mutation that triggered it.
type Notifier struct {
	queue  chan Notification
	send   SendFunc
	logger *logrus.Logger
}

func NewNotifier(buffer int, send SendFunc, logger *logrus.Logger) *Notifier {
	if send == nil {
		send = deliver
	}
	return &Notifier{
		queue:  make(chan Notification, buffer),
		send:   send,
		logger: logger,
	}
}

// Enqueue hands a notification to the worker without blocking the
// request. When the queue is full the notification is dropped.
func (n *Notifier) Enqueue(notif Notification) {
	select {
	case n.queue <- notif:
	default:
		n.logger.WithFields(logrus.Fields{
			"type": notif.Type,
			"to":   notif.To,
		}).Warn("notification queue full, dropping notification")
	}
}

// Start consumes the queue until the context is cancelled
func (n *Notifier) Start(ctx context.Context) {
	n.logger.Info("Notifier worker started")

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Notifier worker shutting down...")
			return
		case notif := <-n.queue:
			n.process(notif)
		}
	}
}

func (n *Notifier) process(notif Notification) {
	if err := n.send(notif); err != nil {
		n.logger.WithFields(logrus.Fields{
			"type":  notif.Type,
			"to":    notif.To,
			"error": err.Error(),
		}).Error("failed to send notification")
		sentry.CaptureException(err)
		return
	}
	n.logger.WithFields(logrus.Fields{
		"type": notif.Type,
		"to":   notif.To,
	}).Info("notification sent")
}

func deliver(notif Notification) error {
	switch notif.Type {
	case NotificationAssignment:
		return utils.SendTaskAssignedEmail(notif.To, notif.ActorName, notif.TaskTitle, notif.TaskID)
	case NotificationUpdate:
		return utils.SendTaskUpdatedEmail(notif.To, notif.ActorName, notif.TaskTitle, notif.TaskID, notif.Changes)
	case NotificationMention:
		return utils.SendMentionEmail(notif.To, notif.ActorName, notif.TaskTitle, notif.Excerpt, notif.TaskID)
	case NotificationInvitation:
		return utils.SendInvitationEmail(notif.To, notif.TeamName, notif.ActorName, notif.Code)
	case NotificationReminder:
		return utils.SendDeadlineReminderEmail(notif.To, notif.TaskTitle, notif.TaskID, notif.Due)
	default:
		return fmt.Errorf("unknown notification type %q", notif.Type)
	}
}
