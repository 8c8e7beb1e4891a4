package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNotifierDeliversQueuedNotifications(t *testing.T) {
	var mu sync.Mutex
	var got []Notification
	done := make(chan struct{}, 2)

	n := NewNotifier(8, func(notif Notification) error {
		mu.Lock()
		got = append(got, notif)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Start(ctx)

	n.Enqueue(Notification{Type: NotificationAssignment, To: "ada@example.com"})
	n.Enqueue(Notification{Type: NotificationMention, To: "grace@example.com"})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, NotificationAssignment, got[0].Type)
	assert.Equal(t, NotificationMention, got[1].Type)
}

func TestNotifierDropsWhenQueueFull(t *testing.T) {
	// No consumer running, buffer of one: the second enqueue is dropped
	n := NewNotifier(1, func(Notification) error { return nil }, quietLogger())

	n.Enqueue(Notification{Type: NotificationUpdate, To: "first@example.com"})
	n.Enqueue(Notification{Type: NotificationUpdate, To: "second@example.com"})

	assert.Len(t, n.queue, 1)
	queued := <-n.queue
	assert.Equal(t, "first@example.com", queued.To)
}

func TestNotifierSwallowsSendFailures(t *testing.T) {
	done := make(chan Notification, 2)

	n := NewNotifier(8, func(notif Notification) error {
		done <- notif
		if notif.To == "broken@example.com" {
			return errors.New("smtp down")
		}
		return nil
	}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Start(ctx)

	n.Enqueue(Notification{Type: NotificationUpdate, To: "broken@example.com"})
	n.Enqueue(Notification{Type: NotificationUpdate, To: "fine@example.com"})

	// The failed send must not stop the worker from draining the queue
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stalled after a failed send")
		}
	}
}

func TestNotifierStopsOnContextCancel(t *testing.T) {
	n := NewNotifier(1, func(Notification) error { return nil }, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		n.Start(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
