package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tambo/internal/model"
)

// recordingSender captures delivered messages.
type recordingSender struct {
	mu       sync.Mutex
	sent     []Message
	err      error
	delay    time.Duration
	delivery chan struct{}
}

func newRecordingSender() *recordingSender {
	return &recordingSender{delivery: make(chan struct{}, 16)}
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.delivery <- struct{}{}
	return s.err
}

func (s *recordingSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

func TestDispatcher_DeliversNotifiableStatuses(t *testing.T) {
	sender := newRecordingSender()
	d := NewDispatcher(sender, 8)

	accepted := d.Enqueue(Message{
		Email:     "ana@example.com",
		Name:      "Ana",
		OrderCode: "P-12345678",
		Status:    model.OrderStatusConfirmed,
	})
	assert.True(t, accepted)

	d.Close()

	sent := sender.messages()
	assert.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].Email)
	assert.Equal(t, model.OrderStatusConfirmed, sent[0].Status)
}

func TestDispatcher_SkipsStatusesWithoutTemplate(t *testing.T) {
	sender := newRecordingSender()
	d := NewDispatcher(sender, 8)

	d.Enqueue(Message{Email: "ana@example.com", OrderCode: "P-1", Status: model.OrderStatusPending})
	d.Enqueue(Message{Email: "ana@example.com", OrderCode: "P-1", Status: model.OrderStatusCancelled})
	d.Enqueue(Message{Email: "ana@example.com", OrderCode: "P-1", Status: model.OrderStatusDelivered})

	d.Close()

	sent := sender.messages()
	assert.Len(t, sent, 1)
	assert.Equal(t, model.OrderStatusDelivered, sent[0].Status)
}

func TestDispatcher_SwallowsSenderFailures(t *testing.T) {
	sender := newRecordingSender()
	sender.err = errors.New("smtp timeout")
	d := NewDispatcher(sender, 8)

	accepted := d.Enqueue(Message{
		Email:     "ana@example.com",
		OrderCode: "P-12345678",
		Status:    model.OrderStatusConfirmed,
	})
	assert.True(t, accepted, "a failing transport must not surface to the producer")

	d.Close()
	assert.Len(t, sender.messages(), 1)
}

func TestDispatcher_EnqueueNeverBlocksWhenFull(t *testing.T) {
	sender := newRecordingSender()
	sender.delay = 200 * time.Millisecond
	d := NewDispatcher(sender, 1)

	msg := Message{Email: "ana@example.com", OrderCode: "P-1", Status: model.OrderStatusConfirmed}

	// First job occupies the worker, second fills the queue; the rest must
	// be dropped immediately instead of blocking the caller.
	d.Enqueue(msg)
	d.Enqueue(msg)

	dropped := 0
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			if !d.Enqueue(msg) {
				dropped++
			}
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Enqueue blocked on a saturated queue")
	}
	assert.Greater(t, dropped, 0)

	d.Close()
}

func TestRenderTemplates(t *testing.T) {
	tests := []struct {
		name     string
		status   model.OrderStatus
		ok       bool
		contains string
	}{
		{"confirmed renders kitchen message", model.OrderStatusConfirmed, true, "preparando"},
		{"delivered renders served message", model.OrderStatusDelivered, true, "servido/entregado"},
		{"pending renders nothing", model.OrderStatusPending, false, ""},
		{"cancelled renders nothing", model.OrderStatusCancelled, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, ok := render(Message{
				Email:     "ana@example.com",
				Name:      "Ana",
				OrderCode: "P-12345678",
				Status:    tt.status,
			})
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Contains(t, subject, "P-12345678")
				assert.Contains(t, body, "Ana")
				assert.Contains(t, body, tt.contains)
			}
		})
	}
}
