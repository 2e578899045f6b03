package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sendTimeout = 30 * time.Second

// Queue accepts notifications for asynchronous delivery.
type Queue interface {
	// Enqueue hands off a notification without blocking. The return value
	// reports whether the job was accepted; callers must not treat a drop
	// as a failure of their own operation.
	Enqueue(msg Message) bool
}

// Dispatcher consumes a bounded queue of notifications on a single worker
// goroutine. Delivery failures are logged and swallowed so a courtesy email
// can never fail the business operation that triggered it.
type Dispatcher struct {
	sender Sender
	jobs   chan Message
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewDispatcher starts the worker. size bounds the queue; when full,
// Enqueue drops instead of blocking the request that triggered it.
func NewDispatcher(sender Sender, size int) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		jobs:   make(chan Message, size),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue implements Queue.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case d.jobs <- msg:
		return true
	default:
		log.Printf("notify: queue full, dropping notification for order %s", msg.OrderCode)
		return false
	}
}

// Close stops accepting jobs and waits for the queued ones to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for msg := range d.jobs {
		if _, _, ok := render(msg); !ok {
			// Status without a template: silently skipped, not an error.
			continue
		}
		jobID := uuid.New().String()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			log.Printf("notify: job %s order %s to %s failed: %v", jobID, msg.OrderCode, msg.Email, err)
		} else {
			log.Printf("notify: job %s order %s status %s sent to %s", jobID, msg.OrderCode, msg.Status, msg.Email)
		}
		cancel()
	}
}
