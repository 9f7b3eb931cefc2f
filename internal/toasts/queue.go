// Package toasts maintains the ordered list of transient user-facing
// notifications and their timed lifecycle.
package toasts

import (
	"sync"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
)

// DefaultTTL is how long a toast stays alive unless dismissed first.
const DefaultTTL = 3000 * time.Millisecond

// Queue owns an ordered sequence of toasts. Each toast carries one pending
// auto-removal timer; dismissal and expiry race, whichever fires first wins,
// and removal is idempotent either way.
type Queue struct {
	mu       sync.Mutex
	ttl      time.Duration
	messages []models.Toast
	timers   map[string]*time.Timer
	onChange func()
	closed   bool
}

// NewQueue creates an empty queue. A non-positive ttl falls back to
// [DefaultTTL].
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// SetOnChange registers a callback invoked after every mutation of the
// sequence. The rendering layer uses it to schedule a redraw; it runs outside
// the queue lock and must not call back into the queue synchronously from
// the same goroutine it was registered on.
func (q *Queue) SetOnChange(fn func()) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// Add appends a toast with a freshly generated id and schedules its
// auto-removal. The kind is stored as given; rendering falls back to info
// when it is blank. Returns the generated id ("" after Close).
func (q *Queue) Add(kind models.ToastKind, title, description string) string {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}

	id := shared.GenerateID()
	q.messages = append(q.messages, models.Toast{
		ID:          id,
		Kind:        kind,
		Title:       title,
		Description: description,
	})
	q.timers[id] = time.AfterFunc(q.ttl, func() {
		q.Remove(id)
	})
	notify := q.onChange
	q.mu.Unlock()

	if notify != nil {
		notify()
	}
	return id
}

// Remove dismisses the toast with the given id and cancels its pending
// timer. Removing an absent id is a no-op.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	removed := false
	for i, msg := range q.messages {
		if msg.ID == id {
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
			removed = true
			break
		}
	}
	notify := q.onChange
	q.mu.Unlock()

	if removed && notify != nil {
		notify()
	}
}

// Messages returns a snapshot of the live toasts in insertion order.
func (q *Queue) Messages() []models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Toast, len(q.messages))
	copy(out, q.messages)
	return out
}

// Len reports the number of live toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Close cancels every outstanding timer and rejects further Adds. Called on
// teardown of the owning scope so no timer fires against a dead list.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.onChange = nil
}
