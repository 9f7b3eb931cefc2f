package toasts

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	tu "github.com/desertthunder/gbx/internal/testing"
)

func TestQueue(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		t.Run("Appends In Insertion Order", func(t *testing.T) {
			q := NewQueue(time.Minute)
			defer q.Close()

			first := q.Add(models.ToastSuccess, "saved", "")
			second := q.Add(models.ToastError, "failed", "try again")
			third := q.Add("", "plain", "")

			msgs := q.Messages()
			if len(msgs) != 3 {
				t.Fatalf("expected 3 messages, got %d", len(msgs))
			}
			if msgs[0].ID != first || msgs[1].ID != second || msgs[2].ID != third {
				t.Error("expected insertion order preserved")
			}
			if msgs[2].Kind != "" {
				t.Errorf("expected kind stored as given, got %q", msgs[2].Kind)
			}
		})

		t.Run("Generates Unique IDs", func(t *testing.T) {
			q := NewQueue(time.Minute)
			defer q.Close()

			seen := make(map[string]bool)
			for i := 0; i < 50; i++ {
				id := q.Add(models.ToastInfo, "t", "")
				if seen[id] {
					t.Fatalf("duplicate toast id %s", id)
				}
				seen[id] = true
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("Removes Exactly The Matching Entry", func(t *testing.T) {
			q := NewQueue(time.Minute)
			defer q.Close()

			first := q.Add(models.ToastInfo, "one", "")
			second := q.Add(models.ToastInfo, "two", "")
			third := q.Add(models.ToastInfo, "three", "")

			q.Remove(second)

			msgs := q.Messages()
			if len(msgs) != 2 {
				t.Fatalf("expected 2 messages, got %d", len(msgs))
			}
			if msgs[0].ID != first || msgs[1].ID != third {
				t.Error("expected relative order of the rest unchanged")
			}
		})

		t.Run("Idempotent", func(t *testing.T) {
			q := NewQueue(time.Minute)
			defer q.Close()

			id := q.Add(models.ToastInfo, "one", "")
			q.Remove(id)
			q.Remove(id)
			q.Remove("never-added")

			if q.Len() != 0 {
				t.Errorf("expected empty queue, got %d", q.Len())
			}
		})
	})

	t.Run("Auto Expiry", func(t *testing.T) {
		t.Run("Expires After TTL", func(t *testing.T) {
			q := NewQueue(20 * time.Millisecond)
			defer q.Close()

			q.Add(models.ToastInfo, "fleeting", "")
			if q.Len() != 1 {
				t.Fatalf("expected 1 live toast, got %d", q.Len())
			}

			tu.Eventually(t, time.Second, func() bool { return q.Len() == 0 })
		})

		t.Run("Early Dismissal Cancels The Timer", func(t *testing.T) {
			q := NewQueue(30 * time.Millisecond)
			defer q.Close()

			var changes atomic.Int32
			q.SetOnChange(func() { changes.Add(1) })

			id := q.Add(models.ToastInfo, "one", "")
			q.Remove(id)

			// Wait out the TTL; the canceled timer must not fire a second
			// removal notification.
			time.Sleep(80 * time.Millisecond)
			if got := changes.Load(); got != 2 {
				t.Errorf("expected exactly add+remove notifications, got %d", got)
			}
			if q.Len() != 0 {
				t.Errorf("expected empty queue, got %d", q.Len())
			}
		})
	})

	t.Run("OnChange", func(t *testing.T) {
		q := NewQueue(time.Minute)
		defer q.Close()

		var changes atomic.Int32
		q.SetOnChange(func() { changes.Add(1) })

		id := q.Add(models.ToastInfo, "one", "")
		if changes.Load() != 1 {
			t.Errorf("expected notification on add, got %d", changes.Load())
		}

		q.Remove("absent")
		if changes.Load() != 1 {
			t.Errorf("expected no notification for a no-op removal, got %d", changes.Load())
		}

		q.Remove(id)
		if changes.Load() != 2 {
			t.Errorf("expected notification on removal, got %d", changes.Load())
		}
	})

	t.Run("Close", func(t *testing.T) {
		t.Run("Cancels Outstanding Timers", func(t *testing.T) {
			q := NewQueue(30 * time.Millisecond)
			q.Add(models.ToastInfo, "one", "")
			q.Add(models.ToastInfo, "two", "")

			q.Close()

			time.Sleep(80 * time.Millisecond)
			// Messages stay put; no timer fired against the closed queue.
			if q.Len() != 2 {
				t.Errorf("expected messages untouched after close, got %d", q.Len())
			}
		})

		t.Run("Rejects Adds After Close", func(t *testing.T) {
			q := NewQueue(time.Minute)
			q.Close()

			if id := q.Add(models.ToastInfo, "late", ""); id != "" {
				t.Errorf("expected empty id after close, got %s", id)
			}
			if q.Len() != 0 {
				t.Errorf("expected empty queue, got %d", q.Len())
			}
		})
	})

	t.Run("Default TTL", func(t *testing.T) {
		q := NewQueue(0)
		defer q.Close()

		if q.ttl != DefaultTTL {
			t.Errorf("expected default ttl %v, got %v", DefaultTTL, q.ttl)
		}
	})
}
