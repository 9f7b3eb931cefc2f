package ui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/services"
	"github.com/desertthunder/gbx/internal/session"
	"github.com/desertthunder/gbx/internal/shared"
	helpers "github.com/desertthunder/gbx/internal/testing"
	"github.com/desertthunder/gbx/internal/toasts"
)

func testModel(t *testing.T) (*Model, *helpers.MemoryKV) {
	t.Helper()
	kv := helpers.NewMemoryKV()
	api := &helpers.StubAPI{}
	store := session.New(kv, api, shared.NewLogger(io.Discard))
	queue := toasts.NewQueue(time.Minute)
	t.Cleanup(queue.Close)
	client := services.NewClient(services.NewAPIService("", nil))
	return NewModel(context.Background(), client, store, queue, "provider-1"), kv
}

func TestToastRendering(t *testing.T) {
	t.Run("blank kind falls back to info icon", func(t *testing.T) {
		if got := toastIcon(""); got != "i" {
			t.Errorf("toastIcon(blank) = %q, want %q", got, "i")
		}
		if got := toastIcon(models.ToastSuccess); got != "✓" {
			t.Errorf("toastIcon(success) = %q, want %q", got, "✓")
		}
		if got := toastIcon(models.ToastError); got != "✗" {
			t.Errorf("toastIcon(error) = %q, want %q", got, "✗")
		}
	})

	t.Run("empty queue renders nothing", func(t *testing.T) {
		if got := renderToasts(nil, 80); got != "" {
			t.Errorf("expected empty overlay, got %q", got)
		}
	})

	t.Run("overlay includes title and description", func(t *testing.T) {
		msgs := []models.Toast{{ID: "1", Kind: models.ToastError, Title: "Sign in failed", Description: "Try again"}}
		out := renderToasts(msgs, 0)
		if !strings.Contains(out, "Sign in failed") {
			t.Errorf("overlay missing title: %q", out)
		}
		if !strings.Contains(out, "Try again") {
			t.Errorf("overlay missing description: %q", out)
		}
	})
}

func TestRenderCalendar(t *testing.T) {
	days := []models.MonthDay{
		{Day: 1, Available: true},
		{Day: 2, Available: false},
	}
	out := renderCalendar(2026, time.September, 1, days)

	if !strings.Contains(out, "September 2026") {
		t.Errorf("calendar missing month heading: %q", out)
	}
	if !strings.Contains(out, calendarHeader) {
		t.Errorf("calendar missing weekday header")
	}
	if !strings.Contains(out, "30") {
		t.Errorf("calendar missing last day of month")
	}
}

func TestRouteGuard(t *testing.T) {
	t.Run("private view without session bounces to sign-in", func(t *testing.T) {
		m, _ := testModel(t)
		m.setView(DashboardView)

		if m.view != SignInView {
			t.Errorf("view = %v, want SignInView", m.view)
		}
		msgs := m.queue.Messages()
		if len(msgs) != 1 || msgs[0].Kind != models.ToastError {
			t.Errorf("expected one error toast, got %v", msgs)
		}
	})

	t.Run("private view with session is reachable", func(t *testing.T) {
		m, kv := testModel(t)
		kv.Seed(session.TokenKey, "tok")
		kv.Seed(session.UserKey, `{"id":"u1","name":"Ada","email":"ada@example.com"}`)
		m.store = session.New(kv, &helpers.StubAPI{}, shared.NewLogger(io.Discard))

		m.setView(ProfileView)
		if m.view != ProfileView {
			t.Errorf("view = %v, want ProfileView", m.view)
		}
	})

	t.Run("sign-in view never requires a session", func(t *testing.T) {
		if SignInView.private() {
			t.Error("SignInView should be public")
		}
		if !DashboardView.private() || !ProfileView.private() {
			t.Error("dashboard and profile should be private")
		}
	})
}

func TestQueueChangeWakesOverlay(t *testing.T) {
	m, _ := testModel(t)
	m.queue.Add(models.ToastInfo, "hello", "")

	select {
	case <-m.toastChan:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification after Add")
	}
}

func TestDismissKey(t *testing.T) {
	m, kv := testModel(t)
	kv.Seed(session.TokenKey, "tok")
	kv.Seed(session.UserKey, `{"id":"u1","name":"Ada","email":"ada@example.com"}`)
	m.store = session.New(kv, &helpers.StubAPI{}, shared.NewLogger(io.Discard))
	m.setView(DashboardView)

	first := m.queue.Add(models.ToastInfo, "first", "")
	second := m.queue.Add(models.ToastError, "second", "")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	msgs := m.queue.Messages()
	if len(msgs) != 1 || msgs[0].ID != first {
		t.Errorf("expected newest toast %s removed, remaining %v", second, msgs)
	}
}
