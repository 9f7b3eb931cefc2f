package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/gbx/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(NewAPIService(server.URL, nil)), server
}

func TestClient(t *testing.T) {
	t.Run("CreateSession", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/sessions" {
					t.Errorf("expected POST /sessions, got %s %s", r.Method, r.URL.Path)
				}

				body, _ := io.ReadAll(r.Body)
				var creds models.Credentials
				if err := json.Unmarshal(body, &creds); err != nil {
					t.Fatalf("failed to decode request body: %v", err)
				}
				if creds.Email != "a@b.com" || creds.Password != "x" {
					t.Errorf("unexpected credentials: %+v", creds)
				}

				json.NewEncoder(w).Encode(map[string]any{
					"token": "T1",
					"user":  models.User{ID: "u1", Name: "Ana", Email: "a@b.com"},
				})
			})
			defer server.Close()

			session, err := client.CreateSession(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session.Token != "T1" {
				t.Errorf("expected token T1, got %s", session.Token)
			}
			if session.User.Email != "a@b.com" {
				t.Errorf("expected user email a@b.com, got %s", session.User.Email)
			}
		})

		t.Run("Rejected Credentials", func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Incorrect email/password combination."})
			})
			defer server.Close()

			_, err := client.CreateSession(context.Background(), models.Credentials{Email: "a@b.com", Password: "bad"})
			if err == nil {
				t.Fatal("expected error for 401 response")
			}
			if !strings.Contains(err.Error(), "Incorrect email/password") {
				t.Errorf("expected API message in error, got %v", err)
			}
		})
	})

	t.Run("CreateUser", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/users" {
				t.Errorf("expected POST /users, got %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.User{ID: "u2", Name: "Bea", Email: "b@c.com"})
		})
		defer server.Close()

		user, err := client.CreateUser(context.Background(), models.Registration{Name: "Bea", Email: "b@c.com", Password: "pw"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.ID != "u2" {
			t.Errorf("expected user id u2, got %s", user.ID)
		}
	})

	t.Run("Password Recovery", func(t *testing.T) {
		var paths []string
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		defer server.Close()

		if err := client.ForgotPassword(context.Background(), "a@b.com"); err != nil {
			t.Fatalf("forgot: expected no error, got %v", err)
		}
		if err := client.ResetPassword(context.Background(), "tok", "new", "new"); err != nil {
			t.Fatalf("reset: expected no error, got %v", err)
		}

		if len(paths) != 2 || paths[0] != "/password/forgot" || paths[1] != "/password/reset" {
			t.Errorf("unexpected paths: %v", paths)
		}
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/profile" {
				t.Errorf("expected PUT /profile, got %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.User{ID: "u1", Name: "Ana Maria", Email: "a@b.com"})
		})
		defer server.Close()

		user, err := client.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "Ana Maria", Email: "a@b.com"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.Name != "Ana Maria" {
			t.Errorf("expected updated name, got %s", user.Name)
		}
	})

	t.Run("UpdateAvatar", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch || r.URL.Path != "/users/avatar" {
				t.Errorf("expected PATCH /users/avatar, got %s %s", r.Method, r.URL.Path)
			}

			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("expected multipart form: %v", err)
			}
			file, header, err := r.FormFile("avatar")
			if err != nil {
				t.Fatalf("expected avatar field: %v", err)
			}
			defer file.Close()
			if header.Filename != "me.png" {
				t.Errorf("expected filename me.png, got %s", header.Filename)
			}

			json.NewEncoder(w).Encode(models.User{ID: "u1", AvatarURL: "http://cdn/me.png"})
		})
		defer server.Close()

		user, err := client.UpdateAvatar(context.Background(), "me.png", []byte{0x89, 0x50})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.AvatarURL != "http://cdn/me.png" {
			t.Errorf("expected avatar URL, got %s", user.AvatarURL)
		}
	})

	t.Run("MonthAvailability", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/providers/u1/month-availability" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("year") != "2024" || r.URL.Query().Get("month") != "3" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode([]models.MonthDay{
				{Day: 1, Available: true},
				{Day: 2, Available: false},
			})
		})
		defer server.Close()

		days, err := client.MonthAvailability(context.Background(), "u1", 2024, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(days) != 2 || !days[0].Available || days[1].Available {
			t.Errorf("unexpected availability: %+v", days)
		}
	})

	t.Run("DayAppointments", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/appointments/me" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("year") != "2024" || q.Get("month") != "3" || q.Get("day") != "12" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode([]models.Appointment{
				{
					ID:   "ap1",
					Date: time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC),
					User: models.AppointmentUser{Name: "Carlos"},
				},
			})
		})
		defer server.Close()

		day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
		appointments, err := client.DayAppointments(context.Background(), day)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(appointments) != 1 {
			t.Fatalf("expected 1 appointment, got %d", len(appointments))
		}
		if appointments[0].HourLabel() != "14:00" {
			t.Errorf("expected hour label 14:00, got %s", appointments[0].HourLabel())
		}
	})
}
