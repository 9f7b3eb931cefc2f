package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	tu "github.com/desertthunder/gbx/internal/testing"
)

func stubMonth() *tu.StubScheduleAPI {
	return &tu.StubScheduleAPI{
		Month: []models.MonthDay{
			{Day: 1, Available: true},
			{Day: 2, Available: false},
			{Day: 3, Available: true},
			{Day: 4, Available: true},
		},
		Appointments: map[int][]models.Appointment{
			1: {
				{ID: "ap1", Date: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
				{ID: "ap2", Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
			},
			3: {
				{ID: "ap3", Date: time.Date(2024, 3, 3, 14, 0, 0, 0, time.UTC)},
			},
		},
	}
}

func TestAgendaEngine(t *testing.T) {
	t.Run("ExportMonth", func(t *testing.T) {
		t.Run("Assembles Available Days In Order", func(t *testing.T) {
			engine := NewAgendaEngine(stubMonth())

			result, err := engine.ExportMonth(context.Background(), nil, "u1", 2024, 3, AgendaOpts{RateLimit: 1000})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(result.Export.Days) != 3 {
				t.Fatalf("expected 3 fetched days, got %d", len(result.Export.Days))
			}
			for i := 1; i < len(result.Export.Days); i++ {
				if result.Export.Days[i].Day <= result.Export.Days[i-1].Day {
					t.Error("expected days sorted ascending")
				}
			}
			if result.Export.TotalAppointments() != 3 {
				t.Errorf("expected 3 appointments, got %d", result.Export.TotalAppointments())
			}
			if result.Export.ProviderID != "u1" || result.Export.Year != 2024 || result.Export.Month != 3 {
				t.Errorf("unexpected export metadata: %+v", result.Export)
			}
			if len(result.FailedDays) != 0 {
				t.Errorf("expected no failed days, got %d", len(result.FailedDays))
			}
		})

		t.Run("Availability Failure Aborts", func(t *testing.T) {
			api := stubMonth()
			api.MonthErr = errors.New("boom")
			engine := NewAgendaEngine(api)

			if _, err := engine.ExportMonth(context.Background(), nil, "u1", 2024, 3, AgendaOpts{}); err == nil {
				t.Error("expected error when availability fetch fails")
			}
		})

		t.Run("Day Failures Degrade The Result", func(t *testing.T) {
			api := stubMonth()
			api.DayErr = errors.New("timeout")
			engine := NewAgendaEngine(api)

			result, err := engine.ExportMonth(context.Background(), nil, "u1", 2024, 3, AgendaOpts{RateLimit: 1000})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.FailedDays) != 3 {
				t.Errorf("expected all 3 days to fail, got %d", len(result.FailedDays))
			}
			if len(result.Export.Days) != 0 {
				t.Errorf("expected no assembled days, got %d", len(result.Export.Days))
			}
		})

		t.Run("Reports Progress", func(t *testing.T) {
			engine := NewAgendaEngine(stubMonth())
			prog := make(chan ProgressUpdate, 64)

			if _, err := engine.ExportMonth(context.Background(), prog, "u1", 2024, 3, AgendaOpts{RateLimit: 1000}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			close(prog)

			var phases []Phase
			for update := range prog {
				phases = append(phases, update.Phase)
			}
			if len(phases) == 0 {
				t.Fatal("expected progress updates")
			}
			if phases[0] != FetchAvailability {
				t.Errorf("expected first phase fetch_availability, got %s", phases[0])
			}
			if phases[len(phases)-1] != AssembleExport {
				t.Errorf("expected final phase assemble_export, got %s", phases[len(phases)-1])
			}
		})

		t.Run("No API Client", func(t *testing.T) {
			engine := NewAgendaEngine(nil)
			if _, err := engine.ExportMonth(context.Background(), nil, "u1", 2024, 3, AgendaOpts{}); err == nil {
				t.Error("expected error with nil API client")
			}
		})
	})
}
