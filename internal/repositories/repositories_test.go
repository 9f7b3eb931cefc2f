package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestKVRepository(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewKVRepository(db)
		value, ok, err := repo.Get("@GoBarber:token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok || value != "" {
			t.Errorf("expected absent key, got %q (ok=%v)", value, ok)
		}
	})

	t.Run("Set Then Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewKVRepository(db)
		if err := repo.Set("@GoBarber:token", "T1"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, ok, err := repo.Get("@GoBarber:token")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !ok || value != "T1" {
			t.Errorf("expected T1, got %q (ok=%v)", value, ok)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewKVRepository(db)
		if err := repo.Set("k", "v1"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		if err := repo.Set("k", "v2"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		value, ok, _ := repo.Get("k")
		if !ok || value != "v2" {
			t.Errorf("expected v2, got %q", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewKVRepository(db)
		if err := repo.Set("k", "v"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		if err := repo.Delete("k"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if _, ok, _ := repo.Get("k"); ok {
			t.Error("expected key to be gone")
		}

		// Deleting an absent key is a no-op
		if err := repo.Delete("k"); err != nil {
			t.Errorf("expected no error deleting absent key, got %v", err)
		}
	})
}

func testExport() models.ScheduleExport {
	return models.ScheduleExport{
		ProviderID: "u1",
		Year:       2024,
		Month:      3,
		Days: []models.DaySchedule{
			{
				Day: 12,
				Appointments: []models.Appointment{
					{
						ID:   "ap1",
						Date: time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC),
						User: models.AppointmentUser{Name: "Carlos"},
					},
				},
			},
		},
	}
}

func TestExportRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExportRepository(db)
		record, err := repo.Create(testExport())
		if err != nil {
			t.Fatalf("failed to create export: %v", err)
		}
		if record.ID == "" {
			t.Error("expected generated export id")
		}

		retrieved, err := repo.Get(record.ID)
		if err != nil {
			t.Fatalf("failed to get export: %v", err)
		}
		if retrieved.Export.ProviderID != "u1" {
			t.Errorf("expected provider u1, got %s", retrieved.Export.ProviderID)
		}
		if retrieved.Export.TotalAppointments() != 1 {
			t.Errorf("expected 1 appointment, got %d", retrieved.Export.TotalAppointments())
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExportRepository(db)
		_, err := repo.Get("nope")
		if !errors.Is(err, shared.ErrExportNotFound) {
			t.Errorf("expected ErrExportNotFound, got %v", err)
		}
	})

	t.Run("List Filters By Provider", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExportRepository(db)
		if _, err := repo.Create(testExport()); err != nil {
			t.Fatalf("failed to create export: %v", err)
		}

		other := testExport()
		other.ProviderID = "u2"
		if _, err := repo.Create(other); err != nil {
			t.Fatalf("failed to create export: %v", err)
		}

		records, err := repo.List("u1")
		if err != nil {
			t.Fatalf("failed to list exports: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 export for u1, got %d", len(records))
		}

		all, err := repo.List("")
		if err != nil {
			t.Fatalf("failed to list all exports: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 exports total, got %d", len(all))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewExportRepository(db)
		record, err := repo.Create(testExport())
		if err != nil {
			t.Fatalf("failed to create export: %v", err)
		}

		if err := repo.Delete(record.ID); err != nil {
			t.Fatalf("failed to delete export: %v", err)
		}
		if err := repo.Delete(record.ID); !errors.Is(err, shared.ErrExportNotFound) {
			t.Errorf("expected ErrExportNotFound, got %v", err)
		}
	})
}
