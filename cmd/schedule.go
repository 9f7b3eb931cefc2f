package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/gbx/internal/formatter"
	"github.com/desertthunder/gbx/internal/shared"
	"github.com/desertthunder/gbx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// providerOrDefault resolves the provider flag against the configured default.
func (r *Runner) providerOrDefault(cmd *cli.Command) (string, error) {
	provider := cmd.String("provider")
	if provider == "" {
		provider = r.config.API.ProviderID
	}
	if provider == "" {
		return "", fmt.Errorf("%w: set --provider or api.provider_id in config.toml", shared.ErrMissingConfig)
	}
	return provider, nil
}

// ScheduleDay prints the signed-in provider's appointments for one day.
func (r *Runner) ScheduleDay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	day := time.Now()
	if dateStr := cmd.String("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("%w: --date must be YYYY-MM-DD: %v", shared.ErrInvalidArgument, err)
		}
		day = parsed
	}

	r.logger.Info("fetching day schedule", "date", day.Format("2006-01-02"))

	appointments, err := r.client.DayAppointments(ctx, day)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(appointments, true)
	}

	r.writePlain("Appointments for %s\n\n", day.Format("Monday, January 2"))
	if len(appointments) == 0 {
		return r.writePlain("No appointments booked.\n")
	}
	for _, appt := range appointments {
		r.writePlain("  %s  %s\n", appt.HourLabel(), appt.User.Name)
	}
	return nil
}

// ScheduleMonth prints a provider's month availability.
func (r *Runner) ScheduleMonth(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	provider, err := r.providerOrDefault(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	year := int(cmd.Int("year"))
	month := int(cmd.Int("month"))
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	r.logger.Info("fetching month availability", "provider", provider, "year", year, "month", month)

	days, err := r.client.MonthAvailability(ctx, provider, year, month)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(days, true)
	}

	r.writePlain("Availability for %d-%02d\n\n", year, month)
	for _, d := range days {
		marker := "✗"
		if d.Available {
			marker = "✓"
		}
		r.writePlain("  %2d %s\n", d.Day, marker)
	}
	return nil
}

// ScheduleExport assembles a full month of appointments and renders it in
// the requested format. Day fetches run concurrently behind a rate limiter;
// days that fail are reported but do not abort the export.
func (r *Runner) ScheduleExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	provider, err := r.providerOrDefault(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	year := int(cmd.Int("year"))
	month := int(cmd.Int("month"))
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	r.logger.Info("exporting month schedule", "provider", provider, "year", year, "month", month)
	r.writePlain("Exporting schedule for %d-%02d...\n\n", year, month)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchAvailability:
				r.writePlain("📅 %s\n", update.Message)
			case tasks.FetchAppointments:
				r.writePlain("   %s\n", update.Message)
			case tasks.AssembleExport:
				r.writePlain("\n📦 %s\n", update.Message)
			}
		}
	}()

	opts := tasks.AgendaOpts{
		NumWorkers: r.config.Export.Workers,
		RateLimit:  r.config.Export.RateLimit,
	}
	result, err := r.engine.ExportMonth(ctx, progressCh, provider, year, month, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Days fetched: %d\n", result.FetchedDays)
	r.writePlain("Appointments: %d\n", result.Export.TotalAppointments())

	if len(result.FailedDays) > 0 {
		r.writePlain("\nFailed to fetch %d days:\n", len(result.FailedDays))
		for _, day := range result.FailedDays {
			r.writePlain("  - day %d: %v\n", day.Day, day.Error)
		}
	}

	if cmd.Bool("save") {
		if r.exports == nil {
			return fmt.Errorf("%w: exports store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
		}
		record, err := r.exports.Create(result.Export)
		if err != nil {
			return fmt.Errorf("failed to save export: %w", err)
		}
		r.writePlain("\nSaved export %s\n", record.ID)
	}

	rendered, err := formatter.Render(result.Export, cmd.String("format"))
	if err != nil {
		return err
	}

	if outputPath := cmd.String("output"); outputPath != "" {
		if err := os.WriteFile(outputPath, rendered, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return r.writePlain("\nWritten to %s\n", outputPath)
	}

	r.writePlain("\n")
	r.output.Write(rendered)
	return nil
}
