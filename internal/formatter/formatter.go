// package formatter provides functions to render schedule exports in various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
)

// Format names accepted by [Render].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Render dispatches to the format-specific exporter.
func Render(export models.ScheduleExport, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(export)
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText, "":
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToJSON converts a ScheduleExport to indented JSON.
func ExportToJSON(export models.ScheduleExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// ExportToCSV converts a ScheduleExport to CSV format with columns: Day, Time, Customer, AppointmentID
func ExportToCSV(export models.ScheduleExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Day", "Time", "Customer", "AppointmentID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, day := range export.Days {
		for _, appointment := range day.Appointments {
			record := []string{
				strconv.Itoa(day.Day),
				appointment.HourLabel(),
				appointment.User.Name,
				appointment.ID,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ScheduleExport to Markdown with one section per day
func ExportToMarkdown(export models.ScheduleExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Schedule %04d-%02d\n\n", export.Year, export.Month))
	buf.WriteString(fmt.Sprintf("**Provider**: %s\n", export.ProviderID))
	buf.WriteString(fmt.Sprintf("**Appointments**: %d\n\n", export.TotalAppointments()))

	for _, day := range export.Days {
		buf.WriteString(fmt.Sprintf("## Day %d\n\n", day.Day))
		if len(day.Appointments) == 0 {
			buf.WriteString("_No appointments._\n\n")
			continue
		}
		for _, appointment := range day.Appointments {
			buf.WriteString(fmt.Sprintf("- %s %s\n", appointment.HourLabel(), appointment.User.Name))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ScheduleExport to plain text format
func ExportToText(export models.ScheduleExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Schedule: %04d-%02d (provider %s)\n", export.Year, export.Month, export.ProviderID))
	buf.WriteString(fmt.Sprintf("Appointments: %d\n\n", export.TotalAppointments()))

	for _, day := range export.Days {
		buf.WriteString(fmt.Sprintf("Day %d:\n", day.Day))
		for _, appointment := range day.Appointments {
			buf.WriteString(fmt.Sprintf("  %s  %s\n", appointment.HourLabel(), appointment.User.Name))
		}
	}

	return buf.Bytes(), nil
}
