package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchAvailability Phase = iota
	FetchAppointments
	AssembleExport
)

func (p Phase) String() string {
	switch p {
	case FetchAvailability:
		return "fetch_availability"
	case FetchAppointments:
		return "fetch_appointments"
	case AssembleExport:
		return "assemble_export"
	default:
		return ""
	}
}

func fetchAvailabilityUpdate(year, month int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAvailability,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching availability for %04d-%02d...", year, month),
	}
}

func fetchDayUpdate(step, total, day int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAppointments,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching appointments for day %d...", step, total, day),
	}
}

func dayFailedUpdate(step, total, day int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAppointments,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ day %d: %v", step, total, day, err),
	}
}

func assembledUpdate(total, appointments int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AssembleExport,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Assembled %d days (%d appointments)", total, appointments),
	}
}
