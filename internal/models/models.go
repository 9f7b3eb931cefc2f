package models

import "time"

// User represents the authenticated provider as returned by the API.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Credentials is the body of a session-creation request. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of an account-creation request.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of a profile-update request. The password fields
// are optional; the API ignores them when empty.
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"old_password,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// Session is the token/user pairing held in memory and mirrored to storage.
// The zero value means "signed out".
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Empty reports whether the session holds no authenticated user.
func (s Session) Empty() bool {
	return s.Token == "" && s.User.ID == ""
}

// ToastKind enumerates the notification styles. The zero value is deliberately
// blank: the renderer falls back to [ToastInfo] when a kind was never set.
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification message. The ID is generated by the queue
// and identifies the message for dismissal and list animation.
type Toast struct {
	ID          string
	Kind        ToastKind
	Title       string
	Description string
}

// MonthDay is one calendar day of a provider's month availability.
type MonthDay struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}

// AppointmentUser is the customer attached to an appointment.
type AppointmentUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Appointment is a booked slot on the provider's schedule.
type Appointment struct {
	ID   string          `json:"id"`
	Date time.Time       `json:"date"`
	User AppointmentUser `json:"user"`
}

// HourLabel returns the appointment's start time as a 24h clock label.
func (a Appointment) HourLabel() string {
	return a.Date.Format("15:04")
}

// DaySchedule groups one day's appointments inside an export.
type DaySchedule struct {
	Day          int           `json:"day"`
	Appointments []Appointment `json:"appointments"`
}

// ScheduleExport is an assembled month of a provider's appointments.
type ScheduleExport struct {
	ProviderID string        `json:"provider_id"`
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Days       []DaySchedule `json:"days"`
}

// TotalAppointments counts the booked slots across all exported days.
func (e ScheduleExport) TotalAppointments() int {
	total := 0
	for _, day := range e.Days {
		total += len(day.Appointments)
	}
	return total
}
