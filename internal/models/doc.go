// Package models defines the domain types shared across the gbx client.
//
// The package contains two categories of types:
//
// 1. Wire types mirroring the GoBarber API:
//   - [User] : the authenticated provider's public profile
//   - [Credentials] / [Registration] / [ProfileUpdate] : request bodies
//   - [MonthDay] : per-day availability of a provider's calendar
//   - [Appointment] : a booked slot with the booking customer
//
// 2. Client-local state:
//   - [Session] : the persisted token/user pairing
//   - [Toast] : a transient notification message
//   - [ScheduleExport] : a month of appointments assembled for export
//
// All are plain value types; the session and toast containers that own them
// live in internal/session and internal/toasts.
package models
