// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for a barber's day-to-day scheduling:
//  1. [SignInView] : Email/password form that opens a session
//  2. [DashboardView] : Month calendar plus the appointment list for the selected day
//  3. [ProfileView] : Edit the signed-in user's name, email and password
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Dashboard and profile are private: reaching them without a session bounces the
// user back to the sign-in form. Toast notifications raised anywhere in the app
// are rendered as an overlay above the active view; queue changes flow through a
// channel so expiring toasts repaint without user input.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
