// Package services contains the HTTP client layer for the GoBarber API.
//
// [APIService] is the shared low-level client: base URL, context-aware
// verbs, and a default-header map applied to every outgoing request (this is
// where the session's Authorization header lives once set).
//
// [Client] is the typed surface over it: one method per API operation the
// rest of the application calls.
package services
