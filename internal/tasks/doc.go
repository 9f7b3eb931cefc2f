// Package tasks implements the long-running schedule operations.
//
// The core abstraction is [AgendaEngine], which assembles a month of the
// provider's appointments from the availability and agenda endpoints.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks
