// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/gbx/internal/models"
)

// MemoryKV is an in-memory stand-in for the persistent key-value store.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string

	// Fail, when set, makes every operation return this error.
	Fail error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return "", false, m.Fail
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	delete(m.data, key)
	return nil
}

// Seed stores a value without going through error simulation.
func (m *MemoryKV) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Len reports the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// StubAPI is a test double for the session store's API dependency.
type StubAPI struct {
	mu       sync.Mutex
	Session  models.Session
	Err      error
	Calls    int
	Headers  map[string]string
	OnCreate func() (models.Session, error)
}

func NewStubAPI() *StubAPI {
	return &StubAPI{Headers: make(map[string]string)}
}

func (s *StubAPI) CreateSession(ctx context.Context, creds models.Credentials) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.OnCreate != nil {
		return s.OnCreate()
	}
	return s.Session, s.Err
}

func (s *StubAPI) SetDefaultHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Headers == nil {
		s.Headers = make(map[string]string)
	}
	s.Headers[key] = value
}

func (s *StubAPI) Header(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Headers[key]
}

// StubScheduleAPI is a test double for the agenda engine's client dependency.
type StubScheduleAPI struct {
	Month        []models.MonthDay
	MonthErr     error
	Appointments map[int][]models.Appointment
	DayErr       error
}

func (s *StubScheduleAPI) MonthAvailability(ctx context.Context, providerID string, year, month int) ([]models.MonthDay, error) {
	return s.Month, s.MonthErr
}

func (s *StubScheduleAPI) DayAppointments(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	if s.DayErr != nil {
		return nil, s.DayErr
	}
	return s.Appointments[day.Day()], nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// Eventually polls cond until it returns true or the deadline passes.
func Eventually(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", d)
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// DiscardWriter is an io.Writer for silencing loggers in tests.
var DiscardWriter io.Writer = io.Discard
