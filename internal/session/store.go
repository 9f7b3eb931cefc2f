// Package session owns the authenticated-user state: the token/user pairing
// mirrored to persistent storage and the Authorization header of the shared
// API client.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
)

// Storage keys, kept compatible with the GoBarber web client.
const (
	TokenKey = "@GoBarber:token"
	UserKey  = "@GoBarber:user"
)

// Storage is the persistent key-value string store the session is mirrored
// to. Get reports presence via its second return value.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// API is the slice of the HTTP client the store needs: one session-creation
// call plus the default-header hook for bearer-token injection.
type API interface {
	CreateSession(ctx context.Context, creds models.Credentials) (models.Session, error)
	SetDefaultHeader(key, value string)
}

// Store is the single source of truth for "who is logged in".
//
// It is constructed once at startup and handed to consumers explicitly; the
// stored token and user are either both present or both absent.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	api     API
	logger  *log.Logger

	current models.Session
}

// New constructs the store and eagerly restores any persisted session: if
// both keys are present the user JSON is parsed and the bearer token is set
// as the API client's default Authorization header. No network call is made.
//
// A corrupt stored user is treated as no session; the next successful sign-in
// overwrites both keys.
func New(storage Storage, api API, logger *log.Logger) *Store {
	s := &Store{storage: storage, api: api, logger: logger}
	s.load()
	return s
}

func (s *Store) load() {
	token, okToken, err := s.storage.Get(TokenKey)
	if err != nil {
		s.logger.Warn("failed to read stored token", "error", err)
		return
	}

	rawUser, okUser, err := s.storage.Get(UserKey)
	if err != nil {
		s.logger.Warn("failed to read stored user", "error", err)
		return
	}

	if !okToken || !okUser {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("starting signed out", "error", fmt.Errorf("%w: %v", shared.ErrSessionCorrupt, err))
		return
	}

	s.current = models.Session{Token: token, User: user}
	s.api.SetDefaultHeader("Authorization", "Bearer "+token)
}

// SignIn exchanges credentials for a session. On success the token and user
// are persisted, the Authorization header is set, and the in-memory session
// is replaced. On failure nothing is mutated and the error is propagated.
func (s *Store) SignIn(ctx context.Context, creds models.Credentials) error {
	session, err := s.api.CreateSession(ctx, creds)
	if err != nil {
		return err
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	// Two independent key writes; the token/user pairing is a convention,
	// not a transaction.
	if err := s.storage.Set(TokenKey, session.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.storage.Set(UserKey, string(rawUser)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	s.api.SetDefaultHeader("Authorization", "Bearer "+session.Token)

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	return nil
}

// SignOut removes both storage keys and clears the in-memory session.
// Idempotent; no network call.
func (s *Store) SignOut() error {
	if err := s.storage.Delete(TokenKey); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if err := s.storage.Delete(UserKey); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}

	s.mu.Lock()
	s.current = models.Session{}
	s.mu.Unlock()

	return nil
}

// UpdateUser persists the given user and replaces the session's user field,
// leaving the token untouched. The caller is expected to hold a fresh user
// record from the API; no network call is made here. Calling this with no
// session is tolerated: the user is stored and the token stays absent.
func (s *Store) UpdateUser(user models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.storage.Set(UserKey, string(rawUser)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	s.mu.Lock()
	s.current.User = user
	s.mu.Unlock()

	return nil
}

// User returns the signed-in user, if any. Consumers use this for display
// and as the guard for private views.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User, !s.current.Empty()
}

// Session returns a snapshot of the current session.
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
