// Package session holds the client's belief about the current login
// state and identity, shared by every surface of the app. The store is
// the only writer; it is fed exclusively by the auth endpoints.
package session

import (
	"context"
	"log"
	"sync"

	"traveldest/client/models"
)

// API is the slice of the backend client the store depends on.
type API interface {
	Session(ctx context.Context) (models.Session, error)
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)
	Logout(ctx context.Context) (models.MessageResponse, error)
}

// Store is an injectable process-wide session store. It lives for the
// process lifetime; Refresh must run once at startup before dependents
// read state. The login-status and username streams are always updated
// in the same step, so no observer can see isLoggedIn=true with a nil
// username or the reverse.
type Store struct {
	api API

	mu         sync.Mutex
	isLoggedIn bool
	username   *string
	statusObs  []func(bool)
	userObs    []func(*string)
}

func NewStore(api API) *Store {
	return &Store{api: api}
}

// Refresh fetches the session snapshot from the server. Any transport
// or server failure resets the session to logged-out rather than
// keeping a stale prior value.
func (s *Store) Refresh(ctx context.Context) {
	snapshot, err := s.api.Session(ctx)
	if err != nil {
		log.Printf("session: refresh failed, treating as logged out: %v", err)
		s.set(false, nil)
		return
	}
	s.set(snapshot.IsLoggedIn, snapshot.Username)
}

// Login sends credentials. On success the session becomes the
// server-declared state; on failure the session is left untouched and
// the error is returned to the caller.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return models.LoginResponse{}, err
	}
	s.set(resp.IsLoggedIn, resp.Username)
	return resp, nil
}

// Logout ends the session on the server. Only a successful response
// clears the local session; a failure leaves it unchanged and
// propagates the error.
func (s *Store) Logout(ctx context.Context) (models.MessageResponse, error) {
	resp, err := s.api.Logout(ctx)
	if err != nil {
		return models.MessageResponse{}, err
	}
	s.set(false, nil)
	return resp, nil
}

// CurrentUsername returns the last-known username without touching the
// network. Nil means not logged in.
func (s *Store) CurrentUsername() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// IsLoggedIn reports the last-known login status.
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoggedIn
}

// ObserveLoginStatus subscribes fn to the login-status stream. fn runs
// immediately with the current value, then on every change, in the
// order changes were applied.
func (s *Store) ObserveLoginStatus(fn func(bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusObs = append(s.statusObs, fn)
	fn(s.isLoggedIn)
}

// ObserveUsername subscribes fn to the username stream with the same
// replay-latest semantics as ObserveLoginStatus.
func (s *Store) ObserveUsername(fn func(*string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userObs = append(s.userObs, fn)
	fn(s.username)
}

// set applies both halves of the session in one step and notifies all
// observers before the next update can begin.
func (s *Store) set(isLoggedIn bool, username *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoggedIn = isLoggedIn
	s.username = username
	for _, fn := range s.statusObs {
		fn(isLoggedIn)
	}
	for _, fn := range s.userObs {
		fn(username)
	}
}
