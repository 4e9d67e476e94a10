// Package services contains the application services of the Sparkmatch
// client. This file defines the session manager: the single process-wide
// authority for which user, if any, is currently authenticated.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/mkorotkov/sparkmatch/internal/client/api"
	"github.com/mkorotkov/sparkmatch/internal/client/models"
	sessionrepo "github.com/mkorotkov/sparkmatch/internal/client/repositories/session"
	"github.com/mkorotkov/sparkmatch/internal/dbx"
	"github.com/mkorotkov/sparkmatch/internal/logging"
)

// SessionState describes the one observable session lifecycle state.
type SessionState int

const (
	// StateLoading holds only during the initial restore from local storage.
	StateLoading SessionState = iota
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrSuperseded is returned by Login/Signup when another session mutation
// (for example a logout) committed while the network call was in flight.
// The later-initiated operation wins and the stale result is discarded.
var ErrSuperseded = errors.New("superseded by a newer session operation")

// SessionManager is the contract between the session core and the UI.
//
// Contract:
//   - Restore: run exactly once at startup; never fails, always ends loading.
//   - Login/Signup: authenticate against the backend, persist the user
//     locally, switch to the authenticated state. Failures come back as the
//     api error unchanged; local storage failures are logged and swallowed.
//   - Logout: clear local storage and the in-memory user. Idempotent.
//   - UpdateUser: wholesale replacement of the current user record, both
//     in storage and in memory. No merging of partial updates.
//   - CurrentUser/Loading/State: pure accessors.
type SessionManager interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, data models.SignupData) error
	Logout(ctx context.Context)
	UpdateUser(ctx context.Context, u models.User)
	CurrentUser() *models.User
	Loading() bool
	State() SessionState
}

// sessionManager is the concrete SessionManager backed by a remote api.Client
// and a local SQL database for the persisted session record.
//
// All state lives behind mu. The generation counter sequences mutations:
// Login and Signup capture it before their network call and commit only if
// it is still unchanged, so a logout racing an in-flight login can never be
// undone by the login's late result.
type sessionManager struct {
	api api.Client
	db  *sql.DB
	log logging.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
	gen     uint64
}

// NewSessionManager constructs a SessionManager in the loading state.
// Call Restore before anything else.
func NewSessionManager(apiClient api.Client, db *sql.DB, log logging.Logger) SessionManager {
	return &sessionManager{
		api:     apiClient,
		db:      db,
		log:     log.With("component", "session"),
		loading: true,
	}
}

func (m *sessionManager) getSessionRepo() sessionrepo.Repository {
	return sessionrepo.NewSQLiteRepository(m.db)
}

// Restore loads the persisted user record, if any. A read failure or a
// corrupt record is treated as "no session" and logged, never surfaced.
// Always terminates with loading=false.
func (m *sessionManager) Restore(ctx context.Context) {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	var restored *models.User

	raw, err := m.getSessionRepo().Get(ctx, sessionrepo.KeyUser)
	switch {
	case err != nil:
		m.log.Warn(ctx, "session restore: storage read failed", "error", err)
	case raw != nil:
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			m.log.Warn(ctx, "session restore: corrupt stored record, discarding", "error", err)
		} else if err := u.Validate(); err != nil {
			m.log.Warn(ctx, "session restore: stored record incomplete, discarding", "error", err)
		} else {
			restored = &u
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// If something already mutated the session (a login completing before
	// restore, in principle), keep its result and only clear the flag.
	if m.gen == gen && restored != nil {
		m.user = restored
	}
	m.loading = false
}

// Login authenticates against the backend. On success the user record is
// persisted and becomes the current user. On a server rejection or network
// failure the returned error carries the message to display and the session
// is left exactly as it was.
func (m *sessionManager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	u, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	return m.commit(ctx, gen, u)
}

// Signup has the same contract as Login but creates the account first.
// Form-level validation happens before this call; a server-side rejection
// still comes back as an ordinary error result.
func (m *sessionManager) Signup(ctx context.Context, data models.SignupData) error {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	u, err := m.api.Signup(ctx, data)
	if err != nil {
		return err
	}

	return m.commit(ctx, gen, u)
}

// commit installs u as the current user if no other mutation won the race
// while the network call was in flight.
func (m *sessionManager) commit(ctx context.Context, gen uint64, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != gen {
		m.log.Warn(ctx, "session commit discarded: a newer operation completed first", "user_id", u.ID)
		return ErrSuperseded
	}
	m.gen++

	m.persist(ctx, u)
	m.user = u
	return nil
}

// Logout clears the persisted record and the in-memory user. Calling it
// while already anonymous is a no-op. Storage failures are logged only;
// the in-memory session is cleared regardless.
func (m *sessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	if err := m.getSessionRepo().Clear(ctx); err != nil {
		m.log.Error(ctx, "logout: failed to clear session store", "error", err)
	}
	m.user = nil
}

// UpdateUser replaces the current user record wholesale, in storage and in
// memory. The caller supplies a complete record with identity fields intact.
func (m *sessionManager) UpdateUser(ctx context.Context, u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.persist(ctx, &u)
	m.user = &u
}

// persist writes the user record and its write timestamp in one transaction.
// Failures are logged and swallowed: local persistence is best effort and
// never interrupts a user-facing flow. Callers must hold mu.
func (m *sessionManager) persist(ctx context.Context, u *models.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		m.log.Error(ctx, "session persist: marshal failed", "error", err)
		return
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessionrepo.KeyUser, raw); err != nil {
			return err
		}
		return repo.Set(ctx, sessionrepo.KeySavedAt, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		m.log.Error(ctx, "session persist: storage write failed", "user_id", u.ID, "error", err)
	}
}

// CurrentUser returns a copy of the current user, or nil when anonymous.
func (m *sessionManager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *sessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *sessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.loading:
		return StateLoading
	case m.user != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}
