// Package session owns the in-process authentication state: the bearer
// token and the cached profile of the signed-in user. It is the single
// source of truth for "is somebody logged in, and who"; everything else
// (the route guard, the command layer, the gateway's token source) asks
// this package instead of keeping its own copy.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/estatekeeper/internal/client/credstore"
	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/client/services"
	"github.com/dmitrijs2005/estatekeeper/internal/logging"
)

// State is the snapshot delivered to subscribers on every transition.
type State struct {
	SignedIn bool
	Loading  bool
}

// Manager holds the session and serializes every auth-mutating operation,
// so a sign-out can never interleave with an in-flight sign-in and leave
// the final state ambiguous.
type Manager struct {
	store credstore.Store
	auth  services.AuthService
	log   logging.Logger

	mu      sync.Mutex
	token   string
	user    *models.User
	loading bool

	authMu        sync.Mutex
	bootstrapOnce sync.Once
	ready         chan struct{}

	subsMu sync.Mutex
	subs   []func(State)
}

// NewManager builds a Manager in the loading state; call Bootstrap to load
// the persisted session.
func NewManager(store credstore.Store, auth services.AuthService, log logging.Logger) *Manager {
	return &Manager{
		store:   store,
		auth:    auth,
		log:     log.With("component", "session"),
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Bootstrap loads the persisted token and cached profile exactly once.
// Storage failures degrade to the logged-out state and are never returned:
// an unreadable credential store must not prevent app startup. On
// completion (either way) Loading turns false, the Ready channel closes,
// and subscribers are notified.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.bootstrapOnce.Do(func() {
		token, err := m.store.Token(ctx)
		if err != nil {
			if !isNotFound(err) {
				m.log.Warn(ctx, "credential store unreadable, starting logged out", "error", err)
			}
			token = ""
		}

		user, err := m.store.User(ctx)
		if err != nil {
			// The profile is a cache; its absence is independent of the
			// token and never blocks a restored session.
			user = nil
		}

		m.mu.Lock()
		m.token = token
		m.user = user
		m.loading = false
		m.mu.Unlock()

		close(m.ready)
		m.notify()
	})
}

// Ready is closed once Bootstrap has finished; the caller dismisses its
// splash/loading surface on it.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// SignIn authenticates and, on success, installs the returned token and
// profile. On failure the session is left exactly as it was and the error
// is returned untouched for user-facing display.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	token, user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()

	if user != nil {
		if serr := m.store.SetUser(ctx, user); serr != nil {
			m.log.Warn(ctx, "caching profile failed", "error", serr)
		}
	}

	m.notify()
	return nil
}

// Register creates an account and installs the returned token. The backend
// returns no profile here, so User() stays nil until the next sign-in or
// profile update; the user id is recovered from the token claims so the
// my-listings query works right away.
func (m *Manager) Register(ctx context.Context, email, password, name, phone string) error {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	token, err := m.auth.Register(ctx, email, password, name, phone)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.token = token
	m.user = nil
	m.mu.Unlock()

	if id, cerr := userIDFromToken(token); cerr == nil {
		if serr := m.store.SetUserID(ctx, id); serr != nil {
			m.log.Warn(ctx, "caching user id failed", "error", serr)
		}
	} else {
		m.log.Warn(ctx, "no user id in token claims", "error", cerr)
	}

	m.notify()
	return nil
}

// SignOut clears the session unconditionally. The server-side logout is
// best-effort: its failure is logged and ignored, the local state is gone
// either way.
func (m *Manager) SignOut(ctx context.Context) {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	if err := m.auth.Logout(ctx); err != nil {
		m.log.Warn(ctx, "logout call failed, clearing session anyway", "error", err)
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing credential store failed", "error", err)
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	m.notify()
}

// UpdateUser applies a partial profile update and refreshes the cached
// profile in memory and in the credential store.
func (m *Manager) UpdateUser(ctx context.Context, patch services.UserPatch) error {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	id := m.UserID(ctx)
	if id == "" {
		return ErrNoUserID
	}

	user, err := m.auth.UpdateProfile(ctx, id, patch)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	if serr := m.store.SetUser(ctx, user); serr != nil {
		m.log.Warn(ctx, "caching profile failed", "error", serr)
	}
	if serr := m.store.SetUserID(ctx, user.ID); serr != nil {
		m.log.Warn(ctx, "caching user id failed", "error", serr)
	}

	m.notify()
	return nil
}

// Token returns the current bearer token. The second result is false when
// nobody is signed in. This is the gateway's TokenSource.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// User returns the cached profile, or nil. May legitimately be nil while a
// token is present (fresh registration, partial bootstrap).
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// UserID resolves the signed-in user's id: cached profile first, then token
// claims, then the persisted id. Empty when signed out.
func (m *Manager) UserID(ctx context.Context) string {
	m.mu.Lock()
	user, token := m.user, m.token
	m.mu.Unlock()

	if user != nil && user.ID != "" {
		return user.ID
	}
	if token != "" {
		if id, err := userIDFromToken(token); err == nil {
			return id
		}
	}
	if id, err := m.store.UserID(ctx); err == nil {
		return id
	}
	return ""
}

// SignedIn reports whether a token is present.
func (m *Manager) SignedIn() bool {
	_, ok := m.Token()
	return ok
}

// Loading reports whether the initial bootstrap is still in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{SignedIn: m.token != "", Loading: m.loading}
}

// Subscribe registers fn to be called, in registration order, after every
// session transition (bootstrap completion, sign-in, register, sign-out,
// profile update). The route guard is the intended single subscriber.
func (m *Manager) Subscribe(fn func(State)) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify() {
	state := m.State()

	m.subsMu.Lock()
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.subsMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
