// Package session owns the authenticated identity of the running process.
//
// A Manager is either unauthenticated (no token, no claims) or authenticated
// (token and fully decoded claims). Every transition writes or clears the
// persisted token slot before the in-memory state changes, so the two never
// disagree after a call returns.
package session

import (
	"context"
	"fmt"
	"time"

	"moneybook/internal/log"
	"moneybook/internal/store"
)

// State is a snapshot of the session.
type State struct {
	Token  string
	Claims *Claims
}

// Authenticated reports whether claims are present.
func (s State) Authenticated() bool {
	return s.Claims != nil
}

type Manager struct {
	slot    store.Slot
	decoder Decoder
	now     func() time.Time
	logger  *log.Logger
	state   *store.Value[State]
}

type Option func(*Manager)

func WithDecoder(d Decoder) Option {
	return func(m *Manager) { m.decoder = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l.WithComponent(log.ComponentSession) }
}

// NewManager returns an unauthenticated manager persisting its token in slot.
func NewManager(slot store.Slot, opts ...Option) *Manager {
	m := &Manager{
		slot:    slot,
		decoder: NewJWTDecoder(),
		now:     time.Now,
		logger:  log.Discard(),
		state:   store.NewValue(State{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore reads the persisted token. A malformed or expired token is
// cleared and the session stays unauthenticated; neither is an error.
// Only a failure of the slot itself is returned.
func (m *Manager) Restore(ctx context.Context) error {
	token, ok, err := m.slot.Load(ctx)
	if err != nil {
		m.state.Set(State{})
		return fmt.Errorf("load token: %w", err)
	}
	if !ok || token == "" {
		m.state.Set(State{})
		return nil
	}

	claims, err := m.decoder.Decode(token)
	if err != nil {
		m.logger.WarnContext(ctx, "Dropping malformed persisted token",
			log.FieldOperation, log.OpRestore, log.FieldError, err)
		return m.drop(ctx)
	}
	if !claims.ValidAt(m.now()) {
		m.logger.WarnContext(ctx, "Dropping expired persisted token",
			log.FieldOperation, log.OpRestore,
			log.FieldSubjectID, claims.SubjectID,
			log.FieldExpiresAt, claims.Expiry().UTC())
		return m.drop(ctx)
	}

	m.state.Set(State{Token: token, Claims: &claims})
	m.logger.InfoContext(ctx, "Session restored",
		log.FieldSubjectID, claims.SubjectID,
		log.FieldExpiresAt, claims.Expiry().UTC())
	return nil
}

// Login decodes and persists token. A token that cannot be decoded is a
// fault of the caller: it is returned wrapped in ErrMalformedToken and
// nothing changes.
func (m *Manager) Login(ctx context.Context, token string) (Claims, error) {
	claims, err := m.decoder.Decode(token)
	if err != nil {
		return Claims{}, fmt.Errorf("login: %w", err)
	}
	if err := m.slot.Save(ctx, token); err != nil {
		return Claims{}, fmt.Errorf("persist token: %w", err)
	}

	m.state.Set(State{Token: token, Claims: &claims})
	m.logger.InfoContext(ctx, "Logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldSubjectID, claims.SubjectID)
	return claims, nil
}

// Logout clears the persisted token and the in-memory claims. Logging out
// of an unauthenticated session is a no-op that still clears the slot.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	prev := m.state.Get()
	m.state.Set(State{})
	if prev.Authenticated() {
		m.logger.InfoContext(ctx, "Logged out",
			log.FieldOperation, log.OpLogout,
			log.FieldSubjectID, prev.Claims.SubjectID)
	}
	return nil
}

// Revalidate applies the restore expiry rule to the live session and logs
// out when it has expired. It reports whether the session is still
// authenticated. Nothing calls it automatically.
func (m *Manager) Revalidate(ctx context.Context) (bool, error) {
	st := m.state.Get()
	if !st.Authenticated() {
		return false, nil
	}
	if st.Claims.ValidAt(m.now()) {
		return true, nil
	}
	if err := m.Logout(ctx); err != nil {
		return true, err
	}
	return false, nil
}

func (m *Manager) IsAuthenticated() bool {
	return m.state.Get().Authenticated()
}

// Claims returns the decoded claims when authenticated.
func (m *Manager) Claims() (Claims, bool) {
	st := m.state.Get()
	if st.Claims == nil {
		return Claims{}, false
	}
	return *st.Claims, true
}

// Token returns the bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	return m.state.Get().Token
}

// State returns the current snapshot.
func (m *Manager) State() State {
	return m.state.Get()
}

// Subscribe registers fn to run after every transition.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	return m.state.Subscribe(fn)
}

// drop clears the slot, then the in-memory state. The state is reset even
// when the clear fails, so a rejected token is never served.
func (m *Manager) drop(ctx context.Context) error {
	err := m.slot.Clear(ctx)
	m.state.Set(State{})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
