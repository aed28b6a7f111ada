package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned when a token is requested in guest mode.
var ErrNoSession = errors.New("no active session")

// TokenSource yields bearer tokens for the current identity. The identity
// provider itself is an external collaborator.
type TokenSource interface {
	Token(ctx context.Context, forceRefresh bool) (string, error)
}

type staticTokenSource struct {
	token string
}

// StaticToken returns a TokenSource that always yields the given token.
func StaticToken(token string) TokenSource {
	return staticTokenSource{token: token}
}

func (s staticTokenSource) Token(_ context.Context, _ bool) (string, error) {
	if s.token == "" {
		return "", ErrNoSession
	}
	return s.token, nil
}

// Manager tracks whether a user session exists and notifies subscribers on
// sign-in and sign-out transitions. It implements port.SessionProvider.
type Manager struct {
	mu   sync.RWMutex
	src  TokenSource
	subs []func(signedIn bool)
}

func NewManager() *Manager {
	return &Manager{}
}

// Subscribe registers an observer for sign-in/sign-out transitions.
// Subscribers run synchronously on the goroutine that flips the session.
func (m *Manager) Subscribe(fn func(signedIn bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// SignIn installs the token source. Observers fire only when this is an
// actual guest-to-session transition.
func (m *Manager) SignIn(src TokenSource) {
	m.mu.Lock()
	wasSignedIn := m.src != nil
	m.src = src
	subs := append(([]func(bool))(nil), m.subs...)
	m.mu.Unlock()

	if wasSignedIn {
		return
	}
	for _, fn := range subs {
		fn(true)
	}
}

// SignOut drops the session. Observers fire only on an actual transition.
func (m *Manager) SignOut() {
	m.mu.Lock()
	wasSignedIn := m.src != nil
	m.src = nil
	subs := append(([]func(bool))(nil), m.subs...)
	m.mu.Unlock()

	if !wasSignedIn {
		return
	}
	for _, fn := range subs {
		fn(false)
	}
}

func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.src != nil
}

func (m *Manager) Token(ctx context.Context, forceRefresh bool) (string, error) {
	m.mu.RLock()
	src := m.src
	m.mu.RUnlock()

	if src == nil {
		return "", ErrNoSession
	}
	return src.Token(ctx, forceRefresh)
}
