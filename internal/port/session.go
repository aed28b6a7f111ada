package port

import "context"

// SessionProvider reports whether an authenticated identity is present and
// supplies its bearer token. Absence of a session implies guest mode.
type SessionProvider interface {
	Authenticated() bool

	// Token returns the current bearer token. With forceRefresh the provider
	// must obtain a fresh token instead of a cached one.
	Token(ctx context.Context, forceRefresh bool) (string, error)
}
