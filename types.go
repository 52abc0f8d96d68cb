package helpdesk

import (
	"context"
	"fmt"

	"github.com/goliatone/go-router"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// RequestContext is the slice of the router context the session layer
// touches: the request scoped context plus the cookie jar. router.Context
// satisfies it, and tests can provide a small fake.
type RequestContext interface {
	Context() context.Context
	Cookies(key string, defaultValue ...string) string
	Cookie(cookie *router.Cookie)
}

// SessionStore binds a session token to the client. Set and Clear are
// best-effort: failures are reported to the event sink, never propagated.
type SessionStore interface {
	SetSession(rc RequestContext, token string)
	GetSession(rc RequestContext) string
	ClearSession(rc RequestContext)
}

// TokenService signs and validates session tokens
type TokenService interface {
	Sign(userID string) (string, error)
	SignClaims(claims *SessionClaims) (string, error)
	Validate(token string) (*SessionClaims, error)
}

// IdentityResolver derives the authenticated user from the request, or
// nil when there is no usable session.
type IdentityResolver interface {
	Resolve(rc RequestContext) *CurrentUser
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetCookieName() string
	GetCookieSecure() bool
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] HELPDESK "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] HELPDESK "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] HELPDESK "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] HELPDESK "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
