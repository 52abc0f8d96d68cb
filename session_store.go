package helpdesk

import (
	"fmt"
	"time"

	"github.com/goliatone/go-router"
)

// CookieSessionStore writes the session token to a scoped cookie:
// httpOnly, SameSite=Lax, path=/, secure in production, expiring with the
// token. Failures to write or clear are swallowed after being reported to
// the event sink; login must not hard-fail merely because the cookie
// could not be set.
type CookieSessionStore struct {
	cookieName string
	duration   time.Duration
	secure     bool
	logger     Logger
	events     Sink
}

var _ SessionStore = (*CookieSessionStore)(nil)

// NewCookieSessionStore returns a cookie-backed session store configured
// from the auth Config.
func NewCookieSessionStore(cfg Config) *CookieSessionStore {
	duration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		duration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	cookieName := cfg.GetCookieName()
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return &CookieSessionStore{
		cookieName: cookieName,
		duration:   duration,
		secure:     cfg.GetCookieSecure(),
		logger:     defLogger{},
		events:     noopSink{},
	}
}

func (s *CookieSessionStore) WithLogger(logger Logger) *CookieSessionStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *CookieSessionStore) WithSink(sink Sink) *CookieSessionStore {
	s.events = normalizeSink(sink)
	return s
}

// SetSession writes the session cookie. Best-effort: never propagates.
func (s *CookieSessionStore) SetSession(rc RequestContext, token string) {
	defer s.recoverCookieFailure(rc, "Failed to set cookie")

	rc.Cookie(&router.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.duration),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: "Lax",
	})
}

// GetSession reads the session token from the request cookie. An absent
// cookie is a normal outcome and yields the empty string.
func (s *CookieSessionStore) GetSession(rc RequestContext) string {
	return rc.Cookies(s.cookieName)
}

// ClearSession deletes the session cookie. Best-effort: never propagates.
func (s *CookieSessionStore) ClearSession(rc RequestContext) {
	defer s.recoverCookieFailure(rc, "Failed to remove the auth cookie")

	rc.Cookie(&router.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: "Lax",
	})
}

func (s *CookieSessionStore) recoverCookieFailure(rc RequestContext, msg string) {
	r := recover()
	if r == nil {
		return
	}

	s.logger.Error("%s: %v", msg, r)
	emitEvent(rc.Context(), s.events, s.logger, Event{
		Message:  msg,
		Category: EventCategoryAuth,
		Severity: SeverityError,
		Metadata: map[string]any{"panic": fmt.Sprint(r)},
	})
}
