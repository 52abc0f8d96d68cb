package helpdesk_test

import (
	"testing"
	"time"

	helpdesk "github.com/goliatone/go-helpdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSessionStore_SetSession(t *testing.T) {
	cfg := helpdesk.NewConfig("super-secret-key")
	store := helpdesk.NewCookieSessionStore(cfg)

	rc := newFakeRequestContext()
	store.SetSession(rc, "session-token")

	cookie := rc.lastCookie()
	require.NotNil(t, cookie)

	assert.Equal(t, helpdesk.DefaultCookieName, cookie.Name)
	assert.Equal(t, "session-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HTTPOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, "Lax", cookie.SameSite)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), cookie.Expires, time.Minute)

	assert.Equal(t, "session-token", store.GetSession(rc))
}

func TestCookieSessionStore_SecureCookie(t *testing.T) {
	cfg := helpdesk.NewConfig("super-secret-key", helpdesk.WithCookieSecure(true))
	store := helpdesk.NewCookieSessionStore(cfg)

	rc := newFakeRequestContext()
	store.SetSession(rc, "session-token")

	cookie := rc.lastCookie()
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestCookieSessionStore_CustomCookieName(t *testing.T) {
	cfg := helpdesk.NewConfig("super-secret-key", helpdesk.WithCookieName("hd-session"))
	store := helpdesk.NewCookieSessionStore(cfg)

	rc := newFakeRequestContext()
	store.SetSession(rc, "session-token")

	require.NotNil(t, rc.lastCookie())
	assert.Equal(t, "hd-session", rc.lastCookie().Name)
	assert.Equal(t, "session-token", store.GetSession(rc))
}

func TestCookieSessionStore_GetSessionAbsent(t *testing.T) {
	cfg := helpdesk.NewConfig("super-secret-key")
	store := helpdesk.NewCookieSessionStore(cfg)

	rc := newFakeRequestContext()
	assert.Equal(t, "", store.GetSession(rc))
}

func TestCookieSessionStore_ClearSession(t *testing.T) {
	cfg := helpdesk.NewConfig("super-secret-key")
	store := helpdesk.NewCookieSessionStore(cfg)

	rc := newFakeRequestContext()
	store.SetSession(rc, "session-token")
	require.Equal(t, "session-token", store.GetSession(rc))

	store.ClearSession(rc)

	assert.Equal(t, "", store.GetSession(rc))

	cookie := rc.lastCookie()
	require.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))

	// clearing again is harmless
	store.ClearSession(rc)
	assert.Equal(t, "", store.GetSession(rc))
}

func TestCookieSessionStore_BestEffortWrites(t *testing.T) {
	sink := &captureSink{}
	cfg := helpdesk.NewConfig("super-secret-key")
	store := helpdesk.NewCookieSessionStore(cfg).WithSink(sink)

	rc := panicCookieContext{newFakeRequestContext()}

	assert.NotPanics(t, func() {
		store.SetSession(rc, "session-token")
	})
	assert.True(t, sink.has("Failed to set cookie"))

	assert.NotPanics(t, func() {
		store.ClearSession(rc)
	})
	assert.True(t, sink.has("Failed to remove the auth cookie"))
}
