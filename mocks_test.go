package helpdesk_test

import (
	"context"
	"sync"
	"time"

	helpdesk "github.com/goliatone/go-helpdesk"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeRequestContext implements helpdesk.RequestContext over an in-memory
// cookie jar so flows can run without a live server.
type fakeRequestContext struct {
	ctx     context.Context
	cookies map[string]string
	written []*router.Cookie
}

func newFakeRequestContext() *fakeRequestContext {
	return &fakeRequestContext{
		ctx:     context.Background(),
		cookies: map[string]string{},
	}
}

func (f *fakeRequestContext) Context() context.Context {
	return f.ctx
}

func (f *fakeRequestContext) Cookies(key string, defaultValue ...string) string {
	if v, ok := f.cookies[key]; ok && v != "" {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeRequestContext) Cookie(c *router.Cookie) {
	f.written = append(f.written, c)
	if c.Value == "" || c.Expires.Before(time.Now()) {
		delete(f.cookies, c.Name)
		return
	}
	f.cookies[c.Name] = c.Value
}

func (f *fakeRequestContext) lastCookie() *router.Cookie {
	if len(f.written) == 0 {
		return nil
	}
	return f.written[len(f.written)-1]
}

// panicCookieContext simulates a broken cookie jar.
type panicCookieContext struct {
	*fakeRequestContext
}

func (p panicCookieContext) Cookie(*router.Cookie) {
	panic("cookie jar unavailable")
}

// captureSink records every event it sees.
type captureSink struct {
	mu     sync.Mutex
	events []helpdesk.Event
}

func (s *captureSink) Record(_ context.Context, e helpdesk.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *captureSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Message)
	}
	return out
}

func (s *captureSink) has(message string) bool {
	for _, m := range s.messages() {
		if m == message {
			return true
		}
	}
	return false
}

// panicSink proves sinks can never break a flow.
type panicSink struct{}

func (panicSink) Record(context.Context, helpdesk.Event) error {
	panic("sink exploded")
}

// MockTokenService implements helpdesk.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Sign(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) SignClaims(claims *helpdesk.SessionClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (*helpdesk.SessionClaims, error) {
	args := m.Called(token)
	var claims *helpdesk.SessionClaims
	if v := args.Get(0); v != nil {
		claims = v.(*helpdesk.SessionClaims)
	}
	return claims, args.Error(1)
}

// memUsers is an in-memory helpdesk.UserStore.
type memUsers struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*helpdesk.User
	byEmail  map[string]*helpdesk.User
	failWith error
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID:    map[uuid.UUID]*helpdesk.User{},
		byEmail: map[string]*helpdesk.User{},
	}
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*helpdesk.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.NewRecordNotFound()
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*helpdesk.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, repository.NewRecordNotFound()
}

func (m *memUsers) Register(_ context.Context, user *helpdesk.User) (*helpdesk.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *memUsers) add(user *helpdesk.User) *helpdesk.User {
	u, _ := m.Register(context.Background(), user)
	return u
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// memTickets is an in-memory helpdesk.TicketStore.
type memTickets struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*helpdesk.Ticket
	order    []uuid.UUID
	failWith error
}

func newMemTickets() *memTickets {
	return &memTickets{byID: map[uuid.UUID]*helpdesk.Ticket{}}
}

func (m *memTickets) Open(_ context.Context, t *helpdesk.Ticket) (*helpdesk.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = helpdesk.TicketOpen
	}
	now := time.Now()
	t.CreatedAt = &now
	m.byID[t.ID] = t
	m.order = append(m.order, t.ID)
	return t, nil
}

func (m *memTickets) FindByID(_ context.Context, id uuid.UUID) (*helpdesk.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if t, ok := m.byID[id]; ok {
		return t, nil
	}
	return nil, repository.NewRecordNotFound()
}

func (m *memTickets) UpdateStatus(_ context.Context, id uuid.UUID, status helpdesk.TicketStatus) (*helpdesk.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	t, ok := m.byID[id]
	if !ok {
		return nil, repository.NewRecordNotFound()
	}
	t.Status = status
	return t, nil
}

func (m *memTickets) ListByOwner(_ context.Context, owner uuid.UUID) ([]*helpdesk.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*helpdesk.Ticket
	for i := len(m.order) - 1; i >= 0; i-- {
		if t := m.byID[m.order[i]]; t.OwnerID == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTickets) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// recordingRevalidator captures paths flushed after mutations.
type recordingRevalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingRevalidator) Revalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingRevalidator) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.paths...)
}
