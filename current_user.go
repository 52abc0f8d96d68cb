package helpdesk

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// tokenSnippetLen caps how much of a failing token reaches the sink. The
// full credential is never logged.
const tokenSnippetLen = 10

// CurrentUserResolver derives the authenticated user from the current
// request. Every failure mode collapses to nil: an invalid, expired, or
// orphaned session is equivalent to not being logged in, and the resolver
// never returns an error into calling code since it gates every
// protected action.
type CurrentUserResolver struct {
	sessions SessionStore
	tokens   TokenService
	users    UserStore
	logger   Logger
	events   Sink
}

var _ IdentityResolver = (*CurrentUserResolver)(nil)

// NewCurrentUserResolver returns a resolver over the given session store,
// token service, and user store.
func NewCurrentUserResolver(sessions SessionStore, tokens TokenService, users UserStore) *CurrentUserResolver {
	return &CurrentUserResolver{
		sessions: sessions,
		tokens:   tokens,
		users:    users,
		logger:   defLogger{},
		events:   noopSink{},
	}
}

func (r *CurrentUserResolver) WithLogger(logger Logger) *CurrentUserResolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

func (r *CurrentUserResolver) WithSink(sink Sink) *CurrentUserResolver {
	r.events = normalizeSink(sink)
	return r
}

// Resolve returns the current user projection {id, email, name}, or nil
// when the request carries no usable session.
func (r *CurrentUserResolver) Resolve(rc RequestContext) *CurrentUser {
	token := r.sessions.GetSession(rc)
	if token == "" {
		return nil
	}

	claims, err := r.tokens.Validate(token)
	if err != nil {
		snippet := token
		if len(snippet) > tokenSnippetLen {
			snippet = snippet[:tokenSnippetLen]
		}
		emitEvent(rc.Context(), r.events, r.logger, Event{
			Message:  "Token decryption failed",
			Category: EventCategoryAuth,
			Severity: SeverityError,
			Metadata: map[string]any{"tokenSnippet": snippet},
			Cause:    err,
		})
		return nil
	}

	uid, err := uuid.Parse(claims.UserID())
	if err != nil {
		r.logger.Debug("session claims carry a non uuid user id: %s", claims.UserID())
		return nil
	}

	user, err := r.users.FindByID(rc.Context(), uid)
	if err != nil {
		// user deleted after token issuance is a normal miss; anything
		// else is an infrastructure failure worth a diagnostic
		if !repository.IsRecordNotFound(err) {
			emitEvent(rc.Context(), r.events, r.logger, Event{
				Message:  "Error getting the current user",
				Category: EventCategoryAuth,
				Severity: SeverityError,
				Metadata: map[string]any{"user_id": uid.String()},
				Cause:    err,
			})
		}
		return nil
	}

	if user == nil {
		return nil
	}

	return &CurrentUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
