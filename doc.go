// Package helpdesk provides the authentication and session layer for a
// small support-ticket application: registration, login, logout, signed
// session tokens, and the ownership checks that gate every ticket
// mutation.
//
// Session model:
//   - Sessions are stateless. TokenService signs an HS256 JWT carrying the
//     user id with a fixed validity window (7 days by default) and nothing
//     is stored server side. Logout only removes the client's cookie; a
//     token that leaks stays valid until it expires naturally. There is no
//     revocation list by design.
//   - CookieSessionStore binds the token to the browser through an
//     httpOnly, SameSite=Lax cookie. Cookie writes are best-effort: a
//     failure is reported to the event sink but never aborts the enclosing
//     flow.
//   - CurrentUserResolver turns a request into a *CurrentUser or nil. An
//     invalid, expired, or orphaned token is indistinguishable from not
//     being logged in; the resolver never returns an error to its caller.
//
// Event sinks:
//   - Sink is a fire-and-forget audit emitter used by every flow to
//     describe validation failures, login attempts, and ticket mutations.
//     Sinks run best-effort (errors are logged, panics recovered) so you
//     can forward to a telemetry backend without blocking authentication.
//
// Flows:
//   - AuthActions and TicketActions return a Result{Success, Message}
//     with short, non-diagnostic messages. Login failures use a single
//     message for unknown accounts and wrong passwords so accounts cannot
//     be enumerated. Diagnostic detail only ever reaches the sink.
package helpdesk
