package helpdesk

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// User-facing flow messages. Kept short and non-diagnostic; the login
// rejection is deliberately identical for unknown accounts and wrong
// passwords so valid emails cannot be enumerated.
const (
	MsgAllFieldsRequired     = "All fields are required"
	MsgUserAlreadyExists     = "User already exists"
	MsgRegistrationOK        = "Registration successful"
	MsgEmailPasswordRequired = "Email and password are required"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgLoginOK               = "Login successful"
	MsgLogoutOK              = "Logged out successful"
	MsgGenericFailure        = "Something went wrong, please try again"
)

// RegisterRequest payload
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules. Only presence is checked; the
// client is not trusted beyond that.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthActions orchestrates the register, login, and logout flows over the
// user store, the token service, and the session store. Every method
// returns a Result; unexpected failures are reported to the sink and
// converted to a generic message at this boundary.
type AuthActions struct {
	users    UserStore
	tokens   TokenService
	sessions SessionStore
	logger   Logger
	events   Sink
}

// NewAuthActions returns the auth flow orchestrator.
func NewAuthActions(users UserStore, tokens TokenService, sessions SessionStore) *AuthActions {
	return &AuthActions{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		logger:   defLogger{},
		events:   noopSink{},
	}
}

func (a *AuthActions) WithLogger(logger Logger) *AuthActions {
	if logger != nil {
		a.logger = logger
	}
	return a
}

func (a *AuthActions) WithSink(sink Sink) *AuthActions {
	a.events = normalizeSink(sink)
	return a
}

func (a *AuthActions) emit(rc RequestContext, event Event) {
	if event.Category == "" {
		event.Category = EventCategoryAuth
	}
	emitEvent(rc.Context(), a.events, a.logger, event)
}

// Register creates a new account and signs the user in. Registration
// doubles as auto-login: on success the session cookie is already set.
func (a *AuthActions) Register(rc RequestContext, req RegisterRequest) Result {
	ctx := rc.Context()

	if err := req.Validate(); err != nil {
		a.emit(rc, Event{
			Message:  "Validation Error: Missing register fields",
			Severity: SeverityWarning,
			Metadata: map[string]any{"name": req.Name, "email": req.Email},
		})
		return Result{Message: MsgAllFieldsRequired}
	}

	existing, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil && !repository.IsRecordNotFound(err) {
		a.emit(rc, Event{
			Message:  "Unexpected error during registration",
			Severity: SeverityError,
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	if existing != nil {
		a.emit(rc, Event{
			Message:  "Registration failed: User already exists - " + req.Email,
			Severity: SeverityWarning,
			Metadata: map[string]any{"email": req.Email},
		})
		return Result{Message: MsgUserAlreadyExists}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		a.emit(rc, Event{
			Message:  "Unexpected error during registration",
			Severity: SeverityError,
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	user, err := a.users.Register(ctx, &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		a.emit(rc, Event{
			Message:  "Unexpected error during registration",
			Severity: SeverityError,
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	// The user row exists from here on. A signing failure leaves the
	// account reachable through the login flow, so the two steps stay
	// separately failable instead of being wrapped in one transaction.
	token, err := a.tokens.Sign(user.ID.String())
	if err != nil {
		a.emit(rc, Event{
			Message:  "Token signing failed",
			Severity: SeverityError,
			Metadata: map[string]any{"user_id": user.ID.String()},
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	a.sessions.SetSession(rc, token)

	a.emit(rc, Event{
		Message:  "User registered successfully: " + user.Email,
		Severity: SeverityInfo,
		Metadata: map[string]any{"user_id": user.ID.String(), "email": user.Email},
	})

	return Result{Success: true, Message: MsgRegistrationOK}
}

// Login verifies credentials and establishes a session. Unknown accounts,
// accounts without a password hash, and wrong passwords all produce the
// same rejection.
func (a *AuthActions) Login(rc RequestContext, req LoginRequest) Result {
	ctx := rc.Context()

	if err := req.Validate(); err != nil {
		a.emit(rc, Event{
			Message:  "Validation error: Missing login fields",
			Severity: SeverityWarning,
			Metadata: map[string]any{"email": req.Email},
		})
		return Result{Message: MsgEmailPasswordRequired}
	}

	user, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			a.emit(rc, Event{
				Message:  "Login failed: User not found - " + req.Email,
				Severity: SeverityWarning,
				Metadata: map[string]any{"email": req.Email},
			})
			return Result{Message: MsgInvalidCredentials}
		}

		a.emit(rc, Event{
			Message:  "Unexpected error during login",
			Severity: SeverityError,
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	// externally provisioned accounts may have no local password hash
	if user == nil || user.PasswordHash == "" {
		a.emit(rc, Event{
			Message:  "Login failed: User not found - " + req.Email,
			Severity: SeverityWarning,
			Metadata: map[string]any{"email": req.Email},
		})
		return Result{Message: MsgInvalidCredentials}
	}

	if err := ComparePasswordAndHash(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			a.emit(rc, Event{
				Message:  "Login failed: Incorrect password",
				Severity: SeverityWarning,
				Metadata: map[string]any{"email": req.Email},
			})
			return Result{Message: MsgInvalidCredentials}
		}

		a.emit(rc, Event{
			Message:  "Unexpected error during login",
			Severity: SeverityError,
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	token, err := a.tokens.Sign(user.ID.String())
	if err != nil {
		a.emit(rc, Event{
			Message:  "Token signing failed",
			Severity: SeverityError,
			Metadata: map[string]any{"user_id": user.ID.String()},
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	a.sessions.SetSession(rc, token)

	return Result{Success: true, Message: MsgLoginOK}
}

// Logout clears the session cookie unconditionally. Clearing an absent
// session still succeeds; stateless tokens mean the server only ever
// removes the client's copy.
func (a *AuthActions) Logout(rc RequestContext) Result {
	a.sessions.ClearSession(rc)

	a.emit(rc, Event{
		Message:  "User logged out successfully",
		Severity: SeverityInfo,
	})

	return Result{Success: true, Message: MsgLogoutOK}
}
