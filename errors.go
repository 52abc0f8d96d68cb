package helpdesk

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// ErrUnableToFindSession is the error when our request has no cookie
var ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryAuth).
	WithTextCode("SESSION_NOT_FOUND").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired means the session token's validity window has passed.
// Callers treat it as "no session", never as a hard failure.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers tampered, truncated, or otherwise undecodable
// tokens, including signature mismatches.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrSigningKeyMissing means AUTH_SECRET was never configured. Signing is
// fatal to the operation; the caller surfaces a generic failure.
var ErrSigningKeyMissing = errors.New("signing key is not configured", errors.CategoryInternal).
	WithTextCode("SIGNING_KEY_MISSING").
	WithCode(errors.CodeInternal)

// ErrMismatchedHashAndPassword password verification failed
var ErrMismatchedHashAndPassword = errors.New("invalid credentials provided", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty required values
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryValidation).
	WithTextCode("EMPTY_VALUE").
	WithCode(errors.CodeBadRequest)

// ErrNotTicketOwner is returned when a mutation targets a ticket the
// current user does not own.
var ErrNotTicketOwner = errors.New("ticket does not belong to the current user", errors.CategoryAuthz).
	WithTextCode("NOT_TICKET_OWNER").
	WithCode(errors.CodeForbidden)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
