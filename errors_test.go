package helpdesk_test

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-errors"
	helpdesk "github.com/goliatone/go-helpdesk"
	"github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/assert"
)

// Repository misses carry their own category; the flows must detect them
// with the repository predicate, or every miss would surface as a generic
// failure instead of "not found" semantics.
func TestRepositoryMissDetection(t *testing.T) {
	assert.True(t, repository.IsRecordNotFound(repository.NewRecordNotFound()))
	assert.False(t, repository.IsRecordNotFound(assert.AnError))
	assert.False(t, errors.IsNotFound(assert.AnError))
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, errors.CategoryAuth, helpdesk.ErrTokenExpired.Category)
	assert.Equal(t, errors.CategoryAuth, helpdesk.ErrTokenMalformed.Category)
	assert.Equal(t, errors.CategoryAuth, helpdesk.ErrMismatchedHashAndPassword.Category)
	assert.Equal(t, errors.CategoryInternal, helpdesk.ErrSigningKeyMissing.Category)
	assert.Equal(t, errors.CategoryValidation, helpdesk.ErrNoEmptyString.Category)
	assert.Equal(t, errors.CategoryAuthz, helpdesk.ErrNotTicketOwner.Category)
	assert.Equal(t, errors.CategoryNotFound, helpdesk.ErrIdentityNotFound.Category)
}

func TestErrorTextCodes(t *testing.T) {
	assert.Equal(t, "TOKEN_EXPIRED", helpdesk.ErrTokenExpired.TextCode)
	assert.Equal(t, "TOKEN_MALFORMED", helpdesk.ErrTokenMalformed.TextCode)
	assert.Equal(t, "SIGNING_KEY_MISSING", helpdesk.ErrSigningKeyMissing.TextCode)
	assert.Equal(t, "NOT_TICKET_OWNER", helpdesk.ErrNotTicketOwner.TextCode)
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.False(t, helpdesk.IsTokenExpiredError(nil))
	assert.True(t, helpdesk.IsTokenExpiredError(helpdesk.ErrTokenExpired))
	assert.True(t, helpdesk.IsTokenExpiredError(fmt.Errorf("validate: %w", helpdesk.ErrTokenExpired)))
	assert.False(t, helpdesk.IsTokenExpiredError(helpdesk.ErrTokenMalformed))
}

func TestIsMalformedError(t *testing.T) {
	assert.False(t, helpdesk.IsMalformedError(nil))
	assert.True(t, helpdesk.IsMalformedError(helpdesk.ErrTokenMalformed))
	assert.True(t, helpdesk.IsMalformedError(fmt.Errorf("missing or malformed JWT")))
	assert.False(t, helpdesk.IsMalformedError(helpdesk.ErrTokenExpired))
}
