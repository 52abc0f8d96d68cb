package helpdesk

import (
	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor used for new accounts.
const passwordCost = 10

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(h), err
}

// DefaultPasswordAuthenticator implements PasswordAuthenticator over the
// package level bcrypt helpers.
type DefaultPasswordAuthenticator struct{}

func (DefaultPasswordAuthenticator) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (DefaultPasswordAuthenticator) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
