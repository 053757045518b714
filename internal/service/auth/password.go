package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Compare(hashedPassword, password string) error
}

// bcryptVerifier verifies passwords hashed with bcrypt.
type bcryptVerifier struct{}

// NewBcryptVerifier creates a PasswordVerifier backed by bcrypt.
func NewBcryptVerifier() PasswordVerifier {
	return bcryptVerifier{}
}

// Compare returns ErrInvalidCredentials when the password does not
// match the hash.
func (bcryptVerifier) Compare(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
