package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// DefaultIntervalMultiplier is applied to interval growth on a passing
// submission when the user has not configured their own factor.
const DefaultIntervalMultiplier = 2.0

// Common validation errors for User
var (
	ErrUserEmailEmpty    = errors.New("user email cannot be empty")
	ErrUserEmailInvalid  = errors.New("user email is not a valid address")
	ErrUserPasswordEmpty = errors.New("user hashed password cannot be empty")
	ErrInvalidMultiplier = errors.New("interval multiplier must be positive")
)

// User is an account that owns schedule states and problem lists.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	HashedPassword     string    `json:"-"`
	IntervalMultiplier float64   `json:"interval_multiplier"` // Growth factor for passing reviews
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUser creates a user with a fresh ID and the default interval
// multiplier. The password must already be hashed by the caller.
func NewUser(email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:                 uuid.New(),
		Email:              email,
		HashedPassword:     hashedPassword,
		IntervalMultiplier: DefaultIntervalMultiplier,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrUserEmailEmpty
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrUserEmailInvalid
	}

	if u.HashedPassword == "" {
		return ErrUserPasswordEmpty
	}

	if u.IntervalMultiplier <= 0 {
		return ErrInvalidMultiplier
	}

	return nil
}
