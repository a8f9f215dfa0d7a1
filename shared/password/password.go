package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost = bcrypt.DefaultCost

	MinLength = 8
	// MaxBytes is the longest input bcrypt hashes without truncation.
	MaxBytes = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooShort        = fmt.Errorf("password must be at least %d characters", MinLength)
	ErrTooLong         = fmt.Errorf("password must be at most %d bytes", MaxBytes)
	ErrTooWeak         = errors.New("password must contain a letter and a digit")
)

// Check enforces the account password policy.
func Check(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len([]rune(password)) < MinLength:
		return ErrTooShort
	case len(password) > MaxBytes:
		return ErrTooLong
	}

	var letter, digit bool

	for _, r := range password {
		letter = letter || unicode.IsLetter(r)
		digit = digit || unicode.IsDigit(r)
	}

	if !letter || !digit {
		return ErrTooWeak
	}

	return nil
}

// Hash returns the bcrypt hash of a password that passed Check.
func Hash(password string) (string, error) {
	if err := Check(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("failed to verify password: %w", err)
	}
}
