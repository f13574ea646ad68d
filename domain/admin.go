// Package dmn holds the site's domain types: the admin account and contact
// messages.
package dmn

import (
	"errors"
	"regexp"

	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3
	passwordHashCost         = 14

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20
)

var (
	usernameRegex = regexp.MustCompile(usernamePattern)

	ErrUsernameTooShort    = errors.New("username too short")
	ErrUsernameTooLong     = errors.New("username too long")
	ErrInvalidUsername     = errors.New("invalid username format")
	ErrWeakPassword        = errors.New("weak password")
	ErrInvalidPasswordHash = errors.New("invalid password hash")
)

// Admin is the single account allowed to read archived messages.
type Admin struct {
	Username     string
	PasswordHash string
}

// NewAdmin builds an Admin from configured credentials. The hash must be a
// bcrypt hash, usually produced by HashPassword.
func NewAdmin(username, passwordHash string) (*Admin, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, ErrInvalidPasswordHash
	}
	return &Admin{Username: username, PasswordHash: passwordHash}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (a *Admin) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// HashPassword checks the strength of password and returns its bcrypt hash.
func HashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(bytes), err
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}
