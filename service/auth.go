package service

import (
	"crypto/subtle"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
)

const defaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoAdmin            = errors.New("admin account is not configured")
)

// Auth signs in the single configured admin.
type Auth struct {
	admin     *dmn.Admin
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
}

// NewAuthService creates an Auth issuing tokens that live for a day.
func NewAuthService(admin *dmn.Admin, tokenizer i.Tokenizer) (*Auth, error) {
	if admin == nil {
		return nil, ErrNoAdmin
	}
	if tokenizer == nil {
		return nil, errors.New("tokenizer is required")
	}
	return &Auth{
		admin:     admin,
		tokenizer: tokenizer,
		tokenTTL:  defaultTokenTTL,
	}, nil
}

func (a *Auth) SignIn(username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username)) != 1 {
		return "", ErrInvalidCredentials
	}

	if !a.admin.VerifyPassword(password) {
		return "", ErrInvalidCredentials
	}

	return a.tokenizer.Generate(map[string]interface{}{
		"username": a.admin.Username,
		"role":     "admin",
	}, a.tokenTTL)
}
