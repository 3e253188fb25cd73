package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"farehub/internal/password"
)

// ErrInvalidCredentials represents an operator login failure.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// OperatorAuth checks operator credentials configured for the ops API and
// issues access tokens. Credentials come from config, not a user store; the
// ops surface has a single operator account.
type OperatorAuth struct {
	username     string
	passwordHash string
	hasher       password.Hasher
	tokens       *TokenService
	logger       *zap.Logger
}

// NewOperatorAuth builds the auth service.
func NewOperatorAuth(username, passwordHash string, hasher password.Hasher, tokens *TokenService, logger *zap.Logger) *OperatorAuth {
	return &OperatorAuth{
		username:     username,
		passwordHash: passwordHash,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login validates credentials and returns a bearer token.
func (a *OperatorAuth) Login(username, plainPassword string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || plainPassword == "" {
		return "", ErrInvalidCredentials
	}
	if username != a.username {
		return "", ErrInvalidCredentials
	}
	if err := a.hasher.Compare(a.passwordHash, plainPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := a.tokens.GenerateToken(username)
	if err != nil {
		return "", err
	}

	a.logger.Info("operator logged in", zap.String("operator", username))
	return token, nil
}
