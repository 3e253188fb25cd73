package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farehub/internal/password"
	"farehub/internal/service"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	token, err := tokens.GenerateToken("inspector")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "inspector", claims.Operator)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	issued, err := service.NewTokenService("secret-a", time.Hour).GenerateToken("inspector")
	require.NoError(t, err)

	_, err = service.NewTokenService("secret-b", time.Hour).ValidateToken(issued)
	require.Error(t, err)
}

func TestTokenService_EmptyOperator(t *testing.T) {
	_, err := service.NewTokenService("test-secret", time.Hour).GenerateToken("")
	require.Error(t, err)
}

func newOperatorAuth(t *testing.T, username, plainPassword string) *service.OperatorAuth {
	t.Helper()
	hasher := password.NewBcryptHasher(bcryptTestCost)
	hash, err := hasher.Hash(plainPassword)
	require.NoError(t, err)
	return service.NewOperatorAuth(
		username,
		hash,
		hasher,
		service.NewTokenService("test-secret", time.Hour),
		zap.NewNop(),
	)
}

// low cost keeps the bcrypt tests fast
const bcryptTestCost = 4

func TestOperatorAuth_Login(t *testing.T) {
	auth := newOperatorAuth(t, "inspector", "hunter2")

	token, err := auth.Login("inspector", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestOperatorAuth_RejectsBadCredentials(t *testing.T) {
	auth := newOperatorAuth(t, "inspector", "hunter2")

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "inspector", "hunter3"},
		{"wrong username", "intruder", "hunter2"},
		{"empty username", "", "hunter2"},
		{"empty password", "inspector", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Login(tc.username, tc.password)
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		})
	}
}
