package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIssueAndValidateToken(t *testing.T) {
	service := NewService("test-secret", time.Hour, zap.NewNop())

	token, user, err := service.IssueToken("Priya", RoleLoadOwner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed.ID)
	assert.Equal(t, "Priya", parsed.Name)
	assert.Equal(t, RoleLoadOwner, parsed.Role)
}

func TestIssueTokenRejectsInvalidRole(t *testing.T) {
	service := NewService("test-secret", time.Hour, zap.NewNop())

	_, _, err := service.IssueToken("Priya", Role("admin"))
	assert.Error(t, err)

	_, _, err = service.IssueToken("", RoleDriver)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour, zap.NewNop())
	verifier := NewService("secret-b", time.Hour, zap.NewNop())

	token, _, err := issuer.IssueToken("Priya", RoleDriver)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := NewService("test-secret", -time.Minute, zap.NewNop())

	token, _, err := service.IssueToken("Priya", RoleFleetManager)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}
