package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewManager("test-secret", 60)

	token, err := manager.Generate(42, "reader")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reader", claims.Username)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 60).Generate(1, "user")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 60).Validate(token)
	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -1)

	token, err := manager.Generate(1, "user")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", 60).Validate("not.a.token")
	assert.Error(t, err)
}
