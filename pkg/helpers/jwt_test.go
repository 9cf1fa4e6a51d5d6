package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("user-1", "e@e.com", "employee")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "e@e.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate("u", "e@e.com", "admin")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, _, err := m.Generate("u", "e@e.com", "admin")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}
