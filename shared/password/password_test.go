package password_test

import (
	"strings"
	"testing"

	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		password string
		err      error
	}{
		{name: "valid", password: "frontdesk42"},
		{name: "unicode letters", password: "пароль2025"},
		{name: "empty", password: "", err: password.ErrEmptyPassword},
		{name: "too short", password: "ab12", err: password.ErrTooShort},
		{name: "too long", password: strings.Repeat("a1", 40), err: password.ErrTooLong},
		{name: "letters only", password: "lobbylounge", err: password.ErrTooWeak},
		{name: "digits only", password: "1234567890", err: password.ErrTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, password.Check(tt.password), tt.err)
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("checkin2025")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, password.Verify("checkin2025", hash))
	assert.ErrorIs(t, password.Verify("checkout2025", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("checkin2025", ""), password.ErrInvalidPassword)
}

func TestHash_RejectsPolicyViolation(t *testing.T) {
	hash, err := password.Hash("short1")

	assert.ErrorIs(t, err, password.ErrTooShort)
	assert.Empty(t, hash)
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("roomservice7")
	require.NoError(t, err)

	second, err := password.Hash("roomservice7")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("checkin2025", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
