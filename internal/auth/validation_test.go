package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"dev@opsdesk.io",
		"first.last@example.co.uk",
		"user+tag@example.com",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"user@",
		"user@localhost",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Password1", true},
		{"password1!", true},
		{"PASSWORD1!", true},
		{"Pass word!", true},
		{"short1A", false},
		{"alllowercase", false},
		{"12345678", false},
		{strings.Repeat("Aa1", 25), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidatePassword(tt.password), tt.password)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Correct-horse1")
	assert.NoError(t, err)
	assert.NotEqual(t, "Correct-horse1", hash)

	assert.True(t, CheckPassword(hash, "Correct-horse1"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}
