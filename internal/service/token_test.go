package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	principal, ok := tokens.Verify(tokens.CookieValue(token))
	require.True(t, ok)
	assert.Equal(t, int64(7), principal.UserID)
	assert.Equal(t, "alice", principal.Username)
}

func TestTokenService_CookieValueCarriesScheme(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	assert.Equal(t, "Bearer abc", tokens.CookieValue("abc"))
}

func TestTokenService_VerifyExpired(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)

	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	_, ok := tokens.Verify(tokens.CookieValue(token))
	assert.False(t, ok)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("right-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)

	token, err := issuer.Issue(7, "alice")
	require.NoError(t, err)

	_, ok := verifier.Verify(verifier.CookieValue(token))
	assert.False(t, ok)
}

func TestTokenService_VerifyRejectsBadCookieValues(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Issue(7, "alice")
	require.NoError(t, err)

	cases := map[string]string{
		"empty":         "",
		"no scheme":     token,
		"wrong scheme":  "Basic " + token,
		"scheme only":   "Bearer ",
		"malformed":     "Bearer not.a.jwt",
		"garbage":       "Bearer xxxx",
		"leading space": " Bearer " + token,
	}
	for name, value := range cases {
		_, ok := tokens.Verify(value)
		assert.False(t, ok, name)
	}
}

func TestTokenService_TTL(t *testing.T) {
	tokens := NewTokenService("test-secret", 42*time.Second)
	assert.Equal(t, 42*time.Second, tokens.TTL())
}
