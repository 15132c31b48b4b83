package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, expiry time.Duration) *Provider {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewProviderFromKeys(key, &key.PublicKey, expiry)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 10*time.Minute)

	token, err := p.Sign("u1")
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t, -time.Minute)

	token, err := p.Sign("u1")
	require.NoError(t, err)

	_, err = p.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t, time.Minute)

	_, err := p.Verify("not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongKey(t *testing.T) {
	signer := newTestProvider(t, time.Minute)
	verifier := newTestProvider(t, time.Minute)

	token, err := signer.Sign("u1")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResolveCaller_AnonymousOnFailure(t *testing.T) {
	p := newTestProvider(t, -time.Minute)
	token, err := p.Sign("u1")
	require.NoError(t, err)

	for _, bearer := range []string{"", "garbage", token} {
		caller := ResolveCaller(p, bearer)
		_, ok := caller.UserID()
		assert.False(t, ok, "bearer %q must resolve to anonymous", bearer)
	}
}

func TestResolveCaller_Authenticated(t *testing.T) {
	p := newTestProvider(t, time.Minute)
	token, err := p.Sign("u1")
	require.NoError(t, err)

	caller := ResolveCaller(p, token)
	userID, ok := caller.UserID()
	require.True(t, ok)
	assert.Equal(t, "u1", userID)
}

func TestRequireCaller_RejectsInvalid(t *testing.T) {
	p := newTestProvider(t, time.Minute)

	_, err := RequireCaller(p, "")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = RequireCaller(p, "garbage")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRequireCaller_RejectsExpired(t *testing.T) {
	p := newTestProvider(t, -time.Minute)
	token, err := p.Sign("u1")
	require.NoError(t, err)

	_, err = RequireCaller(p, token)
	require.ErrorIs(t, err, ErrTokenExpired)
}
