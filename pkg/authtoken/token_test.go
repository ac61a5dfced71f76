package authtoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = Config{Secret: "test-secret", Issuer: "vcard.link", TTL: time.Hour}

func TestMintParse_RoundTrip(t *testing.T) {
	token, err := Mint(testCfg, time.Now(), 42)
	require.NoError(t, err)

	userID, err := Parse(testCfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Mint(testCfg, time.Now(), 42)
	require.NoError(t, err)

	_, err = Parse(Config{Secret: "other", Issuer: testCfg.Issuer}, token)
	assert.Error(t, err, "yanlış secret")

	_, err = Parse(Config{Secret: testCfg.Secret, Issuer: "someone-else"}, token)
	assert.Error(t, err, "yanlış issuer")

	expired, err := Mint(testCfg, time.Now().Add(-2*time.Hour), 42)
	require.NoError(t, err)
	_, err = Parse(testCfg, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = Parse(testCfg, "not.a.token")
	assert.Error(t, err)
}

func TestMint_RequiresInputs(t *testing.T) {
	_, err := Mint(Config{}, time.Now(), 1)
	assert.Error(t, err)
	_, err = Mint(testCfg, time.Now(), 0)
	assert.Error(t, err)
}
