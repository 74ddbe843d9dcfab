package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairingToken_RoundTrip(t *testing.T) {
	token, err := GeneratePairingToken("device-a", time.Minute, "shared-pairing-key")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	deviceID, err := ValidatePairingToken(token, "shared-pairing-key")
	require.NoError(t, err)
	assert.Equal(t, "device-a", deviceID)
}

func TestGeneratePairingToken_InvalidParams(t *testing.T) {
	_, err := GeneratePairingToken("", time.Minute, "key")
	assert.Error(t, err)

	_, err = GeneratePairingToken("device-a", 0, "key")
	assert.Error(t, err)

	_, err = GeneratePairingToken("device-a", time.Minute, "")
	assert.Error(t, err)
}

func TestValidatePairingToken_WrongKey(t *testing.T) {
	token, err := GeneratePairingToken("device-a", time.Minute, "right-key")
	require.NoError(t, err)

	_, err = ValidatePairingToken(token, "wrong-key")
	assert.Error(t, err)
}

func TestValidatePairingToken_Expired(t *testing.T) {
	token, err := GeneratePairingToken("device-a", -time.Minute, "key")
	require.NoError(t, err)

	_, err = ValidatePairingToken(token, "key")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ParseBearerToken("abc123")
	assert.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	assert.Error(t, err)
}

func TestUUIDGenerator_UniqueNonEmpty(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
