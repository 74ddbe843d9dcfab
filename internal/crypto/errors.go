package crypto

import "errors"

// Sentinel errors returned by the keyring and the transport codec. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrKeyExchange is returned when ECDH produces a degenerate (all-zero)
	// shared secret, which indicates an invalid-curve or small-subgroup
	// attack rather than an honest peer. Fatal to that handshake attempt
	// only; the next attempt starts from fresh ephemeral keys.
	ErrKeyExchange = errors.New("key exchange produced degenerate shared secret")

	// ErrAuthenticationFailed is returned when a packet's HMAC or GCM tag
	// does not verify. The packet is discarded without further processing.
	ErrAuthenticationFailed = errors.New("packet authentication failed")

	// ErrInvalidKeySize is returned when key material of the wrong length
	// is supplied to the codec.
	ErrInvalidKeySize = errors.New("invalid key size")
)
