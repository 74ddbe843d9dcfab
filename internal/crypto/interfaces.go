package crypto

import "crypto/ecdh"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Keyring owns the asymmetric side of session establishment: ephemeral key
// generation, ECDH agreement, and session-key derivation. All returned key
// material is wrapped in [Secret] so it can be wiped on release.
type Keyring interface {
	// GenerateEphemeral returns a fresh P-256 key pair for one handshake.
	GenerateEphemeral() (*ecdh.PrivateKey, error)

	// SharedSecret runs ECDH between priv and the peer's public key given
	// in uncompressed point form. Returns ErrKeyExchange if the peer key
	// is not a valid curve point or the agreement degenerates to zero.
	SharedSecret(priv *ecdh.PrivateKey, peerPublicKey []byte) (*Secret, error)

	// DeriveSessionKeys expands secret into a 256-bit encryption key and a
	// 256-bit authentication key using HMAC-SHA256 extract-then-expand
	// with the given salt and info string.
	DeriveSessionKeys(secret *Secret, salt []byte, info string) (encKey, authKey *Secret, err error)
}
