package models

// EncryptedPacket is the outer wire envelope of every sync exchange. The
// plaintext message (SyncRequest or SyncResponse) is serialized to JSON,
// AES-256-GCM encrypted with the session encryption key, then authenticated
// a second time with HMAC-SHA256 over nonce ‖ ciphertext using the session
// authentication key.
//
// Nonce, Ciphertext and HMAC are base64 (standard encoding) on the wire.
type EncryptedPacket struct {
	// DeviceID identifies the sending device so the receiver can locate
	// the matching session without decrypting anything.
	DeviceID string `json:"device_id"`

	// Nonce is the fresh 96-bit GCM nonce drawn for this packet.
	Nonce string `json:"nonce"`

	// Ciphertext is the GCM output including the 128-bit tag.
	Ciphertext string `json:"ciphertext"`

	// HMAC is the defense-in-depth authenticator over nonce ‖ ciphertext.
	// Verified in constant time before GCM decryption is attempted.
	HMAC string `json:"hmac"`

	// Timestamp is the sender's Unix time at encryption.
	Timestamp int64 `json:"timestamp"`
}
