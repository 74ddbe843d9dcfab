package crypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateIdentity returns the device's long-term P-256 key pair,
// reading it from path or generating and persisting a new one on first run.
// The file holds the base64 private scalar with 0600 permissions; the public
// half is shared with peers once during pairing.
func LoadOrCreateIdentity(path string) (*ecdh.PrivateKey, error) {
	curve := ecdh.P256()

	data, err := os.ReadFile(path)
	if err == nil {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("decode identity key: %w", err)
		}
		priv, err := curve.NewPrivateKey(raw)
		wipe(raw)
		if err != nil {
			return nil, fmt.Errorf("parse identity key: %w", err)
		}
		return priv, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read identity key: %w", err)
	}

	priv, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate identity key: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create identity key dir: %w", err)
		}
	}

	encoded := base64.StdEncoding.EncodeToString(priv.Bytes())
	if err = os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("write identity key: %w", err)
	}

	return priv, nil
}
