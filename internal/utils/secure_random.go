package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RefreshTokenBytes is the entropy of an issued refresh token. Hex encoding doubles it on the wire.
const RefreshTokenBytes = 32

// NewRefreshToken returns a fresh opaque refresh token. Only its SHA256 digest is persisted.
func NewRefreshToken() (string, error) {
	return randomHex(RefreshTokenBytes)
}

// IsRefreshTokenShape reports whether raw could have been issued by NewRefreshToken.
func IsRefreshTokenShape(raw string) bool {
	if len(raw) != 2*RefreshTokenBytes {
		return false
	}
	_, err := hex.DecodeString(raw)
	return err == nil
}

func randomHex(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("random length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
