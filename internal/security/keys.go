package security

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const derivedKeyLen = 32

// Key purposes; each yields an independent key from the same secret
const (
	PurposeVisitor = "studyaid visitor cookie"
	PurposeCSRF    = "studyaid csrf"
)

// DeriveKey expands the configured secret into a purpose-specific key with HKDF-SHA256
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret is required")
	}
	key := make([]byte, derivedKeyLen)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", purpose, err)
	}
	return key, nil
}
