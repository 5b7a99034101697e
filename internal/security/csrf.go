package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidCSRFToken is returned when a token does not belong to the page it was sent for
var ErrInvalidCSRFToken = errors.New("invalid csrf token")

// CSRFGenerator mints per-page tokens as HMACs of the page session ID.
// Nothing is stored; any process with the same secret can check a token.
type CSRFGenerator struct {
	key []byte
}

// NewCSRFGenerator derives the CSRF key from the application secret
func NewCSRFGenerator(secret string) (*CSRFGenerator, error) {
	key, err := DeriveKey(secret, PurposeCSRF)
	if err != nil {
		return nil, err
	}
	return &CSRFGenerator{key: key}, nil
}

func (g *CSRFGenerator) sum(pageID string) []byte {
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte("page:" + pageID))
	return mac.Sum(nil)
}

// Token returns the token a page embeds in its forms
func (g *CSRFGenerator) Token(pageID string) (string, error) {
	if pageID == "" {
		return "", fmt.Errorf("page ID is required")
	}
	return base64.RawURLEncoding.EncodeToString(g.sum(pageID)), nil
}

// Check returns ErrInvalidCSRFToken unless token was minted for pageID
func (g *CSRFGenerator) Check(pageID, token string) error {
	if pageID == "" || token == "" {
		return ErrInvalidCSRFToken
	}
	got, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || !hmac.Equal(got, g.sum(pageID)) {
		return ErrInvalidCSRFToken
	}
	return nil
}
