package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const visitorIssuer = "studyaid"

// ErrInvalidVisitorToken is returned for tokens that fail signature, expiry or subject checks
var ErrInvalidVisitorToken = errors.New("invalid visitor token")

// VisitorSigner issues and verifies the signed cookie that identifies a browser
type VisitorSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewVisitorSigner derives the cookie signing key from the application secret
func NewVisitorSigner(secret string, ttl time.Duration) (*VisitorSigner, error) {
	key, err := DeriveKey(secret, PurposeVisitor)
	if err != nil {
		return nil, err
	}
	return &VisitorSigner{key: key, ttl: ttl, now: time.Now}, nil
}

// NewVisitorID returns a fresh random visitor ID
func NewVisitorID() string {
	return uuid.New().String()
}

// Issue signs a token for visitorID and returns it with its expiry
func (s *VisitorSigner) Issue(visitorID string) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    visitorIssuer,
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign visitor token: %w", err)
	}
	return token, expires, nil
}

// Verify checks a token and returns the visitor ID it carries
func (s *VisitorSigner) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(visitorIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidVisitorToken, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a visitor ID", ErrInvalidVisitorToken)
	}
	return claims.Subject, nil
}
