package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-that-is-at-least-32-chars"

func TestDeriveKeyIsPurposeSpecific(t *testing.T) {
	visitorKey, err := DeriveKey(testSecret, PurposeVisitor)
	require.NoError(t, err)
	csrfKey, err := DeriveKey(testSecret, PurposeCSRF)
	require.NoError(t, err)
	again, err := DeriveKey(testSecret, PurposeVisitor)
	require.NoError(t, err)

	assert.Len(t, visitorKey, 32)
	assert.NotEqual(t, visitorKey, csrfKey)
	assert.Equal(t, visitorKey, again)

	_, err = DeriveKey("", PurposeCSRF)
	assert.Error(t, err)
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	g, err := NewCSRFGenerator(testSecret)
	require.NoError(t, err)

	token, err := g.Token("page-1")
	require.NoError(t, err)

	assert.NoError(t, g.Check("page-1", token))
	assert.ErrorIs(t, g.Check("page-2", token), ErrInvalidCSRFToken)
	assert.ErrorIs(t, g.Check("page-1", ""), ErrInvalidCSRFToken)
	assert.ErrorIs(t, g.Check("page-1", "%%%"), ErrInvalidCSRFToken)

	other, err := NewCSRFGenerator("a-different-secret-that-is-long-enough")
	require.NoError(t, err)
	assert.ErrorIs(t, other.Check("page-1", token), ErrInvalidCSRFToken)

	_, err = g.Token("")
	assert.Error(t, err)
}

func TestSignersRequireSecret(t *testing.T) {
	_, err := NewCSRFGenerator("")
	assert.Error(t, err)
	_, err = NewVisitorSigner("", time.Hour)
	assert.Error(t, err)
}

func TestCSRFAndVisitorKeysDiffer(t *testing.T) {
	g, err := NewCSRFGenerator(testSecret)
	require.NoError(t, err)
	s, err := NewVisitorSigner(testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, g.key, s.key)
}

func TestVisitorTokenRoundTrip(t *testing.T) {
	s, err := NewVisitorSigner(testSecret, time.Hour)
	require.NoError(t, err)
	id := NewVisitorID()

	token, expires, err := s.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	got, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVisitorTokenRejections(t *testing.T) {
	s, err := NewVisitorSigner(testSecret, time.Hour)
	require.NoError(t, err)
	token, _, err := s.Issue(NewVisitorID())
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		other, err := NewVisitorSigner("a-different-secret-that-is-long-enough", time.Hour)
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})

	t.Run("expired", func(t *testing.T) {
		later, err := NewVisitorSigner(testSecret, time.Hour)
		require.NoError(t, err)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		bad, _, err := s.Issue("robert'); DROP TABLE")
		require.NoError(t, err)
		_, err = s.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("ip"))
	assert.True(t, rl.Allow("ip"))
	assert.False(t, rl.Allow("ip"))
	assert.True(t, rl.Allow("other-ip"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("ip"))

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 2, rl.Cleanup())
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	assert.Equal(t, "10.0.0.5", GetClientIP(r))

	r.Header.Set("X-Real-IP", "192.0.2.1")
	assert.Equal(t, "192.0.2.1", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", GetClientIP(r))
}

func TestCookieSecureFlagFollowsScheme(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.False(t, CreateCookie(r, "c", "v", time.Now()).Secure)

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, CreateCookie(r, "c", "v", time.Now()).Secure)

	tlsReq := httptest.NewRequest("GET", "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	c := CreateCookie(tlsReq, "c", "v", time.Now())
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}
