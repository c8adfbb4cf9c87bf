package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	s := &CookieSigner{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

	tok, err := s.Issue("sid-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sid, err := s.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "sid-1", sid)
}

func TestParseRejectsTampered(t *testing.T) {
	s := &CookieSigner{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	tok, err := s.Issue("sid-1")
	require.NoError(t, err)

	_, err = s.Parse(tok + "x")
	require.Error(t, err)

	other := &CookieSigner{Secret: []byte("other-secret"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	s := &CookieSigner{Secret: []byte("test-secret"), Issuer: "a", TTL: time.Hour}
	tok, err := s.Issue("sid-1")
	require.NoError(t, err)

	other := &CookieSigner{Secret: []byte("test-secret"), Issuer: "b", TTL: time.Hour}
	_, err = other.Parse(tok)
	require.Error(t, err)
}
