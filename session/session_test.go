package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	s.SetTokens("acc-1", "ref-1")
	s.SetProfile("Aina Rakoto", "aina@ortm.io")

	// a second load sees the persisted state
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, "acc-1", reloaded.Token())
	assert.Equal(t, "ref-1", reloaded.RefreshToken())
	assert.Equal(t, "Aina Rakoto", reloaded.Current().DisplayName)
	assert.Equal(t, "aina@ortm.io", reloaded.Current().Email)
}

func TestSessionClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Load(path)
	require.NoError(t, err)
	s.SetTokens("acc", "ref")
	s.Clear()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.RefreshToken())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAuthenticated())
}

func TestSessionSetAccessTokenKeepsRefresh(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	s.SetTokens("old-access", "refresh")
	s.SetAccessToken("new-access")

	assert.Equal(t, "new-access", s.Token())
	assert.Equal(t, "refresh", s.RefreshToken())
}

func TestSessionOnChange(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	var seen []Snapshot
	unsubscribe := s.OnChange(func(snap Snapshot) {
		seen = append(seen, snap)
	})

	s.SetTokens("acc", "ref")
	require.Len(t, seen, 1)
	assert.True(t, seen[0].Authenticated())

	unsubscribe()
	s.Clear()
	assert.Len(t, seen, 1, "unsubscribed callback must not fire")
}

func TestSessionLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does", "not", "exist.json"))
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeIdentity(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signTestToken(t, jwt.MapClaims{
		"user_id": 7,
		"email":   "admin@ortm.io",
		"nom":     "Admin",
		"exp":     exp.Unix(),
	})

	id, err := DecodeIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, 7, id.UserID)
	assert.Equal(t, "admin@ortm.io", id.Email)
	assert.Equal(t, "Admin", id.Nom)

	assert.Equal(t, exp.Unix(), TokenExpiry(token).Unix())
}

func TestDecodeIdentityGarbage(t *testing.T) {
	_, err := DecodeIdentity("not-a-jwt")
	assert.Error(t, err)
	assert.True(t, TokenExpiry("not-a-jwt").IsZero())
}
