package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_IssueVerify(t *testing.T) {
	sessions, err := NewSessions([]byte("secret"), time.Hour)
	require.NoError(t, err)

	token, err := sessions.Issue("ada")
	require.NoError(t, err)

	username, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada", username)
}

func TestSessions_Expired(t *testing.T) {
	sessions, err := NewSessions([]byte("secret"), time.Minute)
	require.NoError(t, err)

	start := time.Unix(1700000000, 0)
	sessions.now = func() time.Time { return start }
	token, err := sessions.Issue("ada")
	require.NoError(t, err)

	sessions.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredSession)
}

func TestSessions_WrongSecret(t *testing.T) {
	issuer, err := NewSessions([]byte("secret-a"), time.Hour)
	require.NoError(t, err)
	verifier, err := NewSessions([]byte("secret-b"), time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("ada")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_RandomSecretPerInstance(t *testing.T) {
	a, err := NewSessions(nil, time.Hour)
	require.NoError(t, err)
	b, err := NewSessions(nil, time.Hour)
	require.NoError(t, err)

	token, err := a.Issue("ada")
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.NoError(t, err)
	_, err = b.Verify(token)
	assert.Error(t, err, "tokens from a previous process are rejected")
}

func TestSessions_RejectsNoneAlgorithm(t *testing.T) {
	sessions, err := NewSessions([]byte("secret"), time.Hour)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "ada"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = sessions.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessions_Cookie(t *testing.T) {
	sessions, err := NewSessions([]byte("secret"), time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.SetCookie(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "ada"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/main", nil)
	req.AddCookie(cookies[0])
	username, ok := sessions.FromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "ada", username)

	_, ok = sessions.FromRequest(httptest.NewRequest(http.MethodGet, "/main", nil))
	assert.False(t, ok)

	rec = httptest.NewRecorder()
	sessions.ClearCookie(rec)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
