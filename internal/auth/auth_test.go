package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func newTestService(t *testing.T, issuer, audience string) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret, issuer, audience)
	require.NoError(t, err)
	return s
}

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("short", "", "")
	assert.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	s := newTestService(t, "todo-identity", "todo-api")

	want := Identity{
		UserID:          "user-42",
		Email:           "ada@example.com",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		ProfileImageURL: "https://example.com/ada.png",
	}
	token, err := s.Issue(want, time.Hour)
	require.NoError(t, err)

	got, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIssueRequiresUserID(t *testing.T) {
	s := newTestService(t, "", "")
	_, err := s.Issue(Identity{Email: "x@example.com"}, time.Hour)
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	s := newTestService(t, "todo-identity", "todo-api")
	good, err := s.Issue(Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	otherSecret, err := NewTokenService("another-secret-987654321", "todo-identity", "todo-api")
	require.NoError(t, err)
	forged, err := otherSecret.Issue(Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	otherIssuer := newTestService(t, "someone-else", "todo-api")
	wrongIssuer, err := otherIssuer.Issue(Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	otherAudience := newTestService(t, "todo-identity", "billing")
	wrongAudience, err := otherAudience.Issue(Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1",
		"iss": "todo-identity",
		"aud": "todo-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iss": "todo-identity",
		"aud": "todo-api",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "todo-identity",
		"aud": "todo-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", good + "x"},
		{"wrong secret", forged},
		{"wrong issuer", wrongIssuer},
		{"wrong audience", wrongAudience},
		{"alg none", noneAlg},
		{"missing exp", noExpiry},
		{"missing sub", noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	s := newTestService(t, "", "")
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.Issue(Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: "u1"})
	id, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", id.UserID)

	_, ok = IdentityFromContext(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok)
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer abc", "", "abc"},
		{"case insensitive scheme", "bearer abc", "", "abc"},
		{"non bearer header", "Basic dXNlcjpwYXNz", "fromcookie", ""},
		{"cookie fallback", "", "fromcookie", "fromcookie"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			assert.Equal(t, tt.want, TokenFromRequest(r, "token"))
		})
	}
}
