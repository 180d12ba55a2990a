// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatorMissingToken(t *testing.T) {
	var called bool
	handler := Authenticator(&fakeVerifier{})(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	var called bool
	verifier := &fakeVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenInvalid),
	}
	handler := Authenticator(verifier)(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenExpired),
	}
	var called bool
	handler := Authenticator(verifier)(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthenticatorAttachesClaims(t *testing.T) {
	verifier := &fakeVerifier{
		claims: &AccessTokenClaims{UserID: "user-1", Role: "artist"},
	}

	var gotID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotRole = GetUserRole(r.Context())
	})

	handler := Authenticator(verifier)(next)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "user-1", gotID)
	assert.Equal(t, "artist", gotRole)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"matching role", "artist", []string{"artist"}, http.StatusOK},
		{"one of several", "recruiter", []string{"artist", "recruiter"}, http.StatusOK},
		{"wrong role", "artist", []string{"recruiter"}, http.StatusForbidden},
		{"unauthenticated", "", []string{"artist"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequireRole(tt.allowed...)(okHandler(t, &called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				ctx := context.WithValue(req.Context(), UserRoleKey, tt.role)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}

func TestGetClaimsAbsent(t *testing.T) {
	require.Nil(t, GetClaims(context.Background()))
	assert.False(t, IsAuthenticated(context.Background()))
}
