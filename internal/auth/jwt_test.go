// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/config"
	"github.com/carterperez-dev/talenthub/internal/core"
)

func testJWTConfig(t *testing.T) config.JWTConfig {
	t.Helper()

	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath: filepath.Join(dir, "private.pem"),
		PublicKeyPath:  filepath.Join(dir, "public.pem"),
		SessionTTL:     2 * time.Hour,
		ResetTicketTTL: 15 * time.Minute,
		Issuer:         "talenthub",
		Audience:       "talenthub-api",
	}

	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))
	return cfg
}

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()

	manager, err := NewTokenManager(testJWTConfig(t))
	require.NoError(t, err)
	return manager
}

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := newTestTokenManager(t)

	token, err := manager.CreateSessionToken(SessionClaims{
		UserID: "user-123",
		Role:   "artist",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "artist", claims.Role)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig(t)
	cfg.SessionTTL = -time.Minute

	manager, err := NewTokenManager(cfg)
	require.NoError(t, err)

	token, err := manager.CreateSessionToken(SessionClaims{
		UserID: "user-123",
		Role:   "artist",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyAccessTokenRejectsTampered(t *testing.T) {
	manager := newTestTokenManager(t)

	token, err := manager.CreateSessionToken(SessionClaims{
		UserID: "user-123",
		Role:   "artist",
	})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = manager.VerifyAccessToken(context.Background(), tampered)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessTokenRejectsForeignKey(t *testing.T) {
	issuing := newTestTokenManager(t)
	verifying := newTestTokenManager(t)

	token, err := issuing.CreateSessionToken(SessionClaims{
		UserID: "user-123",
		Role:   "recruiter",
	})
	require.NoError(t, err)

	_, err = verifying.VerifyAccessToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessTokenRejectsResetTicket(t *testing.T) {
	manager := newTestTokenManager(t)

	ticket, err := manager.CreateResetTicket("user@example.com")
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), ticket.Token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestResetTicketRoundTrip(t *testing.T) {
	manager := newTestTokenManager(t)

	ticket, err := manager.CreateResetTicket("User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", ticket.Email)
	assert.NotEmpty(t, ticket.ID)

	verified, err := manager.VerifyResetTicket(ticket.Token, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, verified.ID)
	assert.Equal(t, "user@example.com", verified.Email)
}

func TestVerifyResetTicketRejectsEmailMismatch(t *testing.T) {
	manager := newTestTokenManager(t)

	ticket, err := manager.CreateResetTicket("user@example.com")
	require.NoError(t, err)

	_, err = manager.VerifyResetTicket(ticket.Token, "other@example.com")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyResetTicketRejectsSessionToken(t *testing.T) {
	manager := newTestTokenManager(t)

	token, err := manager.CreateSessionToken(SessionClaims{
		UserID: "user-123",
		Role:   "artist",
	})
	require.NoError(t, err)

	_, err = manager.VerifyResetTicket(token, "user@example.com")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyResetTicketRejectsExpired(t *testing.T) {
	cfg := testJWTConfig(t)
	cfg.ResetTicketTTL = -time.Minute

	manager, err := NewTokenManager(cfg)
	require.NoError(t, err)

	ticket, err := manager.CreateResetTicket("user@example.com")
	require.NoError(t, err)

	_, err = manager.VerifyResetTicket(ticket.Token, "user@example.com")
	require.ErrorIs(t, err, core.ErrTokenExpired)
}
