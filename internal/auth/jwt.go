// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/talenthub/internal/config"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/middleware"
)

const (
	tokenTypeSession     = "session"
	tokenTypeResetTicket = "password_reset"
)

type TokenManager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	publicJWKS jwk.Set
	config     config.JWTConfig
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	privateKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	if setErr := privateKey.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	keyID := uuid.New().String()[:8]
	if setErr := privateKey.Set(jwk.KeyIDKey, keyID); setErr != nil {
		return nil, fmt.Errorf("set key id: %w", setErr)
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	if setErr := publicKey.Set(jwk.KeyUsageKey, "sig"); setErr != nil {
		return nil, fmt.Errorf("set key usage: %w", setErr)
	}

	publicJWKS := jwk.NewSet()
	if addErr := publicJWKS.AddKey(publicKey); addErr != nil {
		return nil, fmt.Errorf("add key to set: %w", addErr)
	}

	return &TokenManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		publicJWKS: publicJWKS,
		config:     cfg,
	}, nil
}

func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	jwkPrivate, err := jwk.Import(privateKey)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}

	keyID := uuid.New().String()[:8]
	if setErr := jwkPrivate.Set(jwk.KeyIDKey, keyID); setErr != nil {
		return fmt.Errorf("set key id: %w", setErr)
	}
	if setErr := jwkPrivate.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return fmt.Errorf("set algorithm: %w", setErr)
	}

	privatePEM, err := jwk.Pem(jwkPrivate)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	if writeErr := os.WriteFile(privateKeyPath, privatePEM, 0o600); writeErr != nil {
		return fmt.Errorf("write private key: %w", writeErr)
	}

	jwkPublic, err := jwkPrivate.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	publicPEM, err := jwk.Pem(jwkPublic)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	//nolint:gosec // G306: public key is intentionally world-readable
	if writeErr := os.WriteFile(publicKeyPath, publicPEM, 0o644); writeErr != nil {
		return fmt.Errorf("write public key: %w", writeErr)
	}

	return nil
}

type SessionClaims struct {
	UserID string
	Role   string
}

// CreateSessionToken issues the stateless bearer credential returned by
// register and login. Every issuance path shares the one configured TTL.
func (m *TokenManager) CreateSessionToken(claims SessionClaims) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(m.config.SessionTTL)).
		NotBefore(now).
		Claim("role", claims.Role).
		Claim("type", tokenTypeSession).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *TokenManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != tokenTypeSession {
		return nil, fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var roleStr string
	if err := token.Get("role", &roleStr); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.AccessTokenClaims{
		UserID: subject,
		Role:   roleStr,
	}, nil
}

// ResetTicket is the short-lived proof of a verified recovery code. It is
// bound to an email, not a user id, because the recovery flow starts from
// an email address alone.
type ResetTicket struct {
	Token     string
	ID        string
	Email     string
	ExpiresAt time.Time
}

func (m *TokenManager) CreateResetTicket(email string) (*ResetTicket, error) {
	now := time.Now()
	jti := uuid.New().String()
	expiresAt := now.Add(m.config.ResetTicketTTL)

	token, err := jwt.NewBuilder().
		JwtID(jti).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(strings.ToLower(email)).
		IssuedAt(now).
		Expiration(expiresAt).
		NotBefore(now).
		Claim("type", tokenTypeResetTicket).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build reset ticket: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return nil, fmt.Errorf("sign reset ticket: %w", err)
	}

	return &ResetTicket{
		Token:     string(signed),
		ID:        jti,
		Email:     strings.ToLower(email),
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyResetTicket checks signature, expiry, type, and that the ticket was
// minted for the given email. Single-use enforcement lives in TicketStore,
// not here.
func (m *TokenManager) VerifyResetTicket(
	tokenString, email string,
) (*ResetTicket, error) {
	token, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != tokenTypeResetTicket {
		return nil, fmt.Errorf(
			"verify reset ticket: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify reset ticket: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	if subject != strings.ToLower(email) {
		return nil, fmt.Errorf(
			"verify reset ticket: email mismatch: %w",
			core.ErrTokenInvalid,
		)
	}

	jti, ok := token.JwtID()
	if !ok || jti == "" {
		return nil, fmt.Errorf(
			"verify reset ticket: missing jti: %w",
			core.ErrTokenInvalid,
		)
	}

	expiration, ok := token.Expiration()
	if !ok {
		return nil, fmt.Errorf(
			"verify reset ticket: missing expiration: %w",
			core.ErrTokenInvalid,
		)
	}

	return &ResetTicket{
		Token:     tokenString,
		ID:        jti,
		Email:     subject,
		ExpiresAt: expiration,
	}, nil
}

func (m *TokenManager) parse(tokenString string) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	return token, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

func (m *TokenManager) GetJWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")

		if err := json.NewEncoder(w).Encode(m.publicJWKS); err != nil {
			http.Error(
				w,
				"Internal Server Error",
				http.StatusInternalServerError,
			)
			return
		}
	}
}

func (m *TokenManager) GetPublicKey() jwk.Key {
	return m.publicKey
}

func (m *TokenManager) GetKeyID() string {
	var kid string
	//nolint:errcheck // key ID always set during NewTokenManager init
	_ = m.privateKey.Get(jwk.KeyIDKey, &kid)
	return kid
}

var _ middleware.TokenVerifier = (*TokenManager)(nil)
