// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/mail"
)

type fakeUserProvider struct {
	mu    sync.Mutex
	users map[string]*UserInfo
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{users: make(map[string]*UserInfo)}
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[params.Email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	role := params.Role
	if role == "" {
		role = "artist"
	}

	user := &UserInfo{
		ID:           uuid.New().String(),
		Email:        params.Email,
		Name:         params.Name,
		Lastname:     params.Lastname,
		PasswordHash: params.PasswordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.users[params.Email] = user

	copied := *user
	return &copied, nil
}

func (f *fakeUserProvider) UpdatePassword(
	_ context.Context,
	email, passwordHash string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	user.PasswordHash = passwordHash
	return nil
}

type fakeResetRepository struct {
	mu     sync.Mutex
	resets map[string]*PasswordReset
}

func newFakeResetRepository() *fakeResetRepository {
	return &fakeResetRepository{resets: make(map[string]*PasswordReset)}
}

func (f *fakeResetRepository) Supersede(
	_ context.Context,
	reset *PasswordReset,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	reset.CreatedAt = time.Now()
	copied := *reset
	f.resets[reset.Email] = &copied
	return nil
}

func (f *fakeResetRepository) FindValid(
	_ context.Context,
	email, otpHash string,
) (*PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reset, ok := f.resets[email]
	if !ok || reset.OTPHash != otpHash || reset.IsExpired() {
		return nil, fmt.Errorf("find reset: %w", core.ErrNotFound)
	}
	copied := *reset
	return &copied, nil
}

func (f *fakeResetRepository) DeleteForEmail(
	_ context.Context,
	email string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.resets, email)
	return nil
}

func (f *fakeResetRepository) DeleteExpired(
	_ context.Context,
) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for email, reset := range f.resets {
		if reset.IsExpired() {
			delete(f.resets, email)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTicketStore struct {
	mu       sync.Mutex
	consumed map[string]struct{}
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{consumed: make(map[string]struct{})}
}

func (f *fakeTicketStore) Consume(
	_ context.Context,
	ticketID string,
	expiresAt time.Time,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if time.Now().After(expiresAt) {
		return fmt.Errorf("consume ticket: %w", core.ErrTokenExpired)
	}
	if _, spent := f.consumed[ticketID]; spent {
		return fmt.Errorf("consume ticket: %w", core.ErrTokenRevoked)
	}
	f.consumed[ticketID] = struct{}{}
	return nil
}

type recordingSender struct {
	sent chan mail.Message
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(chan mail.Message, 8)}
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	s.sent <- msg
	return nil
}

func (s *recordingSender) waitForMessage(t *testing.T) mail.Message {
	t.Helper()

	select {
	case msg := <-s.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no mail delivered")
		return mail.Message{}
	}
}

type fakeLimiter struct {
	allowed bool
}

func (f *fakeLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return f.allowed, nil
}

type serviceFixture struct {
	svc     *Service
	users   *fakeUserProvider
	resets  *fakeResetRepository
	tickets *fakeTicketStore
	mailer  *recordingSender
	limiter *fakeLimiter
	tokens  *TokenManager
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		users:   newFakeUserProvider(),
		resets:  newFakeResetRepository(),
		tickets: newFakeTicketStore(),
		mailer:  newRecordingSender(),
		limiter: &fakeLimiter{allowed: true},
		tokens:  newTestTokenManager(t),
	}

	f.svc = NewService(ServiceConfig{
		Users:   f.users,
		Resets:  f.resets,
		Tokens:  f.tokens,
		Tickets: f.tickets,
		Mailer:  f.mailer,
		Limiter: f.limiter,
		OTPTTL:  15 * time.Minute,
		Logger:  slog.Default(),
	})
	return f
}

func (f *serviceFixture) register(t *testing.T, email string) *AuthResponse {
	t.Helper()

	resp, err := f.svc.Register(context.Background(), RegisterRequest{
		Name:     "Nina",
		Lastname: "Simone",
		Email:    email,
		Password: "secret123",
		Role:     "artist",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesSessionToken(t *testing.T) {
	f := newServiceFixture(t)

	resp := f.register(t, "nina@example.com")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "nina@example.com", resp.User.Email)
	assert.Equal(t, "artist", resp.User.Role)

	claims, err := f.tokens.VerifyAccessToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "artist", claims.Role)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	stored, err := f.users.GetByEmail(context.Background(), "nina@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	valid, err := core.VerifyPassword("secret123", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		Name:     "Other",
		Lastname: "Person",
		Email:    "nina@example.com",
		Password: "different",
		Role:     "recruiter",
	})
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginUnknownEmailAndBadPasswordLookAlike(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	_, unknownErr := f.svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	_, badPassErr := f.svc.Login(context.Background(), LoginRequest{
		Email:    "nina@example.com",
		Password: "wrong password",
	})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, badPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, badPassErr)
}

func TestLoginUsesStoredRoleOnly(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	resp, err := f.svc.Login(context.Background(), LoginRequest{
		Email:    "nina@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	claims, err := f.tokens.VerifyAccessToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "artist", claims.Role)
}

func TestForgotPasswordStoresHashedCodeAndMails(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)

	msg := f.mailer.waitForMessage(t)
	assert.Equal(t, "nina@example.com", msg.To)
	assert.Contains(t, msg.Subject, "OTP")

	otp := extractOTP(t, msg.TextBody)
	stored, ok := f.resets.resets["nina@example.com"]
	require.True(t, ok)
	assert.Equal(t, core.HashOTP(otp), stored.OTPHash)
	assert.NotContains(t, stored.OTPHash, otp)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newServiceFixture(t)

	err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestForgotPasswordRateLimited(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")
	f.limiter.allowed = false

	err := f.svc.ForgotPassword(context.Background(), "nina@example.com")
	require.ErrorIs(t, err, ErrTooManyRequests)
}

func TestForgotPasswordSupersedesPriorCode(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	firstOTP := extractOTP(t, f.mailer.waitForMessage(t).TextBody)

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	secondOTP := extractOTP(t, f.mailer.waitForMessage(t).TextBody)

	// Exactly one code can verify, and it is the most recent one.
	_, err := f.svc.VerifyOTP(
		context.Background(),
		"nina@example.com",
		secondOTP,
	)
	require.NoError(t, err)

	if firstOTP != secondOTP {
		_, err = f.svc.VerifyOTP(
			context.Background(),
			"nina@example.com",
			firstOTP,
		)
		require.ErrorIs(t, err, ErrInvalidOTP)
	}
}

func TestForgotPasswordConcurrentLeavesOneValidCode(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	const requests = 5

	errs := make(chan error, requests)

	var wg sync.WaitGroup
	wg.Add(requests)
	for i := 0; i < requests; i++ {
		go func() {
			defer wg.Done()
			errs <- f.svc.ForgotPassword(
				context.Background(),
				"nina@example.com",
			)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	codes := make(map[string]struct{}, requests)
	for i := 0; i < requests; i++ {
		codes[extractOTP(t, f.mailer.waitForMessage(t).TextBody)] = struct{}{}
	}

	// Whatever the interleaving, exactly one code survives the supersede.
	valid := 0
	for code := range codes {
		if _, err := f.svc.VerifyOTP(
			context.Background(),
			"nina@example.com",
			code,
		); err == nil {
			valid++
		}
	}
	require.Equal(t, 1, valid)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	f.mailer.waitForMessage(t)

	_, err := f.svc.VerifyOTP(context.Background(), "nina@example.com", "000000")
	if err == nil {
		// One-in-a-million collision with the generated code; not a failure
		// of the lookup path.
		t.Skip("generated code happened to be 000000")
	}
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	otp := extractOTP(t, f.mailer.waitForMessage(t).TextBody)

	f.resets.mu.Lock()
	f.resets.resets["nina@example.com"].ExpiresAt = time.Now().Add(-time.Minute)
	f.resets.mu.Unlock()

	_, err := f.svc.VerifyOTP(context.Background(), "nina@example.com", otp)
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResetPasswordRoundTrip(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	otp := extractOTP(t, f.mailer.waitForMessage(t).TextBody)

	ticket, err := f.svc.VerifyOTP(context.Background(), "nina@example.com", otp)
	require.NoError(t, err)

	err = f.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "nina@example.com",
		NewPassword: "brand new password",
		ResetToken:  ticket.Token,
	})
	require.NoError(t, err)

	// Old password out, new password in.
	_, err = f.svc.Login(context.Background(), LoginRequest{
		Email:    "nina@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := f.svc.Login(context.Background(), LoginRequest{
		Email:    "nina@example.com",
		Password: "brand new password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Recovery records cleared.
	_, remaining := f.resets.resets["nina@example.com"]
	assert.False(t, remaining)
}

func TestResetPasswordRequiresTicket(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	err := f.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "nina@example.com",
		NewPassword: "brand new password",
		ResetToken:  "not-a-ticket",
	})
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestResetPasswordTicketIsSingleUse(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	otp := extractOTP(t, f.mailer.waitForMessage(t).TextBody)

	ticket, err := f.svc.VerifyOTP(context.Background(), "nina@example.com", otp)
	require.NoError(t, err)

	first := f.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "nina@example.com",
		NewPassword: "first new password",
		ResetToken:  ticket.Token,
	})
	require.NoError(t, first)

	second := f.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "nina@example.com",
		NewPassword: "second new password",
		ResetToken:  ticket.Token,
	})
	require.ErrorIs(t, second, core.ErrTokenRevoked)

	// The second attempt must not have touched the password.
	_, err = f.svc.Login(context.Background(), LoginRequest{
		Email:    "nina@example.com",
		Password: "first new password",
	})
	require.NoError(t, err)
}

func TestResetPasswordTicketBoundToEmail(t *testing.T) {
	f := newServiceFixture(t)
	f.register(t, "nina@example.com")
	f.register(t, "other@example.com")

	require.NoError(
		t,
		f.svc.ForgotPassword(context.Background(), "nina@example.com"),
	)
	otp := extractOTP(t, f.mailer.waitForMessage(t).TextBody)

	ticket, err := f.svc.VerifyOTP(context.Background(), "nina@example.com", otp)
	require.NoError(t, err)

	err = f.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "other@example.com",
		NewPassword: "hijacked password",
		ResetToken:  ticket.Token,
	})
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	f := newServiceFixture(t)

	f.resets.resets["old@example.com"] = &PasswordReset{
		ID:        uuid.New().String(),
		Email:     "old@example.com",
		OTPHash:   core.HashOTP("111111"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	f.resets.resets["fresh@example.com"] = &PasswordReset{
		ID:        uuid.New().String(),
		Email:     "fresh@example.com",
		OTPHash:   core.HashOTP("222222"),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	deleted, err := f.resets.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, hasFresh := f.resets.resets["fresh@example.com"]
	assert.True(t, hasFresh)
}

// extractOTP pulls the 6-digit code out of the delivery text.
func extractOTP(t *testing.T, body string) string {
	t.Helper()

	for i := 0; i+6 <= len(body); i++ {
		candidate := body[i : i+6]
		digits := true
		for _, c := range candidate {
			if c < '0' || c > '9' {
				digits = false
				break
			}
		}
		if digits {
			return candidate
		}
	}

	t.Fatalf("no code found in %q", body)
	return ""
}
