// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/mail"
	"github.com/carterperez-dev/talenthub/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrTooManyRequests    = errors.New("too many requests")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	Lastname     string
	PasswordHash string
	Role         string
	IsVerified   bool
	CreatedAt    time.Time
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	Lastname     string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, params CreateUserParams) (*UserInfo, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// EmailLimiter throttles recovery-code issuance per email address.
type EmailLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Service struct {
	users   UserProvider
	resets  ResetRepository
	tokens  *TokenManager
	tickets TicketStore
	mailer  mail.Sender
	limiter EmailLimiter
	otpTTL  time.Duration
	logger  *slog.Logger
}

type ServiceConfig struct {
	Users   UserProvider
	Resets  ResetRepository
	Tokens  *TokenManager
	Tickets TicketStore
	Mailer  mail.Sender
	Limiter EmailLimiter
	OTPTTL  time.Duration
	Logger  *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		users:   cfg.Users,
		resets:  cfg.Resets,
		tokens:  cfg.Tokens,
		tickets: cfg.Tickets,
		mailer:  cfg.Mailer,
		limiter: cfg.Limiter,
		otpTTL:  cfg.OTPTTL,
		logger:  logger,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, CreateUserParams{
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Name:         req.Name,
		Lastname:     req.Lastname,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Burn the same hashing cost as the found-user path so a
			// missing account is not distinguishable by response time.
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		// Best-effort parameter upgrade; login succeeds regardless.
		if err := s.users.UpdatePassword(ctx, user.Email, newHash); err != nil {
			s.logger.Warn("password rehash failed", "error", err)
		}
	}

	// The session is scoped to the role on record. Nothing the client
	// sent alongside the credentials is consulted.
	return s.createAuthResponse(user)
}

// ForgotPassword issues a fresh recovery code, superseding any prior one
// for the email, and hands it to the mail collaborator. Delivery is
// fire-and-forget: the code is already durable, and the caller gets a
// generic success either way.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, middleware.KeyByEmail(email))
		if err != nil {
			return fmt.Errorf("rate limit check: %w", err)
		}
		if !allowed {
			return ErrTooManyRequests
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("forgot password: %w", core.ErrNotFound)
		}
		return fmt.Errorf("get user: %w", err)
	}

	otp, err := core.GenerateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	reset := &PasswordReset{
		ID:        uuid.New().String(),
		Email:     user.Email,
		OTPHash:   core.HashOTP(otp),
		ExpiresAt: time.Now().Add(s.otpTTL),
	}

	if err := s.resets.Supersede(ctx, reset); err != nil {
		return fmt.Errorf("store reset: %w", err)
	}

	go s.deliverOTP(user.Email, otp)

	return nil
}

func (s *Service) deliverOTP(email, otp string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	minutes := int(s.otpTTL.Minutes())
	msg := mail.Message{
		To:      email,
		Subject: "Password Reset OTP",
		TextBody: fmt.Sprintf(
			"Your OTP is %s. Valid for %d minutes.",
			otp, minutes,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Your OTP is <strong>%s</strong></p><p>This OTP is valid for <b>%d minutes</b>.</p>",
			otp, minutes,
		),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("otp delivery failed", "error", err)
	}
}

// VerifyOTP checks the candidate code without consuming the record, so the
// client may retry within the window, and returns the reset ticket that
// ResetPassword will demand. A missing, mismatched, or expired code all
// collapse into one generic failure.
func (s *Service) VerifyOTP(
	ctx context.Context,
	email, candidate string,
) (*ResetTicket, error) {
	email = strings.ToLower(email)

	_, err := s.resets.FindValid(ctx, email, core.HashOTP(candidate))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("find reset: %w", err)
	}

	ticket, err := s.tokens.CreateResetTicket(email)
	if err != nil {
		return nil, fmt.Errorf("create reset ticket: %w", err)
	}

	return ticket, nil
}

// ResetPassword requires a valid, unconsumed reset ticket for the email.
// Knowing an address alone is not enough to take over the account; the
// ticket proves the recovery code was verified, and it spends on use.
func (s *Service) ResetPassword(
	ctx context.Context,
	req ResetPasswordRequest,
) error {
	email := strings.ToLower(req.Email)

	ticket, err := s.tokens.VerifyResetTicket(req.ResetToken, email)
	if err != nil {
		return err
	}

	if err := s.tickets.Consume(ctx, ticket.ID, ticket.ExpiresAt); err != nil {
		return err
	}

	passwordHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, email, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.resets.DeleteForEmail(ctx, email); err != nil {
		s.logger.Warn("failed to clear reset records", "error", err)
	}

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// SweepExpiredResets runs until the context is cancelled, periodically
// reclaiming expired recovery-code rows.
func (s *Service) SweepExpiredResets(
	ctx context.Context,
	interval time.Duration,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.resets.DeleteExpired(ctx)
			if err != nil {
				s.logger.Warn("reset sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				s.logger.Debug("swept expired resets", "deleted", deleted)
			}
		}
	}
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.tokens.CreateSessionToken(SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(user *UserInfo) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Lastname:   user.Lastname,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
