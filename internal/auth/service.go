// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/emoticam/internal/platform/apperr"
	"github.com/taibuivan/emoticam/internal/platform/sec"
	"github.com/taibuivan/emoticam/pkg/uuidv7"
)

// TokenProvider defines the contract for minting session tokens.
type TokenProvider interface {
	// Issue creates a signed session token embedding the account's
	// id, email, and role, expiring after the provider's configured TTL.
	Issue(userID, email, role string) (string, error)

	// TTL reports the configured session lifetime, used to align the
	// cookie Max-Age with the token expiry.
	TTL() time.Duration
}

// invalidCredentials is the single undifferentiated login failure.
//
// A wrong password and an unknown email MUST produce byte-identical
// responses so the login form cannot be used to probe which emails exist.
var invalidCredentials = apperr.Unauthorized("Invalid email or password")

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	loginThrottle  LoginThrottle
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	throttle LoginThrottle,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		loginThrottle:  throttle,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// RegisterInput holds the data required to enroll a new parent account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Children []ChildProfile
}

// Register validates, hashes, and persists a brand new parent account.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to the newly created [*User] (hash excluded from JSON).
//   - Returns [apperr.Conflict] if the email already exists (case-insensitive).
//
// # Business Rules
//   - Emails are unique after trimming and lowercasing.
//   - Default role is always 'parent'.
//   - Raw passwords never touch the storage layer.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Normalization ──────────────────────────────────────────────────

	email := NormalizeEmail(input.Email)

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	// Fast pre-check for a friendly error. The unique constraint on
	// users.account(email) remains the authoritative guard against races.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("An account with this email already exists")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Role:         UserRoleParent, // Rule: Default role is always Parent
		Children:     input.Children,
	}

	// ── 5. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("account_registered", slog.String("user_id", user.ID))

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	// Token is the signed session credential destined for the auth cookie.
	Token string

	// TTL mirrors the token expiry so the cookie Max-Age matches it exactly.
	TTL time.Duration

	User *User
}

// Login validates parent credentials and issues a session token.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains Email and plain-text Password.
//
// # Returns
//   - A pointer to [LoginSession] containing the signed token.
//   - Returns the undifferentiated [apperr.Unauthorized] for ANY credential
//     mismatch — absent account and wrong password are indistinguishable.
//   - Returns [apperr.TooManyAttempts] when the throttle window is exhausted.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Normalization ──────────────────────────────────────────────────

	email := NormalizeEmail(input.Email)

	// ── 2. Throttle Check ─────────────────────────────────────────────────

	throttled, err := service.loginThrottle.TooManyFailures(context, email)
	if err != nil {
		// Redis being down must not lock every parent out. Fail open and log.
		service.logger.Warn("login_throttle_unavailable", slog.Any("error", err))
	}
	if throttled {
		return nil, apperr.TooManyAttempts("Too many failed attempts. Try again later.")
	}

	// ── 3. Credential Verification ────────────────────────────────────────

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		service.recordFailure(context, email)
		return nil, invalidCredentials
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recordFailure(context, email)
		return nil, invalidCredentials
	}

	// ── 4. Session Issuance ───────────────────────────────────────────────

	if err := service.loginThrottle.Reset(context, email); err != nil {
		service.logger.Warn("login_throttle_reset_failed", slog.Any("error", err))
	}

	token, err := service.tokenProvider.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	service.logger.Info("login_succeeded", slog.String("user_id", user.ID))

	return &LoginSession{
		Token: token,
		TTL:   service.tokenProvider.TTL(),
		User:  user,
	}, nil
}

// StartSession issues a session token for an already-verified account.
//
// Used right after registration so new parents land on the dashboard
// without a second login step.
func (service *Service) StartSession(user *User) (*LoginSession, error) {
	token, err := service.tokenProvider.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginSession{
		Token: token,
		TTL:   service.tokenProvider.TTL(),
		User:  user,
	}, nil
}

// Resolve maps verified session claims back to a live account.
//
// # Revocation by deletion
//
// Tokens are stateless, so deleting an account is the only server-side
// revocation mechanism. Re-fetching by ID here is what enforces it.
//
// # Returns
//   - The [*User] when the account still exists.
//   - nil on ANY failure (nil claims, unknown id, storage error). Resolution
//     never produces a request error; absence of identity is a normal state.
func (service *Service) Resolve(context context.Context, claims *sec.SessionClaims) *User {
	if claims == nil {
		return nil
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil
	}

	return user
}

// IdentityExists reports whether the account behind a session is still live.
// It implements [middleware.IdentityResolver].
func (service *Service) IdentityExists(context context.Context, userID string) bool {
	_, err := service.userRepository.FindByID(context, userID)
	return err == nil
}

// recordFailure bumps the throttle counter, tolerating store outages.
func (service *Service) recordFailure(context context.Context, email string) {
	if err := service.loginThrottle.RecordFailure(context, email); err != nil {
		service.logger.Warn("login_throttle_record_failed", slog.Any("error", err))
	}
}
