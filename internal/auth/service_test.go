// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/emoticam/internal/auth"
	"github.com/taibuivan/emoticam/internal/platform/apperr"
	"github.com/taibuivan/emoticam/internal/platform/sec"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository keyed by normalized email.
type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("An account with this email already exists")
	}
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, exists := repo.byID[user.ID]; !exists {
		return apperr.NotFound("User")
	}
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, exists := repo.byID[userID]
	if !exists {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (repo *fakeUserRepository) delete(user *auth.User) {
	delete(repo.byID, user.ID)
	delete(repo.byEmail, user.Email)
}

// fakeThrottle counts failures in memory and trips at the given limit.
type fakeThrottle struct {
	failures map[string]int
	limit    int
}

func newFakeThrottle(limit int) *fakeThrottle {
	return &fakeThrottle{failures: make(map[string]int), limit: limit}
}

func (throttle *fakeThrottle) RecordFailure(_ context.Context, email string) error {
	throttle.failures[email]++
	return nil
}

func (throttle *fakeThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	return throttle.failures[email] >= throttle.limit, nil
}

func (throttle *fakeThrottle) Reset(_ context.Context, email string) error {
	delete(throttle.failures, email)
	return nil
}

// # Harness

func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeThrottle) {
	t.Helper()

	repo := newFakeUserRepository()
	throttle := newFakeThrottle(10)

	tokens, err := sec.NewTokenService("service-test-secret", "emoticam.app", time.Hour)
	require.NoError(t, err)

	service := auth.NewService(repo, throttle, tokens, slog.Default())

	return service, repo, throttle
}

func registerParent(t *testing.T, service *auth.Service, email, password string) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    email,
		Password: password,
		Name:     "Ana",
		Children: []auth.ChildProfile{{Name: "Mia", Age: 4}},
	})
	require.NoError(t, err)

	return user
}

// # Registration

/*
TestService_Register_Defaults verifies normalization, role assignment, and
that the raw password never survives registration.
*/
func TestService_Register_Defaults(t *testing.T) {
	service, _, _ := newTestService(t)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "correct-horse",
		Name:     "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, auth.UserRoleParent, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", user.PasswordHash))
}

/*
TestService_Register_DuplicateEmail covers uniqueness as a case-insensitive
rule: re-registering with different casing must conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService(t)
	registerParent(t, service, "ana@example.com", "correct-horse")

	tests := []struct {
		name  string
		email string
	}{
		{"exact", "ana@example.com"},
		{"different_case", "ANA@EXAMPLE.COM"},
		{"surrounding_space", "  ana@example.com  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), auth.RegisterInput{
				Email:    tt.email,
				Password: "whatever-else",
				Name:     "Impostor",
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
		})
	}
}

// # Login

/*
TestService_Login_Success verifies the happy path issues a verifiable token
and clears any accumulated failure count.
*/
func TestService_Login_Success(t *testing.T) {
	service, _, throttle := newTestService(t)
	user := registerParent(t, service, "ana@example.com", "correct-horse")
	throttle.failures["ana@example.com"] = 3

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "Ana@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, session.User.ID)
	assert.Equal(t, time.Hour, session.TTL)
	assert.NotEmpty(t, session.Token)
	assert.Zero(t, throttle.failures["ana@example.com"], "failure counter must reset on success")
}

/*
TestService_Login_IndistinguishableFailures pins the enumeration defense:
an unknown email and a wrong password must yield the identical error value.
*/
func TestService_Login_IndistinguishableFailures(t *testing.T) {
	service, _, _ := newTestService(t)
	registerParent(t, service, "ana@example.com", "correct-horse")

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	require.Error(t, unknownErr)

	_, wrongPasswordErr := service.Login(context.Background(), auth.LoginInput{
		Email:    "ana@example.com",
		Password: "wrong-horse",
	})
	require.Error(t, wrongPasswordErr)

	assert.Equal(t, unknownErr.Error(), wrongPasswordErr.Error())
	assert.Equal(t, apperr.As(unknownErr).Code, apperr.As(wrongPasswordErr).Code)
	assert.Equal(t, apperr.As(unknownErr).HTTPStatus, apperr.As(wrongPasswordErr).HTTPStatus)
}

/*
TestService_Login_Throttled verifies that exhausting the failure allowance
blocks further attempts with a 429-class error, even with valid credentials.
*/
func TestService_Login_Throttled(t *testing.T) {
	service, _, throttle := newTestService(t)
	registerParent(t, service, "ana@example.com", "correct-horse")
	throttle.failures["ana@example.com"] = throttle.limit

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOO_MANY_ATTEMPTS", ae.Code)
}

/*
TestService_Login_CountsFailures checks that each rejected attempt feeds the
throttle so brute force eventually locks the email.
*/
func TestService_Login_CountsFailures(t *testing.T) {
	service, _, throttle := newTestService(t)
	registerParent(t, service, "ana@example.com", "correct-horse")

	for attempt := 0; attempt < 3; attempt++ {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "ana@example.com",
			Password: "wrong-horse",
		})
		require.Error(t, err)
	}

	assert.Equal(t, 3, throttle.failures["ana@example.com"])
}

// # Identity Resolution

/*
TestService_Resolve covers request-scoped identity resolution: idempotent for
live accounts, nil for anonymous requests and deleted accounts.
*/
func TestService_Resolve(t *testing.T) {
	service, repo, _ := newTestService(t)
	user := registerParent(t, service, "ana@example.com", "correct-horse")

	claims := &sec.SessionClaims{UserID: user.ID, Email: user.Email, Role: string(user.Role)}

	// Idempotent: two resolutions of the same claims give the same identity.
	first := service.Resolve(context.Background(), claims)
	second := service.Resolve(context.Background(), claims)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	// Anonymous request.
	assert.Nil(t, service.Resolve(context.Background(), nil))

	// Deleting the account revokes the otherwise-valid session.
	repo.delete(user)
	assert.Nil(t, service.Resolve(context.Background(), claims))
	assert.False(t, service.IdentityExists(context.Background(), user.ID))
}

/*
TestService_StartSession verifies post-registration sessions carry the same
token contract as login sessions.
*/
func TestService_StartSession(t *testing.T) {
	service, _, _ := newTestService(t)
	user := registerParent(t, service, "ana@example.com", "correct-horse")

	session, err := service.StartSession(user)
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, time.Hour, session.TTL)
	assert.Equal(t, user.ID, session.User.ID)
}
