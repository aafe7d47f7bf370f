// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/emoticam/internal/account"
	"github.com/taibuivan/emoticam/internal/auth"
	"github.com/taibuivan/emoticam/internal/platform/apperr"
	"github.com/taibuivan/emoticam/internal/platform/sec"
)

// memoryRepository is a minimal in-memory UserRepository for account tests.
type memoryRepository struct {
	users map[string]*auth.User
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *memoryRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepository) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func newAccountService(t *testing.T) (*account.Service, *auth.User) {
	t.Helper()

	hash, err := sec.HashPassword("current-password")
	require.NoError(t, err)

	user := &auth.User{
		ID:           "user-1",
		Email:        "ana@example.com",
		PasswordHash: hash,
		Name:         "Ana",
		Role:         auth.UserRoleParent,
		Children:     []auth.ChildProfile{{Name: "Mia", Age: 4}},
	}

	repo := &memoryRepository{users: map[string]*auth.User{user.ID: user}}

	return account.NewService(repo, slog.Default()), user
}

/*
TestService_GetProfile covers lookup of the signed-in parent's own account.
*/
func TestService_GetProfile(t *testing.T) {
	service, user := newAccountService(t)

	profile, err := service.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	_, err = service.GetProfile(context.Background(), "missing-id")
	assert.Error(t, err)
}

/*
TestService_UpdateChildren verifies whole-list replacement, including
clearing all children with a nil list.
*/
func TestService_UpdateChildren(t *testing.T) {
	service, user := newAccountService(t)

	updated, err := service.UpdateChildren(context.Background(), user.ID, []auth.ChildProfile{
		{Name: "Mia", Age: 5, Preferences: []string{"dinosaurs"}},
		{Name: "Leo", Age: 7},
	})
	require.NoError(t, err)
	require.Len(t, updated.Children, 2)
	assert.Equal(t, 5, updated.Children[0].Age)

	// Replacing with nil empties the list rather than keeping the old one.
	cleared, err := service.UpdateChildren(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.NotNil(t, cleared.Children)
	assert.Empty(t, cleared.Children)
}

/*
TestService_ChangePassword verifies the current password gate and that the
new password becomes effective immediately.
*/
func TestService_ChangePassword(t *testing.T) {
	service, user := newAccountService(t)

	// Wrong current password is rejected without touching the stored hash.
	err := service.ChangePassword(context.Background(), user.ID, "wrong-password", "next-password")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.True(t, sec.CheckPasswordHash("current-password", user.PasswordHash))

	// Correct current password rotates the hash.
	err = service.ChangePassword(context.Background(), user.ID, "current-password", "next-password")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("next-password", user.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("current-password", user.PasswordHash))
}
