// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package account provides profile management for authenticated parents:
// viewing the account, editing child profiles, and changing the password.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/emoticam/internal/auth"
	"github.com/taibuivan/emoticam/internal/platform/apperr"
	"github.com/taibuivan/emoticam/internal/platform/sec"
)

// # Service Layer

// Service orchestrates business logic for parent accounts.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private profile of a parent.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated account (hash excluded from serialization)
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
UpdateChildren replaces the account's child profiles with the given list.

Description: Child profiles are edited as one unit on the dashboard, so the
API replaces the whole list rather than patching individual entries.

Parameters:
  - context: context.Context
  - userID: string
  - children: []auth.ChildProfile (ages already validated at the boundary)

Returns:
  - *auth.User: The updated account
  - error: Update or storage failures
*/
func (service *Service) UpdateChildren(context context.Context, userID string, children []auth.ChildProfile) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if children == nil {
		children = []auth.ChildProfile{}
	}
	user.Children = children

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_children_failed: %w", err)
	}

	service.logger.Info("children_updated",
		slog.String("user_id", userID),
		slog.Int("count", len(children)),
	)

	return user, nil
}

/*
ChangePassword rotates the account password.

Description: Verifies the current password before accepting the new one, then
stores only the bcrypt hash via the dedicated UpdatePassword path.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: apperr.Unauthorized on a wrong current password, storage failures otherwise
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_password_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, newHash); err != nil {
		return fmt.Errorf("account_service_password_update_failed: %w", err)
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))

	return nil
}
