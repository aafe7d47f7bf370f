// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// UserRepository defines the data access contract for parent accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Emoticam is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	// The email must already be normalized via [NormalizeEmail].
	//
	// Returns [apperr.NotFound] if no account is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a brand-new parent account to the storage.
	//
	// Returns [apperr.Conflict] if the email unique constraint fails.
	Create(ctx context.Context, user *User) error

	// Update persists changes to mutable profile fields (Name, Children).
	// Passwords must be updated via [UpdatePassword].
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	// This is separate from [Update] to prevent accidental overwrites
	// during unrelated profile updates.
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// LoginThrottle defines the contract for tracking failed login attempts.
//
// # Why a separate store?
//
// Failure counters are volatile and must expire on their own. Keeping them
// in Redis keeps brute-force bookkeeping off the primary database entirely.
type LoginThrottle interface {
	// RecordFailure increments the failure counter for an email and refreshes
	// its expiry window.
	RecordFailure(ctx context.Context, email string) error

	// TooManyFailures reports whether the email has exhausted its allowance
	// of consecutive failed attempts.
	TooManyFailures(ctx context.Context, email string) (bool, error)

	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, email string) error
}
