// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth defines the parent account entity and implements the
// authentication use cases of the Emoticam platform.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"strings"
	"time"
)

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"  // Unrestricted system access.
	UserRoleParent UserRole = "parent" // Default role for registered parents.
)

// level maps a role to a numeric hierarchy level to easily check permissions.
func (r UserRole) level() int {
	switch r {
	case UserRoleAdmin:
		return 40
	case UserRoleParent:
		return 10
	default:
		return 0
	}
}

// AtLeast checks if the current role meets or exceeds the required target role.
//
// # Why numeric mapping?
//
// Using numeric levels allows simple >= comparisons instead of nested IF/SWITCH
// statements if intermediate roles are introduced later.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// ChildProfile describes one child attached to a parent account.
//
// Profiles drive the recommendation queries the dashboard generates; the API
// itself only stores and validates them.
type ChildProfile struct {
	Name        string   `json:"name"`
	Age         int      `json:"age"` // Valid range is 1..18, enforced at every write path.
	Preferences []string `json:"preferences,omitempty"`
}

// User represents a registered parent (or administrator) account.
//
// # Rules
//   - Email is unique case-insensitively and stored trimmed + lowercased.
//   - PasswordHash is generated via bcrypt exclusively by the auth service
//     and is excluded from EVERY serialized view, not just default ones.
//   - Children ages are between 1 and 18 inclusive.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"` // Explicitly omitted from JSON for security.
	Name         string         `json:"name"`
	Role         UserRole       `json:"role"`
	Children     []ChildProfile `json:"children"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
//
// All reads and writes go through this so that "  Ana@Example.COM " and
// "ana@example.com" address the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
