// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/emoticam/internal/platform/constants"
	"github.com/taibuivan/emoticam/internal/platform/ctxutil"
	"github.com/taibuivan/emoticam/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenStr string) (*sec.SessionClaims, error)
}

// IdentityResolver re-checks that a token's subject still exists in the store.
//
// Session tokens are stateless. Re-fetching the identity on protected routes
// is what makes deleting an account an effective revocation.
type IdentityResolver interface {
	IdentityExists(ctx context.Context, userID string) bool
}

// Authenticate extracts and verifies the session token from the auth cookie.
//
// # Flow
//  1. Read the "auth-token" cookie.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify signature and expiry via [TokenVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// A missing cookie, malformed token, bad signature, or expired token all
// resolve to an anonymous request — never to an HTTP error. Whether
// anonymity is acceptable is decided per route by [RequireIdentity].
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Cookie Extraction ──────────────────────────────────────────
			token := sec.TokenFromRequest(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(token)
			if err != nil {
				// Invalid or expired tokens degrade to anonymous.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireIdentity blocks requests that cannot be resolved to a live identity.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. Re-fetch the identity via [IdentityResolver] so that accounts deleted
//     after token issuance are treated as logged out.
//  3. On any failure, redirect to the login page instead of returning an
//     error body — an expired session is a navigation event, not a fault.
func RequireIdentity(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetClaims(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				http.Redirect(writer, request, constants.LoginRedirectPath, http.StatusSeeOther)
				return
			}

			// ── 2. Liveness Check ─────────────────────────────────────────────
			if !resolver.IdentityExists(request.Context(), claims.UserID) {
				http.Redirect(writer, request, constants.LoginRedirectPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
