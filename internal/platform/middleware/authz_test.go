// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/emoticam/internal/platform/ctxutil"
	"github.com/taibuivan/emoticam/internal/platform/middleware"
	"github.com/taibuivan/emoticam/internal/platform/sec"
)

// stubVerifier accepts exactly one token value.
type stubVerifier struct {
	validToken string
	claims     *sec.SessionClaims
}

func (verifier *stubVerifier) Verify(tokenStr string) (*sec.SessionClaims, error) {
	if tokenStr == verifier.validToken {
		return verifier.claims, nil
	}
	return nil, errors.New("invalid token")
}

// stubResolver reports a fixed set of live user IDs.
type stubResolver struct {
	live map[string]bool
}

func (resolver *stubResolver) IdentityExists(_ context.Context, userID string) bool {
	return resolver.live[userID]
}

// claimsCapture records the claims visible to the terminal handler.
func claimsCapture(target **sec.SessionClaims) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*target = ctxutil.GetClaims(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate pins the degrade-to-anonymous contract: missing, invalid,
and expired tokens all let the request through without claims, and only a
verifiable token injects an identity.
*/
func TestAuthenticate(t *testing.T) {
	verifier := &stubVerifier{
		validToken: "good-token",
		claims:     &sec.SessionClaims{UserID: "user-1", Role: "parent"},
	}

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantClaims bool
	}{
		{"no_cookie", nil, false},
		{"invalid_token", &http.Cookie{Name: "auth-token", Value: "tampered"}, false},
		{"valid_token", &http.Cookie{Name: "auth-token", Value: "good-token"}, true},
		{"unrelated_cookie", &http.Cookie{Name: "theme", Value: "dark"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.SessionClaims
			handler := middleware.Authenticate(verifier)(claimsCapture(&seen))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				request.AddCookie(tt.cookie)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			// Anonymous or not, the request always reaches the handler.
			assert.Equal(t, http.StatusOK, recorder.Code)

			if tt.wantClaims {
				assert.NotNil(t, seen)
				assert.Equal(t, "user-1", seen.UserID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

/*
TestRequireIdentity verifies the protected-route gate: anonymous requests
and requests whose account no longer exists are redirected to login, while
live identities pass.
*/
func TestRequireIdentity(t *testing.T) {
	resolver := &stubResolver{live: map[string]bool{"user-1": true}}

	tests := []struct {
		name         string
		claims       *sec.SessionClaims
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "anonymous_redirects",
			claims:       nil,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:         "deleted_account_redirects",
			claims:       &sec.SessionClaims{UserID: "user-gone"},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:       "live_identity_passes",
			claims:     &sec.SessionClaims{UserID: "user-1"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireIdentity(resolver)(http.HandlerFunc(
				func(writer http.ResponseWriter, request *http.Request) {
					writer.WriteHeader(http.StatusOK)
				},
			))

			request := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithClaims(request.Context(), tt.claims))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, recorder.Header().Get("Location"))
			}
		})
	}
}
