// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"
	"time"

	"github.com/taibuivan/emoticam/internal/platform/constants"
)

// # Session Cookie Transport

// SessionCookie builds the Set-Cookie directive that carries a signed session
// token to the browser.
//
// # Contract
//
// The cookie is HttpOnly (no script access), Secure (HTTPS only),
// SameSite=Strict (no cross-site sends), scoped to the whole site, and
// expires together with the token it carries.
func SessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie builds the Set-Cookie directive that ends a session.
//
// It reuses the session cookie name with an empty value and Max-Age=0 so the
// browser discards the credential immediately.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:   constants.SessionCookieName,
		Value:  "",
		Path:   constants.SessionCookiePath,
		MaxAge: -1, // Serialized as Max-Age=0.

		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// TokenFromRequest extracts the raw session token from the request cookie.
//
// Returns an empty string if the cookie is absent. Verification is the
// caller's job; this helper only handles transport.
func TokenFromRequest(request *http.Request) string {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
