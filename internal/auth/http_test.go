// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/emoticam/internal/auth"
)

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()

	service, _, _ := newTestService(t)
	return auth.NewHandler(service).Routes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

// sessionCookie extracts the auth cookie from a response, or nil.
func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "auth-token" {
			return cookie
		}
	}
	return nil
}

/*
TestHandler_Register_SetsSessionCookie verifies a successful registration
returns 201 with the profile and immediately starts a session.
*/
func TestHandler_Register_SetsSessionCookie(t *testing.T) {
	router := newAuthRouter(t)

	recorder := postJSON(t, router, "/register", `{
		"email": "Ana@Example.com",
		"password": "correct-horse",
		"name": "Ana",
		"children": [{"name": "Mia", "age": 4, "preferences": ["dinosaurs"]}]
	}`)

	require.Equal(t, http.StatusCreated, recorder.Code)

	cookie := sessionCookie(recorder)
	require.NotNil(t, cookie, "registration must start a session")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var envelope struct {
		Data struct {
			Email        string `json:"email"`
			Role         string `json:"role"`
			PasswordHash string `json:"password_hash"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "ana@example.com", envelope.Data.Email)
	assert.Equal(t, "parent", envelope.Data.Role)
	assert.Empty(t, envelope.Data.PasswordHash, "hash must never serialize")

	// The hash must not appear under any key.
	assert.NotContains(t, recorder.Body.String(), "$2a$")
}

/*
TestHandler_Register_Validation covers the boundary rules: email shape,
password length, and child age bounds.
*/
func TestHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing_email", `{"password": "correct-horse", "name": "Ana"}`},
		{"bad_email", `{"email": "not-an-email", "password": "correct-horse", "name": "Ana"}`},
		{"short_password", `{"email": "ana@example.com", "password": "abc", "name": "Ana"}`},
		{"missing_name", `{"email": "ana@example.com", "password": "correct-horse"}`},
		{"child_age_out_of_range", `{
			"email": "ana@example.com", "password": "correct-horse", "name": "Ana",
			"children": [{"name": "Mia", "age": 0}]
		}`},
		{"child_missing_name", `{
			"email": "ana@example.com", "password": "correct-horse", "name": "Ana",
			"children": [{"age": 4}]
		}`},
		{"malformed_json", `{"email": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(t)
			recorder := postJSON(t, router, "/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Nil(t, sessionCookie(recorder))
		})
	}
}

/*
TestHandler_LoginLogout_CookieLifecycle walks the full session lifecycle:
login sets the cookie, logout discards it.
*/
func TestHandler_LoginLogout_CookieLifecycle(t *testing.T) {
	router := newAuthRouter(t)

	registered := postJSON(t, router, "/register", `{
		"email": "ana@example.com",
		"password": "correct-horse",
		"name": "Ana"
	}`)
	require.Equal(t, http.StatusCreated, registered.Code)

	// Login with the wrong password: 401 and no cookie.
	rejected := postJSON(t, router, "/login", `{"email": "ana@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rejected.Code)
	assert.Nil(t, sessionCookie(rejected))

	// Login with the right password: 200 and a fresh session cookie.
	accepted := postJSON(t, router, "/login", `{"email": "ana@example.com", "password": "correct-horse"}`)
	require.Equal(t, http.StatusOK, accepted.Code)

	cookie := sessionCookie(accepted)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.Positive(t, cookie.MaxAge)

	// Logout: 204 and the cookie is re-issued empty with Max-Age=0.
	out := postJSON(t, router, "/logout", ``)
	assert.Equal(t, http.StatusNoContent, out.Code)

	cleared := sessionCookie(out)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge <= 0)
}

/*
TestHandler_Login_MissingFields verifies empty credentials short-circuit to
400 before any store access.
*/
func TestHandler_Login_MissingFields(t *testing.T) {
	router := newAuthRouter(t)

	recorder := postJSON(t, router, "/login", `{"email": "", "password": ""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
