// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/emoticam/internal/platform/request"
	"github.com/taibuivan/emoticam/internal/platform/respond"
	"github.com/taibuivan/emoticam/internal/platform/sec"
	"github.com/taibuivan/emoticam/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry and exit points
// (Registration, Login, Logout). Handlers contain NO business logic or
// database queries.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new parent account and starts a session.
//   - POST /login    : Authenticates and sets the session cookie.
//   - POST /logout   : Clears the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

// childInput mirrors [ChildProfile] at the JSON boundary.
type childInput struct {
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Preferences []string `json:"preferences"`
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Name     string       `json:"name"`
	Children []childInput `json:"children"`
}

// register handles POST /api/v1/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the account profile and a
//     Set-Cookie header starting the session.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation (Explicit & Mandatory) ────────────────────

	v := &validate.Validator{}
	v.Required("email", input.Email).Email("email", input.Email)
	v.Required("password", input.Password).MinLen("password", input.Password, 6)
	v.Required("name", input.Name).MaxLen("name", input.Name, 100)

	children := make([]ChildProfile, 0, len(input.Children))
	for _, child := range input.Children {
		v.Required("children.name", child.Name)
		v.Range("children.age", child.Age, 1, 18)
		children = append(children, ChildProfile{
			Name:        child.Name,
			Age:         child.Age,
			Preferences: child.Preferences,
		})
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Children: children,
	})

	// Service handles uniqueness checks and bcrypt hashing. Domain errors
	// are passed to the respond helper which maps them to HTTP statuses.
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Session Start ──────────────────────────────────────────────────

	session, err := handler.authService.StartSession(user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.SessionCookie(session.Token, session.TTL))
	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the profile and a Set-Cookie header.
//   - Writes HTTP 401 Unauthorized for bad credentials, without leaking
//     whether the email or the password was wrong.
//   - Writes HTTP 429 when the throttle window is exhausted.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	http.SetCookie(writer, sec.SessionCookie(session.Token, session.TTL))
	respond.OK(writer, session.User)
}

// logout handles POST /api/v1/auth/logout requests.
//
// Sessions are stateless, so logout is purely a client-side affair: the
// same cookie name is re-issued empty with Max-Age=0.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, sec.ClearSessionCookie())
	respond.NoContent(writer)
}
