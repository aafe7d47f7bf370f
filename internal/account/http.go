// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/emoticam/internal/auth"
	requestutil "github.com/taibuivan/emoticam/internal/platform/request"
	"github.com/taibuivan/emoticam/internal/platform/respond"
	"github.com/taibuivan/emoticam/internal/platform/validate"
)

// Handler implements the HTTP layer for parent account management.
//
// # Security
//
// All endpoints in this package sit behind the RequireIdentity middleware.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getMe)
	router.Put("/children", handler.updateChildren)
	router.Put("/password", handler.changePassword)

	return router
}

// # Profile Endpoints

/*
GET /api/v1/me.

Description: Retrieves the full private profile of the authenticated parent.

Response:
  - 200: auth.User: Fully hydrated account profile (password hash omitted)
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateChildrenRequest defines the expected JSON payload for child edits.
type updateChildrenRequest struct {
	Children []struct {
		Name        string   `json:"name"`
		Age         int      `json:"age"`
		Preferences []string `json:"preferences"`
	} `json:"children"`
}

/*
PUT /api/v1/me/children.

Description: Replaces the account's child profiles.

Request:
  - body: updateChildrenRequest

Response:
  - 200: auth.User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateChildren(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateChildrenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	children := make([]auth.ChildProfile, 0, len(input.Children))
	for _, child := range input.Children {
		v.Required("children.name", child.Name)
		v.Range("children.age", child.Age, 1, 18)
		children = append(children, auth.ChildProfile{
			Name:        child.Name,
			Age:         child.Age,
			Preferences: child.Preferences,
		})
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateChildren(request.Context(), userID, children)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// changePasswordRequest defines the expected JSON payload for password rotation.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
PUT /api/v1/me/password.

Description: Rotates the account password after verifying the current one.

Request:
  - body: changePasswordRequest

Response:
  - 204: Password updated
  - 400: Validation: New password too short
  - 401: ErrUnauthorized: Wrong current password or missing session
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("current_password", input.CurrentPassword)
	v.Required("new_password", input.NewPassword).MinLen("new_password", input.NewPassword, 6)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
