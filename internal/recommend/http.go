// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/emoticam/internal/platform/apperr"
	"github.com/taibuivan/emoticam/internal/platform/respond"
	requestutil "github.com/taibuivan/emoticam/internal/platform/request"
)

// Handler exposes the recommendation endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates the recommendation HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the recommendation routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.search)

	return router
}

// searchRequest is the recommendation request body. SearchQueries is a
// pointer so a missing array can be told apart from an empty one.
type searchRequest struct {
	SearchQueries *[]string      `json:"searchQueries"`
	ChildAnalysis *ChildAnalysis `json:"childAnalysis"`
}

// search handles POST /search.
//
// The two hard failures of the recommendation surface both live here: a
// request without a searchQueries array, and a server missing its provider
// credential. Everything past this point degrades instead of failing.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	var body searchRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if body.SearchQueries == nil {
		respond.Error(writer, request, apperr.ValidationError("No search queries provided"))
		return
	}

	if !handler.service.Configured() {
		respond.Error(writer, request, apperr.Misconfigured(errors.New("YouTube API key not configured")))
		return
	}

	response := handler.service.Respond(request.Context(), *body.SearchQueries, body.ChildAnalysis)

	respond.JSON(writer, http.StatusOK, response)
}
