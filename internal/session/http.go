// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/internal/platform/middleware"
	requestutil "github.com/taibuivan/shanhai/internal/platform/request"
	"github.com/taibuivan/shanhai/internal/platform/respond"
)

// Handler implements the HTTP layer for navigation sessions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the session endpoints.
//
// # Routing Strategy
//
//   - Public: anyone may start a session.
//   - Token: reading and driving a session needs the token returned at creation.
//     [middleware.Authenticate] must run earlier in the chain.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createSession)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireSession)

		protected.Get("/current", handler.currentSession)
		protected.Post("/current/events", handler.applyEvent)
	})

	return router
}

func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	started, err := handler.service.Create(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, started)
}

func (handler *Handler) currentSession(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.service.Current(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

func (handler *Handler) applyEvent(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input navigation.EventInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	next, err := handler.service.Apply(request.Context(), sessionID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, next)
}
