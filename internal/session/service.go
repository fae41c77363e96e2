// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/internal/platform/apperr"
	"github.com/taibuivan/shanhai/internal/view"
	"github.com/taibuivan/shanhai/pkg/uuidv7"
)

// TokenIssuer signs session tokens. It is satisfied by [sec.TokenService].
type TokenIssuer interface {
	Issue(sessionID string, timeToLive time.Duration) (string, error)
}

// View is a session together with the projection of its current state.
type View struct {
	ID     string      `json:"id"`
	Screen view.Screen `json:"view"`
}

// Started is returned when a session is created.
type Started struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Session   View      `json:"session"`
}

// Service creates sessions and runs navigation events against them.
type Service struct {
	store     Store
	tokens    TokenIssuer
	catalog   navigation.Catalog
	projector *view.Projector
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a session [Service].
func NewService(store Store, tokens TokenIssuer, catalog navigation.Catalog, projector *view.Projector, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		tokens:    tokens,
		catalog:   catalog,
		projector: projector,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

/*
Create starts a new navigation in the idle map state.

Returns:
  - *Started: the signed token and the initial view
  - error: storage or signing failures
*/
func (service *Service) Create(ctx context.Context) (*Started, error) {
	sessionID := uuidv7.New()

	state := navigation.Initial()
	if err := service.store.Create(ctx, sessionID, state, service.ttl); err != nil {
		return nil, err
	}

	token, err := service.tokens.Issue(sessionID, service.ttl)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "navigation_session_created", slog.String("session_id", sessionID))

	return &Started{
		Token:     token,
		ExpiresAt: service.now().Add(service.ttl).UTC(),
		Session:   service.project(sessionID, state),
	}, nil
}

// Current returns the projected view of session id.
func (service *Service) Current(ctx context.Context, id string) (View, error) {
	state, err := service.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return service.project(id, state), nil
}

/*
Apply parses input and runs it as one transition of session id.

Returns:
  - View: the projection of the new state
  - error: VALIDATION_ERROR for a malformed event, CONFLICT when the current
    state does not accept it, NOT_FOUND for an unknown or expired session
*/
func (service *Service) Apply(ctx context.Context, id string, input navigation.EventInput) (View, error) {
	event, err := navigation.ParseEvent(input)
	if err != nil {
		return View{}, err
	}

	var from string
	next, err := service.store.Update(ctx, id, service.ttl, func(current navigation.State) (navigation.State, error) {
		from = current.Name()
		return navigation.Resume(service.catalog, current).Apply(event)
	})

	if errors.Is(err, navigation.ErrIgnored) {
		service.logger.DebugContext(ctx, "navigation_event_ignored",
			slog.String("session_id", id),
			slog.String("state", from),
			slog.String("event", string(event.Type())),
		)
		return View{}, apperr.Conflict(fmt.Sprintf("Event %q is not accepted in state %q", event.Type(), from))
	}
	if err != nil {
		return View{}, err
	}

	service.logger.InfoContext(ctx, "navigation_transition",
		slog.String("session_id", id),
		slog.String("event", string(event.Type())),
		slog.String("from", from),
		slog.String("to", next.Name()),
	)

	return service.project(id, next), nil
}

func (service *Service) project(id string, state navigation.State) View {
	return View{ID: id, Screen: service.projector.Project(state)}
}
