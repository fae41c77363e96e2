// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bestiary exposes the read-only catalog over HTTP.

It looks up mountains, waters, creatures and depictions, computes the water
layout of a mountain, and answers fuzzy name searches. Every response is
derived from the in-memory [atlas.Catalog]; nothing is written.
*/
package bestiary

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/layout"
	"github.com/taibuivan/shanhai/internal/platform/apperr"
	"github.com/taibuivan/shanhai/pkg/pagination"
)

// Service implements catalog lookups for the HTTP layer.
type Service struct {
	catalog *atlas.Catalog
	engine  layout.Engine
	logger  *slog.Logger
}

// NewService constructs a [Service] over catalog.
func NewService(catalog *atlas.Catalog, engine layout.Engine, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		engine:  engine,
		logger:  logger,
	}
}

// Fingerprint identifies the catalog revision; handlers use it as the ETag.
func (service *Service) Fingerprint() string {
	return service.catalog.Fingerprint()
}

// # Locations

// ListLocations returns every mountain in catalog order.
func (service *Service) ListLocations(_ context.Context) []atlas.Location {
	return service.catalog.Locations()
}

// GetLocation returns the mountain with id.
func (service *Service) GetLocation(_ context.Context, id string) (atlas.Location, error) {
	loc, ok := service.catalog.Location(id)
	if !ok {
		return atlas.Location{}, apperr.NotFound("Location")
	}
	return loc, nil
}

/*
LocationLayout arranges the waters linked to mountain id around it.

Returns:
  - layout.Layout: nodes in link order; empty when the mountain links no known water
  - error: apperr.NotFound if the mountain does not exist
*/
func (service *Service) LocationLayout(ctx context.Context, id string) (layout.Layout, error) {
	loc, err := service.GetLocation(ctx, id)
	if err != nil {
		return layout.Layout{}, err
	}
	return service.engine.Compute(loc, service.catalog.WatersOf(loc)), nil
}

// # Waters

// GetWater returns the water with id.
func (service *Service) GetWater(_ context.Context, id string) (atlas.Water, error) {
	water, ok := service.catalog.Water(id)
	if !ok {
		return atlas.Water{}, apperr.NotFound("Water")
	}
	return water, nil
}

/*
ListWaterCreatures returns one page of the creatures linked to water id.

Returns:
  - []atlas.Creature: the page, in link order
  - int: total number of resolvable creatures
  - error: apperr.NotFound if the water does not exist
*/
func (service *Service) ListWaterCreatures(ctx context.Context, id string, page pagination.Params) ([]atlas.Creature, int, error) {
	water, err := service.GetWater(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	creatures := service.catalog.CreaturesOf(water)
	start, end := page.Window(len(creatures))
	return creatures[start:end], len(creatures), nil
}

// # Creatures

// GetCreature returns the creature with id.
func (service *Service) GetCreature(_ context.Context, id string) (atlas.Creature, error) {
	creature, ok := service.catalog.Creature(id)
	if !ok {
		return atlas.Creature{}, apperr.NotFound("Creature")
	}
	return creature, nil
}

/*
GetDepiction returns the depiction of creature id for period.

A creature without that period yields its first depiction instead.

Returns:
  - atlas.Depiction: the matching or fallback depiction
  - error: VALIDATION_ERROR for an unknown period, NOT_FOUND for an unknown
    creature or one without any depiction
*/
func (service *Service) GetDepiction(ctx context.Context, id, rawPeriod string) (atlas.Depiction, error) {
	period, ok := atlas.ParsePeriod(rawPeriod)
	if !ok {
		return atlas.Depiction{}, apperr.ValidationError("Invalid period", apperr.FieldError{
			Field:   "period",
			Message: "must be one of " + strings.Join(atlas.PeriodStrings(), ", "),
		})
	}

	creature, err := service.GetCreature(ctx, id)
	if err != nil {
		return atlas.Depiction{}, err
	}

	depiction, ok := service.catalog.Depiction(creature, period)
	if !ok {
		return atlas.Depiction{}, apperr.NotFound("Depiction")
	}
	return depiction, nil
}

// # Search

// Search runs a fuzzy name search. An empty query is rejected.
func (service *Service) Search(ctx context.Context, query string, limit int) ([]atlas.Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.ValidationError("Search query is required", apperr.FieldError{
			Field:   "q",
			Message: "is required",
		})
	}

	matches := service.catalog.Search(query, limit)
	service.logger.DebugContext(ctx, "catalog_search",
		slog.String("query", query),
		slog.Int("matches", len(matches)),
	)

	if matches == nil {
		matches = []atlas.Match{}
	}
	return matches, nil
}
