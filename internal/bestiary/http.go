// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bestiary

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/layout"
	requestutil "github.com/taibuivan/shanhai/internal/platform/request"
	"github.com/taibuivan/shanhai/internal/platform/respond"
	"github.com/taibuivan/shanhai/pkg/pagination"
	"github.com/taibuivan/shanhai/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog browsing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
//
// # Caching
//
// The catalog never changes while the process runs, so every response carries
// the catalog fingerprint as its ETag and a matching If-None-Match gets a 304.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.conditional)

	router.Get("/locations", handler.listLocations)
	router.Get("/locations/{id}", handler.getLocation)
	router.Get("/locations/{id}/layout", handler.getLayout)

	router.Get("/waters/{id}", handler.getWater)
	router.Get("/waters/{id}/creatures", handler.listWaterCreatures)

	router.Get("/creatures/{id}", handler.getCreature)
	router.Get("/creatures/{id}/depictions/{period}", handler.getDepiction)

	router.Get("/search", handler.search)

	return router
}

// conditional answers revalidation requests before any handler runs.
func (handler *Handler) conditional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if respond.NotModified(writer, request, handler.service.Fingerprint()) {
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Response Shapes

// nodeResponse adds the SVG path to a layout node.
type nodeResponse struct {
	layout.Node
	Path string `json:"path"`
}

type layoutResponse struct {
	Location atlas.Location `json:"location"`
	Nodes    []nodeResponse `json:"nodes"`
}

// # Locations

func (handler *Handler) listLocations(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.ListLocations(request.Context()))
}

func (handler *Handler) getLocation(writer http.ResponseWriter, request *http.Request) {
	loc, err := handler.service.GetLocation(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, loc)
}

func (handler *Handler) getLayout(writer http.ResponseWriter, request *http.Request) {
	arrangement, err := handler.service.LocationLayout(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, layoutResponse{
		Location: arrangement.Location,
		Nodes: slice.Map(arrangement.Nodes, func(node layout.Node) nodeResponse {
			return nodeResponse{Node: node, Path: node.Curve.Path()}
		}),
	})
}

// # Waters

func (handler *Handler) getWater(writer http.ResponseWriter, request *http.Request) {
	water, err := handler.service.GetWater(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, water)
}

func (handler *Handler) listWaterCreatures(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	creatures, total, err := handler.service.ListWaterCreatures(request.Context(), requestutil.Param(request, "id"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, creatures, pagination.NewMeta(page.Page, page.Limit, total))
}

// # Creatures

func (handler *Handler) getCreature(writer http.ResponseWriter, request *http.Request) {
	creature, err := handler.service.GetCreature(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, creature)
}

func (handler *Handler) getDepiction(writer http.ResponseWriter, request *http.Request) {
	depiction, err := handler.service.GetDepiction(
		request.Context(),
		requestutil.Param(request, "id"),
		requestutil.Param(request, "period"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, depiction)
}

// # Search

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil {
		limit = atlas.DefaultSearchLimit
	}

	matches, err := handler.service.Search(request.Context(), query.Get("q"), min(limit, pagination.MaxLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, matches)
}
