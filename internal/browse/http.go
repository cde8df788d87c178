// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artmarket/internal/catalog"
	"github.com/taibuivan/artmarket/internal/platform/apperr"
	"github.com/taibuivan/artmarket/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/artmarket/internal/platform/request"
	"github.com/taibuivan/artmarket/internal/platform/respond"
	"github.com/taibuivan/artmarket/internal/platform/validate"
	"github.com/taibuivan/artmarket/pkg/pagination"
)

// Handler exposes the session stores over HTTP. Every route expects the
// session key resolved by the SessionID middleware.
type Handler struct {
	registry *Registry
}

// NewHandler constructs a new browse [Handler].
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Routes returns a [chi.Router] configured with the browse session endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Filter container
	router.Get("/filters", handler.getFilters)
	router.Patch("/filters", handler.patchFilters)
	router.Delete("/filters", handler.clearFilters)
	router.Put("/filters/{facet}", handler.setFilter)
	router.Delete("/filters/{facet}", handler.resetFilter)
	router.Post("/filters/apply", handler.applyFilters)
	router.Post("/filters/more", handler.loadMoreFilters)

	// Search container
	router.Get("/search", handler.getSearch)
	router.Post("/search", handler.search)
	router.Delete("/search", handler.clearSearch)
	router.Post("/search/more", handler.loadMoreSearch)
	router.Get("/search/suggestions", handler.suggestions)
	router.Delete("/search/suggestions", handler.clearSuggestions)

	// Session lifecycle
	router.Delete("/session", handler.endSession)

	return router
}

// AdminRoutes returns the operator endpoints. Callers mount them behind an
// admin role check.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/sessions", handler.sessionStats)
	return router
}

// session resolves the caller's session, creating it on first use.
func (handler *Handler) session(request *http.Request) (*Session, error) {
	key := ctxutil.GetSessionID(request.Context())
	if key == "" {
		return nil, apperr.Unauthorized("A browse session is required")
	}
	return handler.registry.Get(key), nil
}

// # Filter Endpoints

/*
GET /api/v1/browse/filters.

Response:
  - 200: FilterState
*/
func (handler *Handler) getFilters(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Filters.Snapshot())
}

/*
PATCH /api/v1/browse/filters.

Description: Merges several facets into the criteria. The store goes Idle;
nothing is fetched until the filters are applied.

Request:
  - body: Patch (facet → value, null clears)

Response:
  - 200: FilterState
  - 400: Validation: Unknown facet, wrong type or inverted range
*/
func (handler *Handler) patchFilters(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := session.Filters.SetFilters(patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Filters.Snapshot())
}

// setFilterRequest wraps a single facet value.
type setFilterRequest struct {
	Value json.RawMessage `json:"value"`
}

/*
PUT /api/v1/browse/filters/{facet}.

Request:
  - facet: string (e.g. categories, min_price)
  - body: setFilterRequest

Response:
  - 200: FilterState
  - 400: Validation: Unknown facet or invalid value
*/
func (handler *Handler) setFilter(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setFilterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	facet := requestutil.Param(request, "facet")
	if err := session.Filters.SetFilters(Patch{facet: input.Value}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Filters.Snapshot())
}

/*
DELETE /api/v1/browse/filters/{facet}.

Description: Restores one facet to its default.

Response:
  - 200: FilterState
  - 400: Validation: Unknown facet
*/
func (handler *Handler) resetFilter(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := session.Filters.ResetFilter(requestutil.Param(request, "facet")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Filters.Snapshot())
}

/*
DELETE /api/v1/browse/filters.

Response:
  - 200: FilterState (defaults, Idle)
*/
func (handler *Handler) clearFilters(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session.Filters.ClearFilters()
	respond.OK(writer, session.Filters.Snapshot())
}

// applyRequest scopes an apply. ArtworkIDs null means unscoped; an empty
// list means "nothing matches". FromSearch takes the scope from the
// session's last search instead.
type applyRequest struct {
	ArtworkIDs []string `json:"artwork_ids"`
	FromSearch bool     `json:"from_search"`
}

/*
POST /api/v1/browse/filters/apply.

Description: Fetches the first page for the current criteria. Remote
failures are reported in the state's error field, not as an HTTP error.

Request:
  - body: applyRequest (optional)

Response:
  - 200: FilterState with pagination metadata
  - 400: Validation: artwork_ids holds a non-UUID entry
*/
func (handler *Handler) applyFilters(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input applyRequest
	if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !catalog.ValidIDs(input.ArtworkIDs) {
		respond.Error(writer, request, validate.RequiredError(catalog.FieldArtworkIDs, "Must contain only valid UUIDs"))
		return
	}

	var state FilterState
	if input.FromSearch {
		state = session.ApplyFiltersToSearch(request.Context())
	} else {
		state = session.Filters.ApplyFilters(request.Context(), input.ArtworkIDs)
	}

	respond.Paginated(writer, state, filterMeta(state))
}

/*
POST /api/v1/browse/filters/more.

Response:
  - 200: FilterState with pagination metadata (unchanged when nothing more to load)
*/
func (handler *Handler) loadMoreFilters(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state := session.Filters.LoadMore(request.Context())
	respond.Paginated(writer, state, filterMeta(state))
}

// # Search Endpoints

/*
GET /api/v1/browse/search.

Response:
  - 200: SearchState
*/
func (handler *Handler) getSearch(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Search.Snapshot())
}

// searchRequestBody starts a search. UseFilters intersects it with the
// session's current filter criteria.
type searchRequestBody struct {
	Query      string `json:"q"`
	Page       int    `json:"page"`
	UseFilters bool   `json:"use_filters"`
}

/*
POST /api/v1/browse/search.

Request:
  - body: searchRequestBody

Response:
  - 200: SearchState with pagination metadata
  - 400: ErrInvalidJSON
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input searchRequestBody
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var state SearchState
	if input.UseFilters {
		state = session.Search.SearchWithFilters(request.Context(), input.Query, session.Filters.Snapshot().Criteria, input.Page)
	} else {
		state = session.Search.Search(request.Context(), input.Query, input.Page)
	}

	respond.Paginated(writer, state, searchMeta(state))
}

/*
POST /api/v1/browse/search/more.

Response:
  - 200: SearchState with pagination metadata
*/
func (handler *Handler) loadMoreSearch(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state := session.Search.LoadMore(request.Context())
	respond.Paginated(writer, state, searchMeta(state))
}

/*
DELETE /api/v1/browse/search.

Response:
  - 200: SearchState (Idle)
*/
func (handler *Handler) clearSearch(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session.Search.Clear()
	respond.OK(writer, session.Search.Snapshot())
}

/*
GET /api/v1/browse/search/suggestions.

Request:
  - q: string

Response:
  - 200: SearchState (suggestion fields populated)
*/
func (handler *Handler) suggestions(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Search.FetchSuggestions(request.Context(), request.URL.Query().Get("q")))
}

/*
DELETE /api/v1/browse/search/suggestions.

Response:
  - 204: No Content
*/
func (handler *Handler) clearSuggestions(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.session(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session.Search.ClearSuggestions()
	respond.NoContent(writer)
}

// # Session Endpoints

/*
DELETE /api/v1/browse/session.

Description: Discards the caller's filter and search state.

Response:
  - 204: No Content
*/
func (handler *Handler) endSession(writer http.ResponseWriter, request *http.Request) {
	key := ctxutil.GetSessionID(request.Context())
	if key == "" {
		respond.Error(writer, request, apperr.Unauthorized("A browse session is required"))
		return
	}

	handler.registry.Remove(key)
	respond.NoContent(writer)
}

/*
GET /api/v1/admin/sessions.

Response:
  - 200: {"active": int}
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) sessionStats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]int{"active": handler.registry.Len()})
}

// # Helpers

func filterMeta(state FilterState) pagination.Meta {
	return pagination.NewMeta(state.CurrentPage, state.Criteria.EffectiveLimit(), state.Total, state.HasMore)
}

func searchMeta(state SearchState) pagination.Meta {
	limit := catalog.DefaultLimit
	if state.Filters != nil {
		limit = state.Filters.EffectiveLimit()
	}
	return pagination.NewMeta(state.CurrentPage, limit, state.Total, state.HasMore)
}
