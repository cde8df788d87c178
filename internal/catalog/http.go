// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artmarket/internal/platform/respond"
	"github.com/taibuivan/artmarket/internal/platform/validate"
	"github.com/taibuivan/artmarket/pkg/convert"
	"github.com/taibuivan/artmarket/pkg/pagination"
	"github.com/taibuivan/artmarket/pkg/query"
)

// Query parameter names accepted by the stateless catalog endpoints.
const (
	ParamCategory   = "category"
	ParamMedium     = "medium"
	ParamStatus     = "status"
	ParamMinPrice   = "min_price"
	ParamMaxPrice   = "max_price"
	ParamMinYear    = "min_year"
	ParamMaxYear    = "max_year"
	ParamMinWidth   = "min_width"
	ParamMaxWidth   = "max_width"
	ParamMinHeight  = "min_height"
	ParamMaxHeight  = "max_height"
	ParamLocation   = "location"
	ParamArtistID   = "artist_id"
	ParamArtistName = "artist_name"
	ParamFeatured   = "featured"
	ParamTrending   = "trending"
	ParamSort       = "sort"
	ParamQuery      = "q"
	ParamArtistMode = "artist"
)

// facetParams are the parameters that turn a search into search-and-filter.
var facetParams = []string{
	ParamCategory, ParamMedium, ParamStatus, ParamMinPrice, ParamMaxPrice,
	ParamMinYear, ParamMaxYear, ParamMinWidth, ParamMaxWidth, ParamMinHeight,
	ParamMaxHeight, ParamLocation, ParamArtistID, ParamArtistName,
	ParamFeatured, ParamTrending,
}

// Handler exposes the gateway as stateless HTTP endpoints.
type Handler struct {
	gateway *Gateway
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(gateway *Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Artworks
	router.Get("/artworks", handler.listArtworks)
	router.Get("/artworks/search", handler.searchArtworks)
	router.Get("/artworks/suggestions", handler.suggestions)
	router.Get("/artworks/filter-options", handler.filterOptions)

	// Artists
	router.Get("/artists", handler.listArtists)

	return router
}

// searchResult is the data block of the search endpoint.
type searchResult struct {
	Items          []Artwork `json:"items"`
	IsArtistSearch bool      `json:"is_artist_search"`
}

// # Artwork Endpoints

/*
GET /api/v1/artworks.

Description: Lists artworks matching the facet filters, newest first by default.

Request:
  - category, medium, location, artist_id: []string (repeated or comma separated)
  - status: string (active, listed, sold, reserved)
  - min_price, max_price, min_width, max_width, min_height, max_height: float
  - min_year, max_year: int
  - artist_name: string
  - featured, trending: bool
  - sort: string
  - page, limit: int

Response:
  - 200: []Artwork: Paginated artworks
  - 400: Validation: Malformed or inverted bounds
*/
func (handler *Handler) listArtworks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	criteria, err := CriteriaFromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	criteria.Limit = paginationParams.Limit
	criteria.Offset = paginationParams.Offset()

	page, err := handler.gateway.FilterArtworks(request.Context(), criteria)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items,
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, page.Total, page.HasMore))
}

/*
GET /api/v1/artworks/search.

Description: Full-text search over artworks. When the query names an artist
(or artist=true) the search runs against artist names instead. Any facet
parameter narrows the search to the intersection with those filters.

Request:
  - q: string (at least two characters)
  - artist: bool (force artist mode)
  - facet parameters as for GET /artworks
  - page, limit: int

Response:
  - 200: searchResult: Paginated hits and the search mode
  - 400: Validation: Malformed facet parameters
*/
func (handler *Handler) searchArtworks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()
	text := values.Get(ParamQuery)

	var (
		result SearchPage
		err    error
	)

	if query.Has(values, facetParams...) {
		criteria, parseErr := CriteriaFromQuery(values)
		if parseErr != nil {
			respond.Error(writer, request, parseErr)
			return
		}
		result, err = handler.gateway.SearchAndFilter(request.Context(), text, criteria, paginationParams.Page, paginationParams.Limit)
	} else {
		forceArtist := convert.ToBool(values.Get(ParamArtistMode))
		result, err = handler.gateway.SearchArtworks(request.Context(), text, paginationParams.Page, paginationParams.Limit, forceArtist)
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer,
		searchResult{Items: result.Items, IsArtistSearch: result.IsArtistSearch},
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, result.Total, result.HasMore),
	)
}

/*
GET /api/v1/artworks/suggestions.

Description: Autocomplete entries for a partial query.

Request:
  - q: string

Response:
  - 200: []Suggestion
  - 503: Suggestions backend unavailable
*/
func (handler *Handler) suggestions(writer http.ResponseWriter, request *http.Request) {
	suggestions, err := handler.gateway.Suggestions(request.Context(), request.URL.Query().Get(ParamQuery))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suggestions)
}

/*
GET /api/v1/artworks/filter-options.

Description: Distinct facet values and the observed price range.

Response:
  - 200: FilterOptions
  - 503: Catalog unavailable
*/
func (handler *Handler) filterOptions(writer http.ResponseWriter, request *http.Request) {
	options, err := handler.gateway.FilterOptions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, options)
}

// # Artist Endpoints

/*
GET /api/v1/artists.

Description: Artists whose display name contains q.

Request:
  - q: string

Response:
  - 200: []Artist
*/
func (handler *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	artists, err := handler.gateway.ArtistsByName(request.Context(), request.URL.Query().Get(ParamQuery))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, artists)
}

// # Query Parsing

// CriteriaFromQuery reads facet filters from a query string. Unparseable
// numbers are reported as field errors rather than dropped.
func CriteriaFromQuery(values url.Values) (Criteria, error) {
	criteria := DefaultCriteria()
	criteria.Categories = query.Values(values, ParamCategory)
	criteria.Mediums = query.Values(values, ParamMedium)
	criteria.Locations = query.Values(values, ParamLocation)
	criteria.ArtistIDs = query.Values(values, ParamArtistID)
	criteria.ArtistName = strings.TrimSpace(values.Get(ParamArtistName))
	criteria.OnlyFeatured = convert.ToBool(values.Get(ParamFeatured))
	criteria.OnlyTrending = convert.ToBool(values.Get(ParamTrending))

	if status := strings.TrimSpace(values.Get(ParamStatus)); status != "" {
		criteria.Status = Status(status)
	}
	if sort := strings.TrimSpace(values.Get(ParamSort)); sort != "" {
		criteria.Sort = SortOrder(sort)
	}

	validator := &validate.Validator{}
	criteria.MinPrice = parseFloat(validator, values, ParamMinPrice)
	criteria.MaxPrice = parseFloat(validator, values, ParamMaxPrice)
	criteria.MinWidthCM = parseFloat(validator, values, ParamMinWidth)
	criteria.MaxWidthCM = parseFloat(validator, values, ParamMaxWidth)
	criteria.MinHeightCM = parseFloat(validator, values, ParamMinHeight)
	criteria.MaxHeightCM = parseFloat(validator, values, ParamMaxHeight)
	criteria.MinYear = parseInt(validator, values, ParamMinYear)
	criteria.MaxYear = parseInt(validator, values, ParamMaxYear)

	if err := validator.Err(); err != nil {
		return Criteria{}, err
	}
	return criteria, nil
}

func parseFloat(validator *validate.Validator, values url.Values, key string) *float64 {
	v, err := convert.OptionalFloat(values.Get(key))
	validator.Custom(key, err != nil, "Must be a number")
	return v
}

func parseInt(validator *validate.Validator, values url.Values, key string) *int {
	v, err := convert.OptionalInt(values.Get(key))
	validator.Custom(key, err != nil, "Must be a whole number")
	return v
}
