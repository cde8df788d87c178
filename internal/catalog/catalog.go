// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog is the remote query gateway for artwork discovery.

It translates filter criteria and search queries into calls to the catalog's
stored procedures (filter_artworks, search_artworks, count_search_artworks,
get_artwork_suggestions) and table reads, then normalizes the rows into pages.

# Pagination

Every page is fetched with one lookahead row (limit+1). The extra row proves
HasMore and is dropped before the page is returned. Totals are exact on the
first page of a query; later pages reuse a cached exact count when one exists
and otherwise report an estimate.

# Null Semantics

Empty facets are sent as SQL NULL, never as empty arrays, so the database
treats them as unconstrained.
*/
package catalog

import "time"

// # Enumerations

// Status is the listing state of an artwork.
type Status string

const (
	StatusActive   Status = "active"
	StatusListed   Status = "listed"
	StatusSold     Status = "sold"
	StatusReserved Status = "reserved"
)

// Statuses lists every accepted [Status] in display order.
var Statuses = []Status{StatusActive, StatusListed, StatusSold, StatusReserved}

// SortOrder is interpreted by the database only; results are never re-sorted here.
type SortOrder string

const (
	SortNewest    SortOrder = "created_at_desc"
	SortOldest    SortOrder = "created_at_asc"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortTitle     SortOrder = "title_asc"
	SortYearDesc  SortOrder = "year_desc"
)

// SortOrders lists every accepted [SortOrder].
var SortOrders = []SortOrder{SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortTitle, SortYearDesc}

// SuggestionKind tells the storefront what a suggestion completes to.
type SuggestionKind string

const (
	SuggestionArtwork  SuggestionKind = "artwork"
	SuggestionArtist   SuggestionKind = "artist"
	SuggestionCategory SuggestionKind = "category"
)

// # Limits

const (
	DefaultStatus = StatusActive
	DefaultSort   = SortNewest
	DefaultLimit  = 20
	MaxLimit      = 100

	// MinQueryLength is the shortest trimmed input (in runes) that reaches the database.
	MinQueryLength = 2

	// SearchCandidateCap bounds the id set collected by two-phase search-and-filter.
	SearchCandidateCap = 1000

	// ArtistMatchLimit caps artist-name lookups.
	ArtistMatchLimit = 10
)

// # Records

// Artwork is the summary row returned by the catalog procedures.
type Artwork struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	ArtistID   *string   `json:"artist_id"`
	ArtistName *string   `json:"artist_name"`
	Category   *string   `json:"category"`
	Medium     *string   `json:"medium"`
	Status     Status    `json:"status"`
	Price      *float64  `json:"price"`
	Year       *int      `json:"year"`
	WidthCM    *float64  `json:"width_cm"`
	HeightCM   *float64  `json:"height_cm"`
	Location   *string   `json:"location"`
	ImageURL   *string   `json:"image_url"`
	IsFeatured bool      `json:"is_featured"`
	IsTrending bool      `json:"is_trending"`
	CreatedAt  time.Time `json:"created_at"`

	// Rank is the text-match relevance; only search results carry it.
	Rank *float64 `json:"rank,omitempty"`
}

// Suggestion is one autocomplete entry from get_artwork_suggestions.
type Suggestion struct {
	Text      string         `json:"text"`
	Kind      SuggestionKind `json:"kind"`
	ArtworkID *string        `json:"artwork_id,omitempty"`
}

// Artist is a profile row with the artist role.
type Artist struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// PriceBounds is the observed price range across listed artworks.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterOptions are the facet values a storefront offers for filtering.
type FilterOptions struct {
	Categories []string     `json:"categories"`
	Mediums    []string     `json:"mediums"`
	Locations  []string     `json:"locations"`
	Price      *PriceBounds `json:"price"`
}

// # Pages

// Page is one window of results.
type Page struct {
	Items   []Artwork `json:"items"`
	HasMore bool      `json:"has_more"`
	Total   int       `json:"total"`
}

// SearchPage is a [Page] plus the mode the search ran in.
type SearchPage struct {
	Page
	IsArtistSearch bool `json:"is_artist_search"`
}

// IDs returns the artwork ids of the page in order.
func (p Page) IDs() []string {
	ids := make([]string, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.ID
	}
	return ids
}

func emptyPage() Page {
	return Page{Items: []Artwork{}}
}
