// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package browse holds the per-session discovery state of the storefront.

A [Session] owns one [FilterStore] and one [SearchStore]. Both are explicit
values handed out by the [Registry]; nothing here is process-global.

# State Machine

Each store moves between Idle, Loading and Loaded. Mutating criteria moves to
Idle without fetching; issuing a request moves to Loading; a response moves to
Loaded, carrying either results or an error message.

# Ordering

Every issued request and every criteria mutation bumps the store's generation.
A response is applied only if its generation is still the latest, so the most
recently issued request always wins regardless of arrival order.
*/
package browse

import (
	"context"

	"github.com/taibuivan/artmarket/internal/catalog"
)

// Status is the lifecycle state of a store.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
)

// Gateway is the subset of [catalog.Gateway] the stores call.
type Gateway interface {
	FilterArtworks(ctx context.Context, criteria catalog.Criteria) (catalog.Page, error)
	SearchArtworks(ctx context.Context, query string, page, limit int, forceArtist bool) (catalog.SearchPage, error)
	SearchAndFilter(ctx context.Context, query string, criteria catalog.Criteria, page, limit int) (catalog.SearchPage, error)
	Suggestions(ctx context.Context, input string) ([]catalog.Suggestion, error)
}

// FilterState is a snapshot of a [FilterStore].
type FilterState struct {
	Criteria    catalog.Criteria  `json:"criteria"`
	Status      Status            `json:"status"`
	Results     []catalog.Artwork `json:"results"`
	HasMore     bool              `json:"has_more"`
	Total       int               `json:"total"`
	CurrentPage int               `json:"current_page"`
	Error       string            `json:"error,omitempty"`
}

// SearchState is a snapshot of a [SearchStore].
type SearchState struct {
	Query          string            `json:"query"`
	Status         Status            `json:"status"`
	Results        []catalog.Artwork `json:"results"`
	ArtworkIDs     []string          `json:"artwork_ids"`
	HasMore        bool              `json:"has_more"`
	Total          int               `json:"total"`
	CurrentPage    int               `json:"current_page"`
	IsArtistSearch bool              `json:"is_artist_search"`

	// Filters is set when the last search was intersected with facet criteria.
	Filters *catalog.Criteria `json:"filters,omitempty"`
	Error   string            `json:"error,omitempty"`

	Suggestions        []catalog.Suggestion `json:"suggestions"`
	SuggestionsLoading bool                 `json:"suggestions_loading"`
	SuggestionsError   string               `json:"suggestions_error,omitempty"`
}
