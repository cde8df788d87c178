// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// Backend is the remote side of the gateway: one method per stored
// procedure or table read. Implementations return rows as stored; the
// gateway owns pagination, totals and normalization.
type Backend interface {
	// FilterArtworks calls filter_artworks.
	FilterArtworks(ctx context.Context, params FilterParams) ([]Artwork, error)

	// SearchArtworks calls search_artworks. A nil limit requests every match.
	SearchArtworks(ctx context.Context, query string, limit *int, offset int, byArtist bool) ([]Artwork, error)

	// CountSearchArtworks calls count_search_artworks.
	CountSearchArtworks(ctx context.Context, query string, byArtist bool) (int, error)

	// ArtworkSuggestions calls get_artwork_suggestions.
	ArtworkSuggestions(ctx context.Context, input string) ([]Suggestion, error)

	// Facet value scans over the artworks table. Duplicates are allowed.
	ListCategories(ctx context.Context) ([]string, error)
	ListMediums(ctx context.Context) ([]string, error)
	ListLocations(ctx context.Context) ([]string, error)
	ListPrices(ctx context.Context) ([]float64, error)

	// FindArtistsByName matches artist profiles by case-insensitive partial name.
	FindArtistsByName(ctx context.Context, query string, limit int) ([]Artist, error)
}

// CombinedSearcher is implemented by backends that can apply the text
// predicate inside filter_artworks, answering search-and-filter in one
// round trip with no candidate cap.
type CombinedSearcher interface {
	SearchFilterArtworks(ctx context.Context, query string, byArtist bool, params FilterParams) ([]Artwork, error)
}

// CountCache stores exact totals by query signature. Implementations
// swallow their own failures: a miss and an outage look the same.
type CountCache interface {
	Get(ctx context.Context, key string) (int, bool)
	Set(ctx context.Context, key string, total int)
}

type noCountCache struct{}

func (noCountCache) Get(context.Context, string) (int, bool) { return 0, false }
func (noCountCache) Set(context.Context, string, int)        {}
