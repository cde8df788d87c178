// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/artmarket/internal/platform/apperr"
	"github.com/taibuivan/artmarket/pkg/pagination"
	"github.com/taibuivan/artmarket/pkg/slice"
	"github.com/taibuivan/artmarket/pkg/slug"
)

// Gateway runs catalog queries against a [Backend].
//
// It is safe for concurrent use; it holds no per-query state.
type Gateway struct {
	backend      Backend
	counts       CountCache
	candidateCap int
	logger       *slog.Logger
}

// NewGateway constructs a [Gateway]. A nil counts disables count caching and
// a non-positive candidateCap falls back to [SearchCandidateCap].
func NewGateway(backend Backend, counts CountCache, candidateCap int, logger *slog.Logger) *Gateway {
	if counts == nil {
		counts = noCountCache{}
	}
	if candidateCap <= 0 {
		candidateCap = SearchCandidateCap
	}

	return &Gateway{
		backend:      backend,
		counts:       counts,
		candidateCap: candidateCap,
		logger:       logger,
	}
}

// # Filtering

// FilterArtworks returns one page of artworks matching criteria.
//
// On the first page (offset 0) a second, unranked and unlimited request
// provides the exact total; if it fails the total falls back to the
// lookahead estimate. Later pages use a cached exact total when available.
// A non-nil scope with no usable ids yields an empty page without a call.
func (gateway *Gateway) FilterArtworks(ctx context.Context, criteria Criteria) (Page, error) {
	params, err := criteria.Params()
	if err != nil {
		return Page{}, err
	}

	// An empty scope would reach the backend as NULL, meaning "any artwork".
	if params.ArtworkIDs != nil && len(params.ArtworkIDs) == 0 {
		return emptyPage(), nil
	}

	key, keyErr := filterCountKey(params)
	countKey := gateway.countKey(ctx, key, keyErr)
	return gateway.paginate(ctx, params, gateway.backend.FilterArtworks, countKey, "filter_artworks")
}

// countKey yields "" when no signature could be built; the total is then
// neither cached nor read back.
func (gateway *Gateway) countKey(ctx context.Context, key string, err error) string {
	if err != nil {
		gateway.logger.WarnContext(ctx, "count_key_failed", slog.Any("error", err))
		return ""
	}
	return key
}

func (gateway *Gateway) cachedTotal(ctx context.Context, key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	return gateway.counts.Get(ctx, key)
}

func (gateway *Gateway) storeTotal(ctx context.Context, key string, total int) {
	if key != "" {
		gateway.counts.Set(ctx, key, total)
	}
}

// fetchFunc is one filter_artworks style call.
type fetchFunc func(ctx context.Context, params FilterParams) ([]Artwork, error)

func (gateway *Gateway) paginate(ctx context.Context, params FilterParams, fetch fetchFunc, countKey, action string) (Page, error) {
	limit := *params.LimitCount

	rows, err := fetch(ctx, params.withLookahead(limit))
	if err != nil {
		gateway.logger.ErrorContext(ctx, action+"_failed", slog.Any("error", err))
		return Page{}, asAppError(err)
	}

	page := trimLookahead(normalize(rows), limit)

	if params.OffsetCount == 0 {
		all, err := fetch(ctx, params.Unbounded())
		if err != nil {
			gateway.logger.WarnContext(ctx, action+"_count_fallback", slog.Any("error", err))
			page.Total = estimateTotal(0, page)
			return page, nil
		}

		page.Total = len(all)
		gateway.storeTotal(ctx, countKey, page.Total)
		return page, nil
	}

	if total, ok := gateway.cachedTotal(ctx, countKey); ok {
		page.Total = total
	} else {
		page.Total = estimateTotal(params.OffsetCount, page)
	}

	return page, nil
}

// # Searching

// SearchArtworks runs a text search. Queries shorter than [MinQueryLength]
// return an empty page without touching the backend.
//
// Unless forceArtist is set, the query is first probed against artist names;
// any match switches the whole page to artist mode.
func (gateway *Gateway) SearchArtworks(ctx context.Context, query string, page, limit int, forceArtist bool) (SearchPage, error) {
	query = strings.TrimSpace(query)
	if !validQuery(query) {
		return SearchPage{Page: emptyPage()}, nil
	}

	page, limit = clampPage(page, limit)
	offset := pagination.OffsetFor(page, limit)
	byArtist := forceArtist || gateway.isArtistName(ctx, query)

	lookahead := limit + 1
	rows, err := gateway.backend.SearchArtworks(ctx, query, &lookahead, offset, byArtist)
	if err != nil {
		gateway.logger.ErrorContext(ctx, "search_artworks_failed",
			slog.String("query", query),
			slog.Bool("by_artist", byArtist),
			slog.Any("error", err),
		)
		return SearchPage{}, asAppError(err)
	}

	result := SearchPage{Page: trimLookahead(normalize(rows), limit), IsArtistSearch: byArtist}
	key, keyErr := searchCountKey(query, byArtist)
	countKey := gateway.countKey(ctx, key, keyErr)

	if page == 1 {
		total, err := gateway.backend.CountSearchArtworks(ctx, query, byArtist)
		if err != nil {
			gateway.logger.WarnContext(ctx, "search_count_fallback", slog.String("query", query), slog.Any("error", err))
			result.Total = estimateTotal(0, result.Page)
			return result, nil
		}

		result.Total = total
		gateway.storeTotal(ctx, countKey, total)
		return result, nil
	}

	// Later pages report 0 unless the exact count is known.
	if total, ok := gateway.cachedTotal(ctx, countKey); ok {
		result.Total = total
	}

	return result, nil
}

// SearchAndFilter intersects a text search with facet criteria and
// paginates within the intersection.
//
// Backends implementing [CombinedSearcher] answer in one query. Otherwise
// the search collects up to candidateCap ids and filter_artworks is scoped to
// exactly those ids; matches beyond the cap are not considered.
func (gateway *Gateway) SearchAndFilter(ctx context.Context, query string, criteria Criteria, page, limit int) (SearchPage, error) {
	query = strings.TrimSpace(query)
	if !validQuery(query) {
		return SearchPage{Page: emptyPage()}, nil
	}

	page, limit = clampPage(page, limit)
	criteria.Limit = limit
	criteria.Offset = pagination.OffsetFor(page, limit)
	criteria.ArtworkIDs = nil

	params, err := criteria.Params()
	if err != nil {
		return SearchPage{}, err
	}

	byArtist := gateway.isArtistName(ctx, query)
	key, keyErr := combinedCountKey(query, byArtist, params)
	countKey := gateway.countKey(ctx, key, keyErr)

	if combined, ok := gateway.backend.(CombinedSearcher); ok {
		fetch := func(ctx context.Context, p FilterParams) ([]Artwork, error) {
			return combined.SearchFilterArtworks(ctx, query, byArtist, p)
		}

		result, err := gateway.paginate(ctx, params, fetch, countKey, "search_filter_artworks")
		return SearchPage{Page: result, IsArtistSearch: byArtist}, err
	}

	candidateCap := gateway.candidateCap
	candidates, err := gateway.backend.SearchArtworks(ctx, query, &candidateCap, 0, byArtist)
	if err != nil {
		gateway.logger.ErrorContext(ctx, "search_candidates_failed", slog.String("query", query), slog.Any("error", err))
		return SearchPage{}, asAppError(err)
	}

	ids := slice.Unique(slice.Map(candidates, func(a Artwork) string { return a.ID }))
	if len(ids) == 0 {
		// An empty id list would reach the backend as NULL, meaning "any artwork".
		return SearchPage{Page: emptyPage(), IsArtistSearch: byArtist}, nil
	}

	if len(candidates) >= gateway.candidateCap {
		gateway.logger.InfoContext(ctx, "search_candidates_truncated",
			slog.String("query", query),
			slog.Int("cap", gateway.candidateCap),
		)
	}

	params.ArtworkIDs = ids
	result, err := gateway.paginate(ctx, params, gateway.backend.FilterArtworks, countKey, "filter_artworks")
	return SearchPage{Page: result, IsArtistSearch: byArtist}, err
}

// isArtistName probes artist profiles for query. A failed probe is logged
// and treated as "no match" so the search still runs in general mode.
func (gateway *Gateway) isArtistName(ctx context.Context, query string) bool {
	artists, err := gateway.backend.FindArtistsByName(ctx, query, 1)
	if err != nil {
		gateway.logger.WarnContext(ctx, "artist_probe_failed", slog.String("query", query), slog.Any("error", err))
		return false
	}
	return len(artists) > 0
}

// # Auxiliary Lookups

// Suggestions returns autocomplete entries for input. Failures are logged and
// reported as a generic unavailability error.
func (gateway *Gateway) Suggestions(ctx context.Context, input string) ([]Suggestion, error) {
	input = strings.TrimSpace(input)
	if !validQuery(input) {
		return []Suggestion{}, nil
	}

	suggestions, err := gateway.backend.ArtworkSuggestions(ctx, input)
	if err != nil {
		gateway.logger.ErrorContext(ctx, "suggestions_failed", slog.String("input", input), slog.Any("error", err))
		return nil, apperr.Unavailable("Suggestions are unavailable right now", err)
	}

	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}

// ArtistsByName returns up to [ArtistMatchLimit] artists whose display name
// contains query, case-insensitively.
func (gateway *Gateway) ArtistsByName(ctx context.Context, query string) ([]Artist, error) {
	query = strings.TrimSpace(query)
	if !validQuery(query) {
		return []Artist{}, nil
	}

	artists, err := gateway.backend.FindArtistsByName(ctx, query, ArtistMatchLimit)
	if err != nil {
		gateway.logger.ErrorContext(ctx, "artist_lookup_failed", slog.String("query", query), slog.Any("error", err))
		return nil, asAppError(err)
	}

	if artists == nil {
		artists = []Artist{}
	}
	return artists, nil
}

// # Helpers

func validQuery(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLength
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// trimLookahead drops the lookahead row and derives HasMore from it.
func trimLookahead(rows []Artwork, limit int) Page {
	if len(rows) > limit {
		return Page{Items: rows[:limit], HasMore: true}
	}
	return Page{Items: rows}
}

// estimateTotal is the best total knowable without a count: everything
// before this page, this page, and one more row if the lookahead proved it.
func estimateTotal(offset int, page Page) int {
	total := offset + len(page.Items)
	if page.HasMore {
		total++
	}
	return total
}

// normalize fills derived fields and guarantees a non-nil slice.
func normalize(rows []Artwork) []Artwork {
	if rows == nil {
		return []Artwork{}
	}

	for i := range rows {
		if rows[i].Slug == "" {
			rows[i].Slug = fallbackSlug(rows[i])
		}
		if rows[i].Status == "" {
			rows[i].Status = DefaultStatus
		}
	}
	return rows
}

// fallbackSlug derives a slug from the title, or from the id when the title
// has nothing that maps to ASCII (e.g. a title written only in kanji).
func fallbackSlug(artwork Artwork) string {
	if derived := slug.From(artwork.Title); derived != "" {
		return derived
	}
	return "artwork-" + slug.FromLimit(artwork.ID, 12)
}

// asAppError keeps client-safe errors as they are and hides anything else
// behind a generic internal error.
func asAppError(err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.Internal(err)
}
