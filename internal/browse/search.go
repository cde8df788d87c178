// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/taibuivan/artmarket/internal/catalog"
	"github.com/taibuivan/artmarket/internal/platform/apperr"
)

// SearchStore is the search state container of one session.
//
// Results and suggestions have separate generations so typing ahead never
// discards a running search.
type SearchStore struct {
	gateway Gateway
	logger  *slog.Logger

	mu                   sync.Mutex
	state                SearchState
	generation           uint64
	suggestionGeneration uint64
}

// NewSearchStore constructs an Idle [SearchStore].
func NewSearchStore(gateway Gateway, logger *slog.Logger) *SearchStore {
	return &SearchStore{
		gateway: gateway,
		logger:  logger,
		state:   initialSearchState(),
	}
}

func initialSearchState() SearchState {
	return SearchState{
		Status:      StatusIdle,
		Results:     []catalog.Artwork{},
		ArtworkIDs:  []string{},
		Suggestions: []catalog.Suggestion{},
	}
}

// searchRequest is one issued search, captured under the lock.
type searchRequest struct {
	query      string
	page       int
	filters    *catalog.Criteria
	generation uint64
}

// # Searching

// Search runs a text search. Page 1 replaces the results; later pages append.
// Queries under [catalog.MinQueryLength] runes reset the store to Idle
// without a remote call.
func (store *SearchStore) Search(ctx context.Context, query string, page int) SearchState {
	return store.run(ctx, query, nil, page)
}

// SearchWithFilters intersects a text search with criteria, with the same
// replace and append rules as [SearchStore.Search].
func (store *SearchStore) SearchWithFilters(ctx context.Context, query string, criteria catalog.Criteria, page int) SearchState {
	filters := criteria.Clone()
	return store.run(ctx, query, &filters, page)
}

// LoadMore fetches the page after the last loaded one, repeating whichever
// search ran last. It is a no-op while Loading or when no more rows exist.
func (store *SearchStore) LoadMore(ctx context.Context) SearchState {
	store.mu.Lock()
	if store.state.Status == StatusLoading || !store.state.HasMore || store.state.Query == "" {
		defer store.mu.Unlock()
		return store.snapshotLocked()
	}

	query := store.state.Query
	page := store.state.CurrentPage + 1
	var filters *catalog.Criteria
	if store.state.Filters != nil {
		clone := store.state.Filters.Clone()
		filters = &clone
	}
	store.mu.Unlock()

	return store.run(ctx, query, filters, page)
}

func (store *SearchStore) run(ctx context.Context, query string, filters *catalog.Criteria, page int) SearchState {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}

	store.mu.Lock()
	if utf8.RuneCountInString(query) < catalog.MinQueryLength {
		store.resetResultsLocked()
		store.generation++
		defer store.mu.Unlock()
		return store.snapshotLocked()
	}

	store.generation++
	request := searchRequest{query: query, page: page, filters: filters, generation: store.generation}
	store.state.Query = query
	store.state.Filters = filters
	store.state.Status = StatusLoading
	store.state.Error = ""
	store.mu.Unlock()

	result, err := store.execute(ctx, request)

	store.mu.Lock()
	defer store.mu.Unlock()

	if request.generation != store.generation {
		store.logger.DebugContext(ctx, "stale_search_response_discarded", slog.Uint64("generation", request.generation))
		return store.snapshotLocked()
	}

	store.applyLocked(ctx, request, result, err)
	return store.snapshotLocked()
}

func (store *SearchStore) execute(ctx context.Context, request searchRequest) (catalog.SearchPage, error) {
	if request.filters != nil {
		return store.gateway.SearchAndFilter(ctx, request.query, request.filters.Clone(), request.page, request.filters.EffectiveLimit())
	}
	return store.gateway.SearchArtworks(ctx, request.query, request.page, catalog.DefaultLimit, false)
}

// applyLocked merges a response. Page 1 replaces everything; a later page
// appends and only trusts a positive total. A page 1 failure clears the
// results while a later failure keeps them.
func (store *SearchStore) applyLocked(ctx context.Context, request searchRequest, result catalog.SearchPage, err error) {
	store.state.Status = StatusLoaded

	if err != nil {
		store.logger.WarnContext(ctx, "search_failed",
			slog.String("query", request.query),
			slog.Int("page", request.page),
			slog.Any("error", err),
		)
		store.state.Error = apperr.Message(err)
		if request.page == 1 {
			store.state.Results = []catalog.Artwork{}
			store.state.ArtworkIDs = []string{}
			store.state.Total = 0
			store.state.HasMore = false
			store.state.IsArtistSearch = false
			store.state.CurrentPage = 0
		}
		return
	}

	store.state.HasMore = result.HasMore
	store.state.CurrentPage = request.page

	if request.page == 1 {
		store.state.Results = result.Items
		store.state.ArtworkIDs = result.IDs()
		store.state.Total = result.Total
		store.state.IsArtistSearch = result.IsArtistSearch
		return
	}

	store.state.Results = append(store.state.Results, result.Items...)
	store.state.ArtworkIDs = append(store.state.ArtworkIDs, result.IDs()...)
	if result.Total > 0 {
		store.state.Total = result.Total
	}
}

// # Suggestions

// FetchSuggestions loads autocomplete entries for input. Callers debounce.
func (store *SearchStore) FetchSuggestions(ctx context.Context, input string) SearchState {
	input = strings.TrimSpace(input)

	store.mu.Lock()
	store.suggestionGeneration++
	generation := store.suggestionGeneration

	if utf8.RuneCountInString(input) < catalog.MinQueryLength {
		store.clearSuggestionsLocked()
		defer store.mu.Unlock()
		return store.snapshotLocked()
	}

	store.state.SuggestionsLoading = true
	store.state.SuggestionsError = ""
	store.mu.Unlock()

	suggestions, err := store.gateway.Suggestions(ctx, input)

	store.mu.Lock()
	defer store.mu.Unlock()

	if generation != store.suggestionGeneration {
		return store.snapshotLocked()
	}

	store.state.SuggestionsLoading = false
	if err != nil {
		store.state.Suggestions = []catalog.Suggestion{}
		store.state.SuggestionsError = apperr.Message(err)
		return store.snapshotLocked()
	}

	store.state.Suggestions = suggestions
	return store.snapshotLocked()
}

// ClearSuggestions drops the suggestions and ignores any in flight.
func (store *SearchStore) ClearSuggestions() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.suggestionGeneration++
	store.clearSuggestionsLocked()
}

// # State

// Clear returns the store to its initial Idle state.
func (store *SearchStore) Clear() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.generation++
	store.suggestionGeneration++
	store.state = initialSearchState()
}

// Scope returns the accumulated hit ids of the last loaded search, or nil
// when no search has loaded. The result is never shared with the store.
func (store *SearchStore) Scope() []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.state.Status != StatusLoaded || store.state.Query == "" {
		return nil
	}
	return append([]string{}, store.state.ArtworkIDs...)
}

// Snapshot returns a deep copy of the current state.
func (store *SearchStore) Snapshot() SearchState {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.snapshotLocked()
}

func (store *SearchStore) resetResultsLocked() {
	previous := store.state
	store.state = initialSearchState()
	store.state.Suggestions = previous.Suggestions
	store.state.SuggestionsLoading = previous.SuggestionsLoading
	store.state.SuggestionsError = previous.SuggestionsError
}

func (store *SearchStore) clearSuggestionsLocked() {
	store.state.Suggestions = []catalog.Suggestion{}
	store.state.SuggestionsLoading = false
	store.state.SuggestionsError = ""
}

func (store *SearchStore) snapshotLocked() SearchState {
	snapshot := store.state
	snapshot.Results = append([]catalog.Artwork{}, store.state.Results...)
	snapshot.ArtworkIDs = append([]string{}, store.state.ArtworkIDs...)
	snapshot.Suggestions = slices.Clone(store.state.Suggestions)
	if store.state.Filters != nil {
		filters := store.state.Filters.Clone()
		snapshot.Filters = &filters
	}
	return snapshot
}
