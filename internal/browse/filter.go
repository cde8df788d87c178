// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/taibuivan/artmarket/internal/catalog"
	"github.com/taibuivan/artmarket/internal/platform/apperr"
	"github.com/taibuivan/artmarket/internal/platform/validate"
)

// Facets are the criteria keys a client may set or reset individually.
var Facets = []string{
	catalog.FieldCategories,
	catalog.FieldMediums,
	catalog.FieldStatus,
	catalog.FieldMinPrice,
	catalog.FieldMaxPrice,
	catalog.FieldMinYear,
	catalog.FieldMaxYear,
	catalog.FieldMinWidth,
	catalog.FieldMaxWidth,
	catalog.FieldMinHeight,
	catalog.FieldMaxHeight,
	catalog.FieldLocations,
	catalog.FieldArtistIDs,
	catalog.FieldArtistName,
	catalog.FieldOnlyFeatured,
	catalog.FieldOnlyTrending,
	catalog.FieldSort,
	catalog.FieldLimit,
}

// Patch is a partial criteria update keyed by facet. A JSON null clears the
// facet (no constraint).
type Patch map[string]json.RawMessage

// PatchOf builds a single-facet [Patch] from a Go value.
func PatchOf(facet string, value any) (Patch, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, validate.RequiredError(facet, "Invalid value")
	}
	return Patch{facet: raw}, nil
}

// merge overlays the patch onto base. Unknown facets and values of the wrong
// type are reported per facet.
func (patch Patch) merge(base catalog.Criteria) (catalog.Criteria, error) {
	validator := &validate.Validator{}

	for _, facet := range slices.Sorted(maps.Keys(patch)) {
		if !slices.Contains(Facets, facet) {
			validator.Custom(facet, true, "Unknown filter")
			continue
		}
		var decoded catalog.Criteria
		validator.Custom(facet, decodeCriteria(Patch{facet: patch[facet]}, &decoded) != nil, "Invalid value")
	}

	if err := validator.Err(); err != nil {
		return catalog.Criteria{}, err
	}

	encoded, err := json.Marshal(base)
	if err != nil {
		return catalog.Criteria{}, apperr.Internal(err)
	}

	fields := Patch{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return catalog.Criteria{}, apperr.Internal(err)
	}
	maps.Copy(fields, patch)

	var merged catalog.Criteria
	if err := decodeCriteria(fields, &merged); err != nil {
		return catalog.Criteria{}, apperr.Internal(err)
	}
	return merged, nil
}

func decodeCriteria(fields Patch, target *catalog.Criteria) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// FilterStore is the filter state container of one session.
//
// It is safe for concurrent use. Gateway calls run without the lock held.
type FilterStore struct {
	gateway Gateway
	logger  *slog.Logger

	mu         sync.Mutex
	state      FilterState
	generation uint64
}

// NewFilterStore constructs an Idle [FilterStore] with default criteria.
func NewFilterStore(gateway Gateway, logger *slog.Logger) *FilterStore {
	return &FilterStore{
		gateway: gateway,
		logger:  logger,
		state:   initialFilterState(),
	}
}

func initialFilterState() FilterState {
	return FilterState{
		Criteria:    catalog.DefaultCriteria(),
		Status:      StatusIdle,
		Results:     []catalog.Artwork{},
		CurrentPage: 1,
	}
}

// # Criteria Mutations

// SetFilter sets one facet. See [FilterStore.SetFilters].
func (store *FilterStore) SetFilter(facet string, value any) error {
	patch, err := PatchOf(facet, value)
	if err != nil {
		return err
	}
	return store.SetFilters(patch)
}

// SetFilters applies patch to the criteria, rewinds pagination and moves to
// Idle without fetching. The last results stay visible until the next apply.
// A patch that would leave the criteria invalid is rejected as a whole.
func (store *FilterStore) SetFilters(patch Patch) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	merged, err := patch.merge(store.state.Criteria)
	if err != nil {
		return err
	}

	// The scope belongs to the last apply and is replaced by the next one.
	check := merged
	check.ArtworkIDs = nil
	if _, err := check.Params(); err != nil {
		return err
	}

	merged.Offset = 0
	store.state.Criteria = merged
	store.state.CurrentPage = 1
	store.state.Status = StatusIdle
	store.generation++
	return nil
}

// ResetFilter restores one facet to its default, keeping the others.
func (store *FilterStore) ResetFilter(facet string) error {
	if !slices.Contains(Facets, facet) {
		return validate.RequiredError(facet, "Unknown filter")
	}

	encoded, err := json.Marshal(catalog.DefaultCriteria())
	if err != nil {
		return apperr.Internal(err)
	}

	defaults := Patch{}
	if err := json.Unmarshal(encoded, &defaults); err != nil {
		return apperr.Internal(err)
	}

	return store.SetFilters(Patch{facet: defaults[facet]})
}

// ClearFilters returns the store to its initial Idle state.
func (store *FilterStore) ClearFilters() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.state = initialFilterState()
	store.generation++
}

// # Fetching

// ApplyFilters fetches the first page for the current criteria.
//
// A non-nil scope restricts the results to those artwork ids. A scope that
// is empty once blanks are dropped yields an empty result without a remote
// call. Pagination always restarts
// at page 1, offset 0. Failures leave the store Loaded with no results and
// the error message set.
func (store *FilterStore) ApplyFilters(ctx context.Context, scope []string) FilterState {
	store.mu.Lock()

	scope = catalog.ScopeIDs(scope)
	store.state.Criteria.ArtworkIDs = scope
	store.state.Criteria.Offset = 0
	store.state.CurrentPage = 1
	store.state.Error = ""
	store.generation++
	generation := store.generation

	if scope != nil && len(scope) == 0 {
		store.state.Status = StatusLoaded
		store.state.Results = []catalog.Artwork{}
		store.state.HasMore = false
		store.state.Total = 0
		defer store.mu.Unlock()
		return store.snapshotLocked()
	}

	store.state.Status = StatusLoading
	request := store.state.Criteria.Clone()
	store.mu.Unlock()

	page, err := store.gateway.FilterArtworks(ctx, request)

	store.mu.Lock()
	defer store.mu.Unlock()

	if generation != store.generation {
		store.logger.DebugContext(ctx, "stale_filter_response_discarded", slog.Uint64("generation", generation))
		return store.snapshotLocked()
	}

	store.state.Status = StatusLoaded
	if err != nil {
		store.logger.WarnContext(ctx, "filter_apply_failed", slog.Any("error", err))
		store.state.Results = []catalog.Artwork{}
		store.state.HasMore = false
		store.state.Total = 0
		store.state.Error = apperr.Message(err)
		return store.snapshotLocked()
	}

	store.state.Results = page.Items
	store.state.HasMore = page.HasMore
	store.state.Total = page.Total
	return store.snapshotLocked()
}

// LoadMore appends the next page. It only continues a Loaded result set:
// while Loading, after a criteria change (Idle) or when the last page
// reported no more rows it is a no-op. A failure keeps the accumulated
// results.
func (store *FilterStore) LoadMore(ctx context.Context) FilterState {
	store.mu.Lock()

	if store.state.Status != StatusLoaded || !store.state.HasMore {
		defer store.mu.Unlock()
		return store.snapshotLocked()
	}

	request := store.state.Criteria.Clone()
	request.Offset = store.state.CurrentPage * request.EffectiveLimit()
	store.state.Status = StatusLoading
	store.state.Error = ""
	store.generation++
	generation := store.generation
	store.mu.Unlock()

	page, err := store.gateway.FilterArtworks(ctx, request)

	store.mu.Lock()
	defer store.mu.Unlock()

	if generation != store.generation {
		store.logger.DebugContext(ctx, "stale_filter_response_discarded", slog.Uint64("generation", generation))
		return store.snapshotLocked()
	}

	store.state.Status = StatusLoaded
	if err != nil {
		store.logger.WarnContext(ctx, "filter_load_more_failed", slog.Any("error", err))
		store.state.Error = apperr.Message(err)
		return store.snapshotLocked()
	}

	store.state.Results = append(store.state.Results, page.Items...)
	store.state.HasMore = page.HasMore
	store.state.Criteria.Offset = request.Offset
	store.state.CurrentPage++
	if page.Total > store.state.Total {
		store.state.Total = page.Total
	}
	return store.snapshotLocked()
}

// Snapshot returns a deep copy of the current state.
func (store *FilterStore) Snapshot() FilterState {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.snapshotLocked()
}

func (store *FilterStore) snapshotLocked() FilterState {
	snapshot := store.state
	snapshot.Criteria = store.state.Criteria.Clone()
	snapshot.Results = append([]catalog.Artwork{}, store.state.Results...)
	return snapshot
}
