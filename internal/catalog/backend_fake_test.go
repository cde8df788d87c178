// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/artmarket/internal/catalog"
	"github.com/taibuivan/artmarket/pkg/pointer"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type searchCall struct {
	Query    string
	Limit    *int
	Offset   int
	ByArtist bool
}

// fakeBackend is an in-memory catalog. It applies the artwork id, category
// and text predicates and honours limit/offset; other facets are recorded
// but not evaluated.
type fakeBackend struct {
	mu sync.Mutex

	artworks    []catalog.Artwork
	artists     []catalog.Artist
	suggestions []catalog.Suggestion
	prices      []float64

	filterErr    error
	unboundedErr error
	searchErr    error
	countErr     error
	suggestErr   error
	artistErr    error
	listErr      error

	filterCalls  []catalog.FilterParams
	searchCalls  []searchCall
	countCalls   int
	suggestCalls int
	artistCalls  int
}

func (f *fakeBackend) FilterArtworks(_ context.Context, params catalog.FilterParams) ([]catalog.Artwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filterCalls = append(f.filterCalls, params)
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	if f.unboundedErr != nil && params.LimitCount == nil {
		return nil, f.unboundedErr
	}

	var rows []catalog.Artwork
	for _, artwork := range f.artworks {
		if params.ArtworkIDs != nil && !slices.Contains(params.ArtworkIDs, artwork.ID) {
			continue
		}
		if params.Categories != nil && (artwork.Category == nil || !slices.Contains(params.Categories, *artwork.Category)) {
			continue
		}
		rows = append(rows, artwork)
	}
	return window(rows, params.LimitCount, params.OffsetCount), nil
}

func (f *fakeBackend) SearchArtworks(_ context.Context, query string, limit *int, offset int, byArtist bool) ([]catalog.Artwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchCalls = append(f.searchCalls, searchCall{Query: query, Limit: pointer.Copy(limit), Offset: offset, ByArtist: byArtist})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return window(f.matches(query, byArtist), limit, offset), nil
}

func (f *fakeBackend) CountSearchArtworks(_ context.Context, query string, byArtist bool) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.countCalls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.matches(query, byArtist)), nil
}

func (f *fakeBackend) ArtworkSuggestions(context.Context, string) ([]catalog.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.suggestCalls++
	return f.suggestions, f.suggestErr
}

func (f *fakeBackend) ListCategories(context.Context) ([]string, error) {
	return f.column(func(a catalog.Artwork) *string { return a.Category })
}

func (f *fakeBackend) ListMediums(context.Context) ([]string, error) {
	return f.column(func(a catalog.Artwork) *string { return a.Medium })
}

func (f *fakeBackend) ListLocations(context.Context) ([]string, error) {
	return f.column(func(a catalog.Artwork) *string { return a.Location })
}

func (f *fakeBackend) ListPrices(context.Context) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.prices), nil
}

func (f *fakeBackend) FindArtistsByName(_ context.Context, query string, limit int) ([]catalog.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.artistCalls++
	if f.artistErr != nil {
		return nil, f.artistErr
	}

	var found []catalog.Artist
	for _, artist := range f.artists {
		if contains(artist.DisplayName, query) && len(found) < limit {
			found = append(found, artist)
		}
	}
	return found, nil
}

func (f *fakeBackend) matches(query string, byArtist bool) []catalog.Artwork {
	var rows []catalog.Artwork
	for _, artwork := range f.artworks {
		if byArtist {
			if artwork.ArtistName != nil && contains(*artwork.ArtistName, query) {
				rows = append(rows, artwork)
			}
			continue
		}
		if contains(artwork.Title, query) {
			rows = append(rows, artwork)
		}
	}
	return rows
}

func (f *fakeBackend) column(get func(catalog.Artwork) *string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var values []string
	for _, artwork := range f.artworks {
		if v := get(artwork); v != nil {
			values = append(values, *v)
		}
	}
	return values, nil
}

func (f *fakeBackend) filterCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filterCalls)
}

// combinedBackend adds the single-query search-and-filter path.
type combinedBackend struct {
	*fakeBackend
	combinedCalls []catalog.FilterParams
}

func (c *combinedBackend) SearchFilterArtworks(ctx context.Context, query string, byArtist bool, params catalog.FilterParams) ([]catalog.Artwork, error) {
	c.combinedCalls = append(c.combinedCalls, params)

	ids := make([]string, 0)
	for _, artwork := range c.matches(query, byArtist) {
		ids = append(ids, artwork.ID)
	}
	params.ArtworkIDs = ids
	return c.fakeBackend.FilterArtworks(ctx, params)
}

// mapCountCache is an in-process [catalog.CountCache].
type mapCountCache struct {
	mu      sync.Mutex
	entries map[string]int
}

func newMapCountCache() *mapCountCache {
	return &mapCountCache{entries: map[string]int{}}
}

func (m *mapCountCache) Get(_ context.Context, key string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total, ok := m.entries[key]
	return total, ok
}

func (m *mapCountCache) Set(_ context.Context, key string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = total
}

// # Fixtures

// makeArtworks builds n artworks titled "<title> NN"; even ones are paintings.
func makeArtworks(n int, title, artist string) []catalog.Artwork {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	artworks := make([]catalog.Artwork, n)
	for i := range artworks {
		category := "Sculpture"
		if i%2 == 0 {
			category = "Painting"
		}
		artworks[i] = catalog.Artwork{
			ID:         fmt.Sprintf("%s-%02d", strings.ToLower(title), i),
			Title:      fmt.Sprintf("%s %02d", title, i),
			Slug:       fmt.Sprintf("%s-%02d", strings.ToLower(title), i),
			ArtistName: pointer.To(artist),
			Category:   pointer.To(category),
			Status:     catalog.StatusActive,
			CreatedAt:  created.Add(-time.Duration(i) * time.Hour),
		}
	}
	return artworks
}

func window(rows []catalog.Artwork, limit *int, offset int) []catalog.Artwork {
	if offset >= len(rows) {
		return []catalog.Artwork{}
	}
	rows = rows[offset:]
	if limit != nil && *limit < len(rows) {
		rows = rows[:*limit]
	}
	return slices.Clone(rows)
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
