// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/taibuivan/artmarket/internal/catalog"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type searchArgs struct {
	Query    string
	Page     int
	Limit    int
	Criteria *catalog.Criteria
}

// fakeGateway answers from a virtual catalog of size artworks. Each hook, if
// set, replaces the default answer for its call.
type fakeGateway struct {
	mu sync.Mutex

	size   int
	artist bool

	onFilter  func(catalog.Criteria) (catalog.Page, error)
	onSearch  func(searchArgs) (catalog.SearchPage, error)
	onSuggest func(string) ([]catalog.Suggestion, error)

	filterCalls  []catalog.Criteria
	searchCalls  []searchArgs
	suggestCalls []string
}

func (f *fakeGateway) FilterArtworks(_ context.Context, criteria catalog.Criteria) (catalog.Page, error) {
	f.mu.Lock()
	f.filterCalls = append(f.filterCalls, criteria.Clone())
	hook := f.onFilter
	f.mu.Unlock()

	if hook != nil {
		return hook(criteria)
	}
	return window("art", f.size, criteria.Offset, criteria.EffectiveLimit(), criteria.Offset == 0), nil
}

func (f *fakeGateway) SearchArtworks(_ context.Context, query string, page, limit int, _ bool) (catalog.SearchPage, error) {
	return f.search(searchArgs{Query: query, Page: page, Limit: limit})
}

func (f *fakeGateway) SearchAndFilter(_ context.Context, query string, criteria catalog.Criteria, page, limit int) (catalog.SearchPage, error) {
	return f.search(searchArgs{Query: query, Page: page, Limit: limit, Criteria: &criteria})
}

func (f *fakeGateway) search(args searchArgs) (catalog.SearchPage, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, args)
	hook := f.onSearch
	f.mu.Unlock()

	if hook != nil {
		return hook(args)
	}

	offset := (args.Page - 1) * args.Limit
	return catalog.SearchPage{
		Page:           window("hit", f.size, offset, args.Limit, args.Page == 1),
		IsArtistSearch: f.artist,
	}, nil
}

func (f *fakeGateway) Suggestions(_ context.Context, input string) ([]catalog.Suggestion, error) {
	f.mu.Lock()
	f.suggestCalls = append(f.suggestCalls, input)
	hook := f.onSuggest
	f.mu.Unlock()

	if hook != nil {
		return hook(input)
	}
	return []catalog.Suggestion{{Text: input + " at dusk", Kind: catalog.SuggestionArtwork}}, nil
}

func (f *fakeGateway) filterCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filterCalls)
}

func (f *fakeGateway) lastFilterCall() catalog.Criteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filterCalls[len(f.filterCalls)-1]
}

func (f *fakeGateway) searchCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

// window returns rows [offset, offset+limit) of a catalog of size rows named
// "<prefix>-NNN". The total is exact only when exact is set, as the real
// gateway reports it on first pages.
func window(prefix string, size, offset, limit int, exact bool) catalog.Page {
	page := catalog.Page{Items: []catalog.Artwork{}}
	for i := offset; i < size && i < offset+limit; i++ {
		page.Items = append(page.Items, catalog.Artwork{ID: fmt.Sprintf("%s-%03d", prefix, i), Title: fmt.Sprintf("Work %d", i)})
	}
	page.HasMore = offset+limit < size
	if exact {
		page.Total = size
	}
	return page
}

func ids(artworks []catalog.Artwork) []string {
	result := make([]string, len(artworks))
	for i, artwork := range artworks {
		result[i] = artwork.ID
	}
	return result
}
