// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/internal/catalog"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Page       int  `json:"page"`
		Limit      int  `json:"limit"`
		Total      int  `json:"total"`
		TotalPages int  `json:"total_pages"`
		HasMore    bool `json:"has_more"`
	} `json:"meta"`
	Code    string `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func serve(t *testing.T, backend catalog.Backend, target string) (int, envelope) {
	t.Helper()

	handler := catalog.NewHandler(catalog.NewGateway(backend, nil, 0, discardLogger))

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandler_ListArtworks(t *testing.T) {
	backend := sunsetCatalog()

	status, body := serve(t, backend, "/artworks?category=Painting&limit=4&page=1")
	require.Equal(t, http.StatusOK, status)

	var items []catalog.Artwork
	require.NoError(t, json.Unmarshal(body.Data, &items))

	// 13 sunset paintings plus 3 harbor paintings.
	assert.Len(t, items, 4)
	assert.Equal(t, 16, body.Meta.Total)
	assert.Equal(t, 4, body.Meta.TotalPages)
	assert.True(t, body.Meta.HasMore)
	assert.Equal(t, []string{"Painting"}, backend.filterCalls[0].Categories)
}

func TestHandler_ListArtworksValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"malformed_number", "min_price=cheap", catalog.ParamMinPrice},
		{"malformed_year", "max_year=1990s", catalog.ParamMaxYear},
		{"inverted_range", "min_price=900&max_price=100", catalog.FieldMinPrice},
		{"unknown_sort", "sort=random", catalog.FieldSort},
		{"nan_price", "min_price=NaN", catalog.FieldMinPrice},
		{"malformed_artist_id", "artist_id=not-a-uuid", catalog.FieldArtistIDs},
		{"one_bad_artist_id", "artist_id=0190a5b4-6c1e-7d3a-9f00-1a2b3c4d5e6f,artist-2", catalog.FieldArtistIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := sunsetCatalog()

			status, body := serve(t, backend, "/artworks?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			require.NotEmpty(t, body.Details)
			assert.Equal(t, tt.field, body.Details[0].Field)
			assert.Zero(t, backend.filterCallCount())
		})
	}
}

func TestHandler_Search(t *testing.T) {
	t.Run("text_only", func(t *testing.T) {
		backend := sunsetCatalog()

		status, body := serve(t, backend, "/artworks/search?q=mira&limit=10")
		require.Equal(t, http.StatusOK, status)

		var result struct {
			Items          []catalog.Artwork `json:"items"`
			IsArtistSearch bool              `json:"is_artist_search"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &result))

		assert.True(t, result.IsArtistSearch)
		assert.Len(t, result.Items, 10)
		assert.Equal(t, 25, body.Meta.Total)
		assert.Empty(t, backend.filterCalls)
	})

	t.Run("with_facets", func(t *testing.T) {
		backend := sunsetCatalog()

		status, body := serve(t, backend, "/artworks/search?q=sunset&category=Painting&limit=5")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 13, body.Meta.Total)
		assert.NotEmpty(t, backend.filterCalls)
	})
}

func TestHandler_Suggestions(t *testing.T) {
	backend := &fakeBackend{suggestErr: errBackend}

	status, body := serve(t, backend, "/artworks/suggestions?"+url.Values{"q": {"sun"}}.Encode())
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
}

func TestHandler_FilterOptions(t *testing.T) {
	backend := sunsetCatalog()
	backend.prices = []float64{120, 80}

	status, body := serve(t, backend, "/artworks/filter-options")
	require.Equal(t, http.StatusOK, status)

	var options catalog.FilterOptions
	require.NoError(t, json.Unmarshal(body.Data, &options))
	assert.Equal(t, []string{"Painting", "Sculpture"}, options.Categories)
	assert.Equal(t, 80.0, options.Price.Min)
}

func TestHandler_Artists(t *testing.T) {
	status, body := serve(t, sunsetCatalog(), "/artists?q=sol")
	require.Equal(t, http.StatusOK, status)

	var artists []catalog.Artist
	require.NoError(t, json.Unmarshal(body.Data, &artists))
	require.Len(t, artists, 1)
	assert.Equal(t, "artist-1", artists[0].ID)
}
