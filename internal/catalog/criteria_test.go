// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/internal/catalog"
	"github.com/taibuivan/artmarket/pkg/pointer"
)

func TestCriteria_Params(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.Categories = []string{" Painting ", "Painting", "", "Drawing"}
	criteria.Locations = []string{"  "}
	criteria.ArtistName = "  "
	criteria.MinPrice = pointer.To(100.0)
	criteria.Offset = 40

	params, err := criteria.Params()
	require.NoError(t, err)

	assert.Equal(t, []string{"Painting", "Drawing"}, params.Categories)
	assert.Nil(t, params.Locations)
	assert.Nil(t, params.Mediums)
	assert.Nil(t, params.ArtworkIDs)
	assert.Nil(t, params.ArtistNameFilter)
	assert.Nil(t, params.MaxPrice)
	assert.Equal(t, 100.0, *params.MinPrice)
	assert.Equal(t, "active", params.StatusFilter)
	assert.Equal(t, "created_at_desc", *params.SortBy)
	assert.Equal(t, catalog.DefaultLimit, *params.LimitCount)
	assert.Equal(t, 40, params.OffsetCount)

	*params.MinPrice = 1
	assert.Equal(t, 100.0, *criteria.MinPrice, "params must not alias criteria bounds")

	unbounded := params.Unbounded()
	assert.Nil(t, unbounded.SortBy)
	assert.Nil(t, unbounded.LimitCount)
	assert.Zero(t, unbounded.OffsetCount)
	assert.NotNil(t, params.SortBy)
}

func TestCriteria_ParamsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.Criteria)
		field  string
	}{
		{"unknown_status", func(c *catalog.Criteria) { c.Status = "archived" }, catalog.FieldStatus},
		{"unknown_sort", func(c *catalog.Criteria) { c.Sort = "random" }, catalog.FieldSort},
		{"limit_too_large", func(c *catalog.Criteria) { c.Limit = catalog.MaxLimit + 1 }, catalog.FieldLimit},
		{"negative_offset", func(c *catalog.Criteria) { c.Offset = -1 }, catalog.FieldOffset},
		{"negative_price", func(c *catalog.Criteria) { c.MaxPrice = pointer.To(-5.0) }, catalog.FieldMaxPrice},
		{"inverted_year", func(c *catalog.Criteria) {
			c.MinYear = pointer.To(2001)
			c.MaxYear = pointer.To(2000)
		}, catalog.FieldMinYear},
		{"inverted_width", func(c *catalog.Criteria) {
			c.MinWidthCM = pointer.To(80.0)
			c.MaxWidthCM = pointer.To(40.0)
		}, catalog.FieldMinWidth},
		{"inverted_height", func(c *catalog.Criteria) {
			c.MinHeightCM = pointer.To(80.0)
			c.MaxHeightCM = pointer.To(40.0)
		}, catalog.FieldMinHeight},
		{"nan_price", func(c *catalog.Criteria) { c.MinPrice = pointer.To(math.NaN()) }, catalog.FieldMinPrice},
		{"infinite_width", func(c *catalog.Criteria) { c.MaxWidthCM = pointer.To(math.Inf(1)) }, catalog.FieldMaxWidth},
		{"artist_id_not_uuid", func(c *catalog.Criteria) { c.ArtistIDs = []string{"artist-1"} }, catalog.FieldArtistIDs},
		{"artwork_id_not_uuid", func(c *catalog.Criteria) {
			c.ArtworkIDs = []string{"0190a5b4-6c1e-7d3a-9f00-1a2b3c4d5e6f", "sunset-00"}
		}, catalog.FieldArtworkIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := catalog.DefaultCriteria()
			tt.mutate(&criteria)

			_, err := criteria.Params()
			appErr := requireCode(t, err, "VALIDATION_ERROR")
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

func TestCriteria_IDLists(t *testing.T) {
	const artworkID = "0190a5b4-6c1e-7d3a-9f00-1a2b3c4d5e6f"
	const artistID = "0190a5b4-6c1e-7d3a-9f00-aabbccddeeff"

	criteria := catalog.DefaultCriteria()
	criteria.ArtworkIDs = []string{" " + artworkID, artworkID, ""}
	criteria.ArtistIDs = []string{artistID, "  "}

	params, err := criteria.Params()
	require.NoError(t, err)

	assert.Equal(t, []string{artworkID}, params.ArtworkIDs)
	assert.Equal(t, []string{artistID}, params.ArtistIDs)
}

func TestScopeIDs(t *testing.T) {
	assert.Nil(t, catalog.ScopeIDs(nil))

	blank := catalog.ScopeIDs([]string{" ", ""})
	assert.NotNil(t, blank, "a blank scope must stay distinguishable from no scope")
	assert.Empty(t, blank)

	assert.Equal(t, []string{"a", "b"}, catalog.ScopeIDs([]string{" a", "b", "a ", ""}))
}

func TestValidIDs(t *testing.T) {
	assert.True(t, catalog.ValidIDs(nil))
	assert.True(t, catalog.ValidIDs([]string{" ", "0190a5b4-6c1e-7d3a-9f00-1a2b3c4d5e6f"}))
	assert.False(t, catalog.ValidIDs([]string{"0190a5b4-6c1e-7d3a-9f00-1a2b3c4d5e6f", "art-001"}))
}

func TestCriteria_EqualBoundsAccepted(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.MinPrice = pointer.To(250.0)
	criteria.MaxPrice = pointer.To(250.0)

	_, err := criteria.Params()
	assert.NoError(t, err)
}

func TestCriteria_Clone(t *testing.T) {
	original := catalog.DefaultCriteria()
	original.Categories = []string{"Painting"}
	original.MinYear = pointer.To(1990)

	clone := original.Clone()
	clone.Categories[0] = "Drawing"
	*clone.MinYear = 2000

	assert.Equal(t, "Painting", original.Categories[0])
	assert.Equal(t, 1990, *original.MinYear)
}
