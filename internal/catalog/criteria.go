// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/taibuivan/artmarket/internal/platform/validate"
	"github.com/taibuivan/artmarket/pkg/pointer"
	"github.com/taibuivan/artmarket/pkg/slice"
	"github.com/taibuivan/artmarket/pkg/uuid"
)

// # Field Identifiers

// Field names used in validation errors; they match the JSON tags below.
const (
	FieldArtworkIDs   = "artwork_ids"
	FieldCategories   = "categories"
	FieldMediums      = "mediums"
	FieldStatus       = "status"
	FieldMinPrice     = "min_price"
	FieldMaxPrice     = "max_price"
	FieldMinYear      = "min_year"
	FieldMaxYear      = "max_year"
	FieldMinWidth     = "min_width_cm"
	FieldMaxWidth     = "max_width_cm"
	FieldMinHeight    = "min_height_cm"
	FieldMaxHeight    = "max_height_cm"
	FieldLocations    = "locations"
	FieldArtistIDs    = "artist_ids"
	FieldArtistName   = "artist_name"
	FieldOnlyFeatured = "only_featured"
	FieldOnlyTrending = "only_trending"
	FieldSort         = "sort"
	FieldLimit        = "limit"
	FieldOffset       = "offset"
	FieldQuery        = "q"
)

// Criteria is the user-facing filter value object.
//
// List facets may hold blanks and duplicates; [Criteria.Params] cleans them.
// ArtworkIDs scopes the filter to a fixed id set (typically search hits).
type Criteria struct {
	ArtworkIDs   []string  `json:"artwork_ids,omitempty"`
	Categories   []string  `json:"categories"`
	Mediums      []string  `json:"mediums"`
	Status       Status    `json:"status"`
	MinPrice     *float64  `json:"min_price"`
	MaxPrice     *float64  `json:"max_price"`
	MinYear      *int      `json:"min_year"`
	MaxYear      *int      `json:"max_year"`
	MinWidthCM   *float64  `json:"min_width_cm"`
	MaxWidthCM   *float64  `json:"max_width_cm"`
	MinHeightCM  *float64  `json:"min_height_cm"`
	MaxHeightCM  *float64  `json:"max_height_cm"`
	Locations    []string  `json:"locations"`
	ArtistIDs    []string  `json:"artist_ids"`
	ArtistName   string    `json:"artist_name"`
	OnlyFeatured bool      `json:"only_featured"`
	OnlyTrending bool      `json:"only_trending"`
	Sort         SortOrder `json:"sort"`
	Limit        int       `json:"limit"`
	Offset       int       `json:"offset"`
}

// DefaultCriteria returns the unfiltered first page.
func DefaultCriteria() Criteria {
	return Criteria{
		Status: DefaultStatus,
		Sort:   DefaultSort,
		Limit:  DefaultLimit,
	}
}

// Clone returns a deep copy so callers never share slices or bounds.
func (c Criteria) Clone() Criteria {
	clone := c
	clone.ArtworkIDs = slice.Clone(c.ArtworkIDs)
	clone.Categories = slice.Clone(c.Categories)
	clone.Mediums = slice.Clone(c.Mediums)
	clone.Locations = slice.Clone(c.Locations)
	clone.ArtistIDs = slice.Clone(c.ArtistIDs)
	clone.MinPrice = pointer.Copy(c.MinPrice)
	clone.MaxPrice = pointer.Copy(c.MaxPrice)
	clone.MinYear = pointer.Copy(c.MinYear)
	clone.MaxYear = pointer.Copy(c.MaxYear)
	clone.MinWidthCM = pointer.Copy(c.MinWidthCM)
	clone.MaxWidthCM = pointer.Copy(c.MaxWidthCM)
	clone.MinHeightCM = pointer.Copy(c.MinHeightCM)
	clone.MaxHeightCM = pointer.Copy(c.MaxHeightCM)
	return clone
}

// EffectiveLimit is the page size the gateway will use.
func (c Criteria) EffectiveLimit() int {
	if c.Limit <= 0 {
		return DefaultLimit
	}
	return c.Limit
}

// FilterParams is the argument set of filter_artworks. A nil field is sent
// as SQL NULL and leaves that facet unconstrained.
type FilterParams struct {
	ArtworkIDs       []string
	Categories       []string
	Mediums          []string
	StatusFilter     string
	MinPrice         *float64
	MaxPrice         *float64
	ArtistIDs        []string
	ArtistNameFilter *string
	MinYear          *int
	MaxYear          *int
	MinWidthCM       *float64
	MaxWidthCM       *float64
	MinHeightCM      *float64
	MaxHeightCM      *float64
	Locations        []string
	OnlyFeatured     bool
	OnlyTrending     bool

	// SortBy nil requests unranked rows (used by the count request).
	SortBy *string

	// LimitCount nil requests every matching row.
	LimitCount  *int
	OffsetCount int
}

// Params validates the criteria and converts them into [FilterParams].
//
// Lists are trimmed, stripped of blanks and deduplicated; an empty result
// becomes nil, except for the artwork id scope (see [ScopeIDs]). Id lists
// must hold UUIDs and inverted ranges (min > max) are rejected.
func (c Criteria) Params() (FilterParams, error) {
	status := c.Status
	if status == "" {
		status = DefaultStatus
	}

	sort := c.Sort
	if sort == "" {
		sort = DefaultSort
	}

	limit := c.EffectiveLimit()
	artworkIDs := ScopeIDs(c.ArtworkIDs)
	artistIDs := cleanList(c.ArtistIDs)

	validator := &validate.Validator{}
	validator.
		Custom(FieldArtworkIDs, !slice.All(artworkIDs, uuid.Valid), "Must contain only valid UUIDs").
		Custom(FieldArtistIDs, !slice.All(artistIDs, uuid.Valid), "Must contain only valid UUIDs").
		OneOf(FieldStatus, string(status), statusNames()...).
		OneOf(FieldSort, string(sort), sortNames()...).
		Range(FieldLimit, limit, 1, MaxLimit).
		Custom(FieldOffset, c.Offset < 0, "Must not be negative").
		Finite(FieldMinPrice, c.MinPrice).
		Finite(FieldMaxPrice, c.MaxPrice).
		Finite(FieldMinWidth, c.MinWidthCM).
		Finite(FieldMaxWidth, c.MaxWidthCM).
		Finite(FieldMinHeight, c.MinHeightCM).
		Finite(FieldMaxHeight, c.MaxHeightCM).
		NonNegative(FieldMinPrice, c.MinPrice).
		NonNegative(FieldMaxPrice, c.MaxPrice).
		Bounds(FieldMinPrice, FieldMaxPrice, c.MinPrice, c.MaxPrice).
		Bounds(FieldMinYear, FieldMaxYear, intBound(c.MinYear), intBound(c.MaxYear)).
		Bounds(FieldMinWidth, FieldMaxWidth, c.MinWidthCM, c.MaxWidthCM).
		Bounds(FieldMinHeight, FieldMaxHeight, c.MinHeightCM, c.MaxHeightCM)

	if err := validator.Err(); err != nil {
		return FilterParams{}, err
	}

	sortBy := string(sort)
	return FilterParams{
		ArtworkIDs:       artworkIDs,
		Categories:       cleanList(c.Categories),
		Mediums:          cleanList(c.Mediums),
		StatusFilter:     string(status),
		MinPrice:         pointer.Copy(c.MinPrice),
		MaxPrice:         pointer.Copy(c.MaxPrice),
		ArtistIDs:        artistIDs,
		ArtistNameFilter: pointer.NonZero(strings.TrimSpace(c.ArtistName)),
		MinYear:          pointer.Copy(c.MinYear),
		MaxYear:          pointer.Copy(c.MaxYear),
		MinWidthCM:       pointer.Copy(c.MinWidthCM),
		MaxWidthCM:       pointer.Copy(c.MaxWidthCM),
		MinHeightCM:      pointer.Copy(c.MinHeightCM),
		MaxHeightCM:      pointer.Copy(c.MaxHeightCM),
		Locations:        cleanList(c.Locations),
		OnlyFeatured:     c.OnlyFeatured,
		OnlyTrending:     c.OnlyTrending,
		SortBy:           &sortBy,
		LimitCount:       &limit,
		OffsetCount:      c.Offset,
	}, nil
}

// ScopeIDs trims an artwork id scope and drops blanks and duplicates. A
// non-nil scope stays non-nil even when nothing is left: an empty scope
// matches nothing, while nil leaves the filter unscoped.
func ScopeIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	if cleaned := cleanList(ids); cleaned != nil {
		return cleaned
	}
	return []string{}
}

// ValidIDs reports whether every non-blank entry of ids is a UUID.
func ValidIDs(ids []string) bool {
	return slice.All(cleanList(ids), uuid.Valid)
}

// Unbounded returns a copy of p that asks for every row, unranked, from the start.
func (p FilterParams) Unbounded() FilterParams {
	p.SortBy = nil
	p.LimitCount = nil
	p.OffsetCount = 0
	return p
}

// withLookahead returns a copy of p requesting one row beyond limit.
func (p FilterParams) withLookahead(limit int) FilterParams {
	lookahead := limit + 1
	p.LimitCount = &lookahead
	return p
}

// cleanList trims entries, drops blanks and duplicates, and maps empty to nil.
func cleanList(values []string) []string {
	trimmed := slice.Map(values, strings.TrimSpace)
	nonBlank := slice.Filter(trimmed, func(v string) bool { return v != "" })
	return slice.Unique(nonBlank)
}

func intBound(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func statusNames() []string {
	return slice.Map(Statuses, func(s Status) string { return string(s) })
}

func sortNames() []string {
	return slice.Map(SortOrders, func(s SortOrder) string { return string(s) })
}
