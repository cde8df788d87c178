// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/artmarket/internal/platform/apperr"
)

// FilterOptions scans the catalog for facet values. The four scans run
// concurrently; any failure fails the whole call with a generic error.
func (gateway *Gateway) FilterOptions(ctx context.Context) (FilterOptions, error) {
	var (
		categories, mediums, locations []string
		prices                         []float64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		categories, err = gateway.backend.ListCategories(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		mediums, err = gateway.backend.ListMediums(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		locations, err = gateway.backend.ListLocations(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		prices, err = gateway.backend.ListPrices(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		gateway.logger.ErrorContext(ctx, "filter_options_failed", slog.Any("error", err))
		return FilterOptions{}, apperr.Unavailable("Filter options are unavailable right now", err)
	}

	return FilterOptions{
		Categories: sortedSet(categories),
		Mediums:    sortedSet(mediums),
		Locations:  sortedSet(locations),
		Price:      priceBounds(prices),
	}, nil
}

// sortedSet deduplicates values and sorts them lexicographically.
func sortedSet(values []string) []string {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			set[value] = struct{}{}
		}
	}

	result := make([]string, 0, len(set))
	for value := range set {
		result = append(result, value)
	}
	slices.Sort(result)
	return result
}

// priceBounds returns nil when no artwork has a price.
func priceBounds(prices []float64) *PriceBounds {
	if len(prices) == 0 {
		return nil
	}

	return &PriceBounds{Min: slices.Min(prices), Max: slices.Max(prices)}
}
