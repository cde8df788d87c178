// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query reads list-valued facets from URL query strings.
package query

import (
	"net/url"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Values collects every occurrence of key, accepting both repeated keys
// (?category=a&category=b) and comma lists (?category=a,b).
func Values(values url.Values, key string) []string {
	var res []string
	for _, raw := range values[key] {
		res = append(res, StringSlice(raw)...)
	}
	return res
}

// Has reports whether any of keys is present with a non-empty value.
func Has(values url.Values, keys ...string) bool {
	for _, key := range keys {
		if strings.TrimSpace(values.Get(key)) != "" {
			return true
		}
	}
	return false
}
