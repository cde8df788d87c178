// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses optional query-string values.

An empty input means "not provided" and yields a nil pointer with no error,
which is how facet bounds reach the catalog as SQL NULL. Malformed input is
reported so handlers can answer with a field-level validation error instead of
silently dropping a constraint.
*/
package convert

import (
	"strconv"
	"strings"
)

// OptionalFloat parses s as a float64; empty input returns (nil, nil).
func OptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// OptionalInt parses s as an int; empty input returns (nil, nil).
func OptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}

	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
