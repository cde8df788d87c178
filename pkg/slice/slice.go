// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Map, Filter, Unique, All) leveraging generics.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter filters a slice, returning only elements where the predicate function evaluates to true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	// Not pre-allocating to full length to avoid excessive memory on heavy filters
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Unique returns the distinct elements of input in first-seen order.
// A nil or empty input yields nil.
func Unique[T comparable](input []T) []T {
	if len(input) == 0 {
		return nil
	}

	seen := make(map[T]struct{}, len(input))
	result := make([]T, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

// Clone returns a copy of input that preserves the nil-versus-empty distinction.
func Clone[T any](input []T) []T {
	if input == nil {
		return nil
	}
	return append(make([]T, 0, len(input)), input...)
}

// All reports whether predicate holds for every element. It is true for an
// empty or nil slice.
func All[T any](input []T, predicate func(T) bool) bool {
	for _, v := range input {
		if !predicate(v) {
			return false
		}
	}
	return true
}
