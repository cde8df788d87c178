// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/internal/platform/apperr"
	"github.com/taibuivan/artmarket/internal/platform/validate"
	"github.com/taibuivan/artmarket/pkg/pointer"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "q", "sunset", false},
		{"empty_string", "q", "", true},
		{"whitespace_only", "q", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Bounds checks min/max ordering on optional bounds.
*/
func TestValidator_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		lower    *float64
		upper    *float64
		hasError bool
	}{
		{"both_nil", nil, nil, false},
		{"only_lower", pointer.To(100.0), nil, false},
		{"only_upper", nil, pointer.To(10.0), false},
		{"ordered", pointer.To(100.0), pointer.To(500.0), false},
		{"equal", pointer.To(100.0), pointer.To(100.0), false},
		{"inverted", pointer.To(500.0), pointer.To(100.0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Bounds("min_price", "max_price", tt.lower, tt.upper)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

func TestValidator_Finite(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		hasError bool
	}{
		{"absent", nil, false},
		{"zero", pointer.To(0.0), false},
		{"negative", pointer.To(-3.5), false},
		{"nan", pointer.To(math.NaN()), true},
		{"positive_infinity", pointer.To(math.Inf(1)), true},
		{"negative_infinity", pointer.To(math.Inf(-1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Finite("min_price", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("q", "").
		OneOf("sort", "random", "price_asc", "price_desc").
		NonNegative("min_price", pointer.To(-1.0)).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 3)
	assert.Equal(t, "sort", ae.Details[1].Field)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("q", "sunset").
		MaxLen("q", "sunset", 200).
		Range("limit", 20, 1, 100).
		OneOf("status", "active", "active", "sold").
		Err()

	assert.NoError(t, err)
}
