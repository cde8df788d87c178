// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/internal/platform/apperr"
)

/*
TestAs_TraversesWrappedChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	base := apperr.NotFound("Artwork")
	wrapped := fmt.Errorf("lookup: %w", base)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.True(t, apperr.IsAppError(wrapped))
}

/*
TestMessage_HidesForeignCauses ensures raw errors are never surfaced verbatim.
*/
func TestMessage_HidesForeignCauses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app_error", apperr.ValidationError("Validation failed"), "Validation failed"},
		{"foreign", errors.New("pq: relation artworks does not exist"), "An unexpected error occurred"},
		{"unavailable", apperr.Unavailable("Suggestions are unavailable", errors.New("timeout")), "Suggestions are unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.Message(tt.err))
		})
	}
}

/*
TestInternal_KeepsCause checks that the cause is reachable via errors.Is.
*/
func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}
