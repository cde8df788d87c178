// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/artmarket/pkg/slice"
)

func TestMapFilter(t *testing.T) {
	in := []string{" Oil ", "", "Acrylic"}

	trimmed := slice.Map(in, strings.TrimSpace)
	assert.Equal(t, []string{"Oil", "", "Acrylic"}, trimmed)

	nonBlank := slice.Filter(trimmed, func(s string) bool { return s != "" })
	assert.Equal(t, []string{"Oil", "Acrylic"}, nonBlank)

	assert.Nil(t, slice.Map[string, string](nil, strings.TrimSpace))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"Painting", "Sculpture"}, slice.Unique([]string{"Painting", "Sculpture", "Painting"}))
	assert.Nil(t, slice.Unique([]string{}))
	assert.Nil(t, slice.Unique[int](nil))
}

func TestClone(t *testing.T) {
	assert.Nil(t, slice.Clone[string](nil))

	empty := slice.Clone([]string{})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	src := []string{"a"}
	dst := slice.Clone(src)
	dst[0] = "b"
	assert.Equal(t, "a", src[0])
}

func TestAll(t *testing.T) {
	nonBlank := func(s string) bool { return s != "" }

	assert.True(t, slice.All([]string{"a", "b"}, nonBlank))
	assert.False(t, slice.All([]string{"a", ""}, nonBlank))
	assert.True(t, slice.All(nil, nonBlank))
}
