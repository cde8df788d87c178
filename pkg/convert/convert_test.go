// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/pkg/convert"
)

func TestOptionalFloat(t *testing.T) {
	v, err := convert.OptionalFloat("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = convert.OptionalFloat(" 99.5 ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 99.5, *v)

	_, err = convert.OptionalFloat("cheap")
	assert.Error(t, err)
}

func TestOptionalInt(t *testing.T) {
	v, err := convert.OptionalInt("1998")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 1998, *v)

	_, err = convert.OptionalInt("19.5")
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	assert.True(t, convert.ToBool("true"))
	assert.True(t, convert.ToBool("1"))
	assert.False(t, convert.ToBool("yes"))
	assert.False(t, convert.ToBool(""))
}
