// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/internal/platform/constants"
	"github.com/taibuivan/artmarket/pkg/pointer"
)

func TestCountKeys(t *testing.T) {
	first, err := DefaultCriteria().Params()
	require.NoError(t, err)

	later := DefaultCriteria()
	later.Offset = 40
	later.Sort = SortPriceAsc
	laterParams, err := later.Params()
	require.NoError(t, err)

	firstKey, err := filterCountKey(first)
	require.NoError(t, err)
	laterKey, err := filterCountKey(laterParams)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(firstKey, constants.RedisPrefixFilterCount))
	assert.Equal(t, firstKey, laterKey, "page and order do not change the row set")

	searchKey, err := searchCountKey("  Sunset ", false)
	require.NoError(t, err)
	sameSearch, err := searchCountKey("sunset", false)
	require.NoError(t, err)
	artistSearch, err := searchCountKey("sunset", true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(searchKey, constants.RedisPrefixSearchCount))
	assert.Equal(t, searchKey, sameSearch)
	assert.NotEqual(t, searchKey, artistSearch)
}

func TestCountKeys_Unencodable(t *testing.T) {
	params := FilterParams{MinPrice: pointer.To(math.NaN())}

	key, err := filterCountKey(params)
	assert.Error(t, err)
	assert.Empty(t, key)

	key, err = combinedCountKey("sunset", false, params)
	assert.Error(t, err)
	assert.Empty(t, key)
}
