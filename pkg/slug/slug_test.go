// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/artmarket/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nuit Étoilée", "nuit-etoilee"},
		{"  Sunset over  the Bay!  ", "sunset-over-the-bay"},
		{"Composition No. 7", "composition-no-7"},
		{"---", ""},
		{"Øystein's Straße", "oystein-s-strasse"},
		{"ﬁeld Study Ⅲ", "field-study-iii"},
		{"Ｔｏｋｙｏ　２０２６", "tokyo-2026"},
		{"富士山 (Fuji)", "fuji"},
		{"富士山", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFromLimit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Blue Horses", 11, "blue-horses"},
		{"cut_at_word", "Blue Horses at Dawn", 14, "blue-horses-at"},
		{"cut_before_hyphen", "Blue Horses at Dawn", 11, "blue-horses"},
		{"single_long_word", "Supercalifragilistic", 5, "super"},
		{"no_cap", "Blue Horses", 0, "blue-horses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.FromLimit(tt.in, tt.limit))
		})
	}
}

func TestFrom_Capped(t *testing.T) {
	title := strings.Repeat("Untitled ", 20)

	got := slug.From(title)
	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasPrefix(got, "untitled-untitled"))
}
