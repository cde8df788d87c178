// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives readable URL segments for artworks whose row has no
// stored slug: "Nuit Étoilée" becomes "nuit-etoilee".
//
// Output is lowercase ASCII letters and digits joined by single hyphens,
// never longer than the requested limit.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps slugs built by [From].
const MaxLength = 80

// foldings covers Latin letters that compatibility decomposition leaves
// intact but that appear often in artist names and titles.
var foldings = map[rune]string{
	'ß': "ss", 'æ': "ae", 'Æ': "ae", 'œ': "oe", 'Œ': "oe",
	'ø': "o", 'Ø': "o", 'ł': "l", 'Ł': "l", 'đ': "d", 'Đ': "d",
	'þ': "th", 'Þ': "th", 'ı': "i",
}

// From builds a slug of at most [MaxLength] bytes.
func From(s string) string {
	return FromLimit(s, MaxLength)
}

// FromLimit builds a slug of at most limit bytes. A slug that has to be cut
// ends at the last whole word that fits; a single word longer than limit is
// cut mid-word. A non-positive limit means no cap.
//
// Returns "" when s holds no letter or digit that maps to ASCII.
func FromLimit(s string, limit int) string {
	// NFKD also splits ligatures and full-width forms ("ﬁ" to "fi").
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))

	pendingHyphen := false
	emit := func(word string) {
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteString(word)
	}

	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			emit(string(r))
		case r >= 'A' && r <= 'Z':
			emit(string(r + ('a' - 'A')))
		case foldings[r] != "":
			emit(foldings[r])
		default:
			pendingHyphen = true
		}
	}

	return truncate(b.String(), limit)
}

func truncate(slug string, limit int) string {
	if limit <= 0 || len(slug) <= limit {
		return slug
	}

	cut := slug[:limit]
	if slug[limit] == '-' {
		return cut
	}
	if i := strings.LastIndexByte(cut, '-'); i > 0 {
		return cut[:i]
	}
	return cut
}
