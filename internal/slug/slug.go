// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Slugs are the stable identities of content records: they are derived once
// from a human title at creation time and never change afterwards, so the
// derivation must be deterministic and idempotent.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonWord matches anything that isn't a lowercase letter, digit,
	// whitespace, underscore, or hyphen.
	nonWord = regexp.MustCompile(`[^a-z0-9\s_-]`)
	// separatorRun collapses runs of whitespace, underscores, and hyphens.
	separatorRun = regexp.MustCompile(`[\s_-]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Café Figurine — Mk. II!" → "cafe-figurine-mk-ii"
func Generate(s string) string {
	// Decompose accented characters and drop the combining marks so
	// "é" folds to "e" instead of being stripped entirely.
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(strings.TrimSpace(result))
	result = nonWord.ReplaceAllString(result, "")
	result = separatorRun.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// isMn reports whether r is a Unicode non-spacing mark (an accent).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
