// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package xref rewrites [[term]] markers in content bodies into links
// to codex entries.
package xref

import (
	"regexp"
	"strings"

	"figstore/internal/cache"
	"figstore/internal/store"
)

const lookupCacheKey = "codex:lookup"

var marker = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// Resolver turns double-bracket references into markdown links against
// the codex collection. Unknown terms degrade to their display text.
type Resolver struct {
	codex *store.CodexStore
	cache *cache.Service
}

func New(codex *store.CodexStore, c *cache.Service) *Resolver {
	return &Resolver{codex: codex, cache: c}
}

// lookup maps every lowercased entry title and alias to the entry's
// slug. The map is cached alongside the codex collection and rebuilt
// after any content write flushes the caches.
func (r *Resolver) lookup() (map[string]string, error) {
	if v, ok := r.cache.Query.Get(lookupCacheKey); ok {
		return v.(map[string]string), nil
	}

	entries, err := r.codex.List()
	if err != nil {
		return nil, err
	}

	terms := make(map[string]string, len(entries))
	for _, e := range entries {
		terms[strings.ToLower(e.Title)] = e.Slug
		for _, alias := range e.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				terms[strings.ToLower(alias)] = e.Slug
			}
		}
	}

	r.cache.Query.Set(lookupCacheKey, terms)
	return terms, nil
}

// Resolve replaces every [[term]] in text. Known terms become markdown
// links to /codex/<slug> keeping the original display text; unknown
// terms are left as bare text with the brackets stripped.
func (r *Resolver) Resolve(text string) (string, error) {
	if !strings.Contains(text, "[[") {
		return text, nil
	}

	terms, err := r.lookup()
	if err != nil {
		return "", err
	}

	resolved := marker.ReplaceAllStringFunc(text, func(m string) string {
		display := strings.TrimSpace(m[2 : len(m)-2])
		if slug, ok := terms[strings.ToLower(display)]; ok {
			return "[" + display + "](/codex/" + slug + ")"
		}
		return display
	})
	return resolved, nil
}
