// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"figstore/internal/cache"
	"figstore/internal/frontmatter"
	"figstore/internal/models"
)

const codexCacheKey = "codex:all"

// CodexStore persists glossary entries as flat <slug>.md files under the
// codex root. The cross-reference resolver builds its term lookup from
// this collection.
type CodexStore struct {
	root  string
	cache *cache.Service
}

// NewCodexStore creates a CodexStore rooted at dir.
func NewCodexStore(dir string, c *cache.Service) *CodexStore {
	return &CodexStore{root: dir, cache: c}
}

// List returns all entries ordered by title case-insensitively.
// Cached until the next write.
func (s *CodexStore) List() ([]models.CodexEntry, error) {
	if v, ok := s.cache.Query.Get(codexCacheKey); ok {
		return v.([]models.CodexEntry), nil
	}

	files, err := visibleFiles(s.root, ".md")
	if err != nil {
		return nil, fmt.Errorf("list codex entries: %w", err)
	}

	entries := make([]models.CodexEntry, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			return nil, fmt.Errorf("read codex entry %s: %w", name, err)
		}
		entries = append(entries, codexEntryFromFile(strings.TrimSuffix(name, ".md"), string(data)))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Title), strings.ToLower(entries[j].Title)
		if a != b {
			return a < b
		}
		return entries[i].Slug < entries[j].Slug
	})

	s.cache.Query.Set(codexCacheKey, entries)
	return entries, nil
}

// Get retrieves one entry by slug. Returns (nil, nil) when absent.
func (s *CodexStore) Get(slug string) (*models.CodexEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.root, slug+".md"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read codex entry %s: %w", slug, err)
	}
	e := codexEntryFromFile(slug, string(data))
	return &e, nil
}

// Save persists an entry under slug and flushes both caches (which also
// drops the resolver's term lookup).
func (s *CodexStore) Save(slug string, e *models.CodexEntry) error {
	aliases := e.Aliases
	if aliases == nil {
		aliases = []string{}
	}

	content := frontmatter.Encode([]frontmatter.Field{
		{Key: "title", Value: e.Title},
		{Key: "aliases", Value: aliases},
	}, e.Body)

	if err := writeRecord(filepath.Join(s.root, slug+".md"), content); err != nil {
		return fmt.Errorf("save codex entry %s: %w", slug, err)
	}

	s.cache.Flush("codex", slug, "save")
	return nil
}

// Delete removes an entry by slug.
func (s *CodexStore) Delete(slug string) error {
	path := filepath.Join(s.root, slug+".md")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete codex entry %s: %w", slug, err)
	}

	s.cache.Flush("codex", slug, "delete")
	return nil
}

func codexEntryFromFile(slug, content string) models.CodexEntry {
	header, body := frontmatter.Decode(content)
	return models.CodexEntry{
		Slug:    slug,
		Title:   header.Str("title", slug),
		Aliases: header.List("aliases"),
		Body:    body,
	}
}
