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

const pagesCacheKey = "pages:all"

// PageStore persists standalone site pages as flat <slug>.md files.
type PageStore struct {
	root  string
	cache *cache.Service
}

// NewPageStore creates a PageStore rooted at dir.
func NewPageStore(dir string, c *cache.Service) *PageStore {
	return &PageStore{root: dir, cache: c}
}

// List returns all pages ordered by title case-insensitively.
func (s *PageStore) List() ([]models.Page, error) {
	if v, ok := s.cache.Query.Get(pagesCacheKey); ok {
		return v.([]models.Page), nil
	}

	files, err := visibleFiles(s.root, ".md")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make([]models.Page, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		pages = append(pages, pageFromFile(strings.TrimSuffix(name, ".md"), string(data)))
	}

	sort.SliceStable(pages, func(i, j int) bool {
		a, b := strings.ToLower(pages[i].Title), strings.ToLower(pages[j].Title)
		if a != b {
			return a < b
		}
		return pages[i].Slug < pages[j].Slug
	})

	s.cache.Query.Set(pagesCacheKey, pages)
	return pages, nil
}

// Get retrieves one page by slug. Returns (nil, nil) when absent.
func (s *PageStore) Get(slug string) (*models.Page, error) {
	data, err := os.ReadFile(filepath.Join(s.root, slug+".md"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", slug, err)
	}
	p := pageFromFile(slug, string(data))
	return &p, nil
}

// Save persists a page under slug and flushes both caches.
func (s *PageStore) Save(slug string, p *models.Page) error {
	content := frontmatter.Encode([]frontmatter.Field{
		{Key: "title", Value: p.Title},
	}, p.Body)

	if err := writeRecord(filepath.Join(s.root, slug+".md"), content); err != nil {
		return fmt.Errorf("save page %s: %w", slug, err)
	}

	s.cache.Flush("page", slug, "save")
	return nil
}

// Delete removes a page by slug.
func (s *PageStore) Delete(slug string) error {
	path := filepath.Join(s.root, slug+".md")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete page %s: %w", slug, err)
	}

	s.cache.Flush("page", slug, "delete")
	return nil
}

func pageFromFile(slug, content string) models.Page {
	header, body := frontmatter.Decode(content)
	return models.Page{
		Slug:  slug,
		Title: header.Str("title", slug),
		Body:  body,
	}
}
