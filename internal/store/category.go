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

const (
	categoriesCacheKey = "categories:all"
	categoryFile       = "category.md"
)

// CategoryStore persists categories as directories under the categories
// root, each holding a category.md record and an images subdirectory.
type CategoryStore struct {
	root     string
	cache    *cache.Service
	products *ProductStore
}

// NewCategoryStore creates a CategoryStore rooted at dir. The product
// store is consulted for the referential-integrity check on delete.
func NewCategoryStore(dir string, c *cache.Service, products *ProductStore) *CategoryStore {
	return &CategoryStore{root: dir, cache: c, products: products}
}

// List returns all categories ordered by order_weight descending, then
// name case-insensitively ascending. The materialized result is cached
// until the next write to any content.
func (s *CategoryStore) List() ([]models.Category, error) {
	if v, ok := s.cache.Query.Get(categoriesCacheKey); ok {
		return v.([]models.Category), nil
	}

	slugs, err := visibleDirs(s.root)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]models.Category, 0, len(slugs))
	for _, slug := range slugs {
		data, err := os.ReadFile(filepath.Join(s.root, slug, categoryFile))
		if err != nil {
			// Directories without a record file are not categories.
			continue
		}
		categories = append(categories, categoryFromFile(slug, string(data)))
	}

	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if a.OrderWeight != b.OrderWeight {
			return a.OrderWeight > b.OrderWeight
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.Slug < b.Slug
	})

	s.cache.Query.Set(categoriesCacheKey, categories)
	return categories, nil
}

// Get retrieves one category by slug. Returns (nil, nil) when absent.
func (s *CategoryStore) Get(slug string) (*models.Category, error) {
	data, err := os.ReadFile(filepath.Join(s.root, slug, categoryFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read category %s: %w", slug, err)
	}
	c := categoryFromFile(slug, string(data))
	return &c, nil
}

// Save persists a category under slug, creating its directory layout on
// first write, and flushes both caches.
func (s *CategoryStore) Save(slug string, c *models.Category) error {
	dir := filepath.Join(s.root, slug)
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		return fmt.Errorf("create category dirs: %w", err)
	}

	content := frontmatter.Encode([]frontmatter.Field{
		{Key: "name", Value: c.Name},
		{Key: "order_weight", Value: c.OrderWeight},
		{Key: "icon", Value: c.Icon},
	}, c.Description)

	if err := writeRecord(filepath.Join(dir, categoryFile), content); err != nil {
		return fmt.Errorf("save category %s: %w", slug, err)
	}

	s.cache.Flush("category", slug, "save")
	return nil
}

// Delete removes a category and its directory. It is refused with a
// CategoryNotEmptyError while the category still owns any product.
func (s *CategoryStore) Delete(slug string) error {
	existing, err := s.Get(slug)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	count, err := s.products.CountByCategory(slug)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", slug, err)
	}
	if count > 0 {
		return &CategoryNotEmptyError{Slug: slug, Count: count}
	}

	if err := os.RemoveAll(filepath.Join(s.root, slug)); err != nil {
		return fmt.Errorf("delete category %s: %w", slug, err)
	}

	s.cache.Flush("category", slug, "delete")
	return nil
}

func categoryFromFile(slug, content string) models.Category {
	header, body := frontmatter.Decode(content)
	return models.Category{
		Slug:        slug,
		Name:        header.Str("name", slug),
		Description: body,
		OrderWeight: header.Int("order_weight", 0),
		Icon:        header.Str("icon", ""),
	}
}
