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
	promotionsCacheKey = "promotions:all"
	promotionFile      = "promotion.md"
)

// PromotionStore persists promotions as directories under the promotions
// root, each holding a promotion.md record; the banner image lives in
// the same directory.
type PromotionStore struct {
	root  string
	cache *cache.Service
}

// NewPromotionStore creates a PromotionStore rooted at dir.
func NewPromotionStore(dir string, c *cache.Service) *PromotionStore {
	return &PromotionStore{root: dir, cache: c}
}

// List returns all promotions ordered by title case-insensitively.
func (s *PromotionStore) List() ([]models.Promotion, error) {
	if v, ok := s.cache.Query.Get(promotionsCacheKey); ok {
		return v.([]models.Promotion), nil
	}

	slugs, err := visibleDirs(s.root)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}

	promos := make([]models.Promotion, 0, len(slugs))
	for _, slug := range slugs {
		data, err := os.ReadFile(filepath.Join(s.root, slug, promotionFile))
		if err != nil {
			continue
		}
		promos = append(promos, promotionFromFile(slug, string(data)))
	}

	sort.SliceStable(promos, func(i, j int) bool {
		a, b := strings.ToLower(promos[i].Title), strings.ToLower(promos[j].Title)
		if a != b {
			return a < b
		}
		return promos[i].Slug < promos[j].Slug
	})

	s.cache.Query.Set(promotionsCacheKey, promos)
	return promos, nil
}

// ListActive filters the cached collection down to active promotions.
// The filtered subset is never cached itself.
func (s *PromotionStore) ListActive() ([]models.Promotion, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	active := make([]models.Promotion, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// Get retrieves one promotion by slug. Returns (nil, nil) when absent.
func (s *PromotionStore) Get(slug string) (*models.Promotion, error) {
	data, err := os.ReadFile(filepath.Join(s.root, slug, promotionFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read promotion %s: %w", slug, err)
	}
	p := promotionFromFile(slug, string(data))
	return &p, nil
}

// Save persists a promotion under slug and flushes both caches.
func (s *PromotionStore) Save(slug string, p *models.Promotion) error {
	products := p.Products
	if products == nil {
		products = []string{}
	}

	content := frontmatter.Encode([]frontmatter.Field{
		{Key: "title", Value: p.Title},
		{Key: "active", Value: p.Active},
		{Key: "products", Value: products},
		{Key: "banner", Value: p.Banner},
	}, p.Body)

	if err := writeRecord(filepath.Join(s.root, slug, promotionFile), content); err != nil {
		return fmt.Errorf("save promotion %s: %w", slug, err)
	}

	s.cache.Flush("promotion", slug, "save")
	return nil
}

// Delete removes a promotion and its directory.
func (s *PromotionStore) Delete(slug string) error {
	dir := filepath.Join(s.root, slug)
	if _, err := os.Stat(filepath.Join(dir, promotionFile)); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete promotion %s: %w", slug, err)
	}

	s.cache.Flush("promotion", slug, "delete")
	return nil
}

func promotionFromFile(slug, content string) models.Promotion {
	header, body := frontmatter.Decode(content)
	return models.Promotion{
		Slug:     slug,
		Title:    header.Str("title", slug),
		Active:   header.Bool("active", false),
		Products: header.List("products"),
		Banner:   header.Str("banner", ""),
		Body:     body,
	}
}
