// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"bufio"
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
	productFile = "product.md"
	tagsFile    = "tags.txt"
)

// ProductStore persists products as directories under
// products/<category>/<slug>, each holding a product.md record, a
// tags.txt sibling (one tag per line), and an images subdirectory.
type ProductStore struct {
	root  string
	cache *cache.Service
}

// NewProductStore creates a ProductStore rooted at dir.
func NewProductStore(dir string, c *cache.Service) *ProductStore {
	return &ProductStore{root: dir, cache: c}
}

// List returns the materialized product collection, scoped to one
// category when category is non-empty. Results are ordered by
// order_weight descending, then title case-insensitively ascending,
// with the slug as a final tie-break, and cached per scope until the
// next write.
func (s *ProductStore) List(category string) ([]models.Product, error) {
	key := "products:all"
	if category != "" {
		key = "products:" + category
	}
	if v, ok := s.cache.Query.Get(key); ok {
		return v.([]models.Product), nil
	}

	var categories []string
	if category != "" {
		categories = []string{category}
	} else {
		var err error
		categories, err = visibleDirs(s.root)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
	}

	var products []models.Product
	for _, cat := range categories {
		slugs, err := visibleDirs(filepath.Join(s.root, cat))
		if err != nil {
			return nil, fmt.Errorf("list products in %s: %w", cat, err)
		}
		for _, slug := range slugs {
			p, err := s.read(cat, slug)
			if err != nil {
				return nil, err
			}
			if p == nil {
				// Directory without a record file; not a product.
				continue
			}
			products = append(products, *p)
		}
	}

	sortProducts(products)

	s.cache.Query.Set(key, products)
	return products, nil
}

// Get retrieves one product. Returns (nil, nil) when absent.
// Single-record reads are never cached: they are cheap and must always
// reflect the latest write.
func (s *ProductStore) Get(category, slug string) (*models.Product, error) {
	return s.read(category, slug)
}

// CountByCategory returns the number of products in a category. Used for
// the category-delete referential check.
func (s *ProductStore) CountByCategory(category string) (int, error) {
	products, err := s.List(category)
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// Save persists a product under category/slug, creating the directory
// layout on first write, and flushes both caches.
func (s *ProductStore) Save(category, slug string, p *models.Product) error {
	dir := filepath.Join(s.root, category, slug)
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		return fmt.Errorf("create product dirs: %w", err)
	}

	content := frontmatter.Encode(productFields(p), p.Description)
	if err := writeRecord(filepath.Join(dir, productFile), content); err != nil {
		return fmt.Errorf("save product %s/%s: %w", category, slug, err)
	}

	if err := writeTags(filepath.Join(dir, tagsFile), p.Tags); err != nil {
		return fmt.Errorf("save product tags %s/%s: %w", category, slug, err)
	}

	s.cache.Flush("product", category+"/"+slug, "save")
	return nil
}

// Delete removes a product record and everything stored alongside it.
func (s *ProductStore) Delete(category, slug string) error {
	dir := filepath.Join(s.root, category, slug)
	if _, err := os.Stat(filepath.Join(dir, productFile)); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete product %s/%s: %w", category, slug, err)
	}

	s.cache.Flush("product", category+"/"+slug, "delete")
	return nil
}

// Move relocates a product between categories with copy, verify, delete
// semantics: the original is only removed once the copy reads back
// correctly, so a failure partway leaves at least one intact record.
func (s *ProductStore) Move(slug, fromCategory, toCategory string) error {
	src := filepath.Join(s.root, fromCategory, slug)
	if _, err := os.Stat(filepath.Join(src, productFile)); os.IsNotExist(err) {
		return ErrNotFound
	}

	dst := filepath.Join(s.root, toCategory, slug)
	if _, err := os.Stat(filepath.Join(dst, productFile)); err == nil {
		return fmt.Errorf("move product %s: %s/%s already exists", slug, toCategory, slug)
	}

	if err := copyTree(src, dst); err != nil {
		return fmt.Errorf("move product %s: copy: %w", slug, err)
	}

	// Verify the copy decodes before removing the original.
	moved, err := s.read(toCategory, slug)
	if err != nil || moved == nil {
		os.RemoveAll(dst)
		return fmt.Errorf("move product %s: verify failed: %w", slug, err)
	}

	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("move product %s: remove original: %w", slug, err)
	}

	s.cache.Flush("product", fromCategory+"/"+slug, "move")
	return nil
}

func (s *ProductStore) read(category, slug string) (*models.Product, error) {
	dir := filepath.Join(s.root, category, slug)
	data, err := os.ReadFile(filepath.Join(dir, productFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read product %s/%s: %w", category, slug, err)
	}

	tags, err := readTags(filepath.Join(dir, tagsFile))
	if err != nil {
		return nil, fmt.Errorf("read product tags %s/%s: %w", category, slug, err)
	}

	p := productFromFile(category, slug, string(data))
	p.Tags = tags
	return &p, nil
}

func productFromFile(category, slug, content string) models.Product {
	header, body := frontmatter.Decode(content)
	return models.Product{
		Slug:          slug,
		Category:      category,
		Title:         header.Str("title", slug),
		CNName:        header.Str("cn_name", ""),
		ZHTWName:      header.Str("zhtw_name", ""),
		Price:         header.Float("price", 0),
		SalePrice:     header.Float("sale_price", 0),
		OnSale:        header.Bool("is_on_sale", false),
		InStock:       header.Bool("in_stock", true),
		PreOrder:      header.Bool("is_pre_order", false),
		AvailableDate: header.Str("available_date", ""),
		NewArrival:    header.Bool("is_new_arrival", false),
		Description:   body,
		Images:        header.List("images"),
		Group:         header.Str("group", ""),
		SKU:           header.Str("sku", ""),
		ExternalID:    header.Text("id", ""),
		Series:        header.Str("series", ""),
		Scale:         header.Text("scale", ""),
		Size:          header.Text("size", ""),
		Weight:        header.Text("weight", ""),
		ZHTWPrice:     header.Float("zhtw_price", 0),
		Cost:          header.Float("cost", 0),
		FinalPrice:    header.Float("final_price", 0),
		CostTW:        header.Float("cost_tw", 0),
		OrderWeight:   header.Int("order_weight", 0),
	}
}

// productFields is the conventional header order for product records,
// kept stable so content files diff cleanly across saves.
func productFields(p *models.Product) []frontmatter.Field {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return []frontmatter.Field{
		{Key: "title", Value: p.Title},
		{Key: "price", Value: p.Price},
		{Key: "sku", Value: p.SKU},
		{Key: "in_stock", Value: p.InStock},
		{Key: "images", Value: images},
		{Key: "is_pre_order", Value: p.PreOrder},
		{Key: "available_date", Value: p.AvailableDate},
		{Key: "is_on_sale", Value: p.OnSale},
		{Key: "sale_price", Value: p.SalePrice},
		{Key: "is_new_arrival", Value: p.NewArrival},
		{Key: "group", Value: p.Group},
		{Key: "id", Value: p.ExternalID},
		{Key: "cn_name", Value: p.CNName},
		{Key: "zhtw_name", Value: p.ZHTWName},
		{Key: "series", Value: p.Series},
		{Key: "scale", Value: p.Scale},
		{Key: "size", Value: p.Size},
		{Key: "weight", Value: p.Weight},
		{Key: "zhtw_price", Value: p.ZHTWPrice},
		{Key: "cost", Value: p.Cost},
		{Key: "final_price", Value: p.FinalPrice},
		{Key: "cost_tw", Value: p.CostTW},
		{Key: "order_weight", Value: p.OrderWeight},
	}
}

// sortProducts applies the catalog ordering rule: order_weight
// descending, title case-insensitively ascending, slug as tie-break.
func sortProducts(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.OrderWeight != b.OrderWeight {
			return a.OrderWeight > b.OrderWeight
		}
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
		return a.Slug < b.Slug
	})
}

func readTags(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tags []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if tag := strings.TrimSpace(scanner.Text()); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, scanner.Err()
}

func writeTags(path string, tags []string) error {
	var b strings.Builder
	for _, tag := range tags {
		b.WriteString(tag)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
