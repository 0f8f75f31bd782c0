// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// tag.go implements the derived tag inventory and the bulk tag rewrites.
// Tags are not standalone records: the inventory is computed from every
// product's tag list at query time, and renaming or deleting a tag
// rewrites the tags.txt of every affected product. Bulk rewrites are
// best-effort: a failed file is logged and skipped, the remaining
// products are still rewritten, and both caches are flushed either way
// so no stale view survives a partial rewrite.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"figstore/internal/models"
)

const tagsCacheKey = "tags:all"

// ListTags returns every distinct product tag with its live product
// count, ordered by count descending then name ascending.
func (s *ProductStore) ListTags() ([]models.TagCount, error) {
	if v, ok := s.cache.Query.Get(tagsCacheKey); ok {
		return v.([]models.TagCount), nil
	}

	products, err := s.List("")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	counts := make(map[string]int)
	for _, p := range products {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}

	tags := make([]models.TagCount, 0, len(counts))
	for name, count := range counts {
		tags = append(tags, models.TagCount{Name: name, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})

	s.cache.Query.Set(tagsCacheKey, tags)
	return tags, nil
}

// RenameTag replaces old with new in every product carrying it and
// returns how many products were rewritten.
func (s *ProductStore) RenameTag(old, new string) (int, error) {
	return s.rewriteTag(old, func(tags []string) []string {
		out := make([]string, 0, len(tags))
		seen := make(map[string]bool)
		for _, t := range tags {
			if t == old {
				t = new
			}
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
		return out
	}, "rename-tag")
}

// DeleteTag removes the tag from every product carrying it and returns
// how many products were rewritten.
func (s *ProductStore) DeleteTag(tag string) (int, error) {
	return s.rewriteTag(tag, func(tags []string) []string {
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			if t != tag {
				out = append(out, t)
			}
		}
		return out
	}, "delete-tag")
}

func (s *ProductStore) rewriteTag(tag string, rewrite func([]string) []string, action string) (int, error) {
	products, err := s.List("")
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", action, tag, err)
	}

	var affected int
	var errs []error
	for _, p := range products {
		if !p.HasTag(tag) {
			continue
		}
		path := filepath.Join(s.root, p.Category, p.Slug, tagsFile)
		if err := writeTags(path, rewrite(p.Tags)); err != nil {
			slog.Warn("tag rewrite failed, continuing",
				"action", action, "tag", tag,
				"product", p.Category+"/"+p.Slug, "error", err,
			)
			errs = append(errs, fmt.Errorf("%s/%s: %w", p.Category, p.Slug, err))
			continue
		}
		affected++
	}

	// Flush even after a partial failure: some files on disk changed.
	s.cache.Flush("tag", tag, action)
	return affected, errors.Join(errs...)
}
