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
	"time"

	"figstore/internal/cache"
	"figstore/internal/frontmatter"
	"figstore/internal/models"
)

const blogCacheKey = "blog:all"

// BlogStore persists posts as flat <slug>.md files under the blog root.
type BlogStore struct {
	root  string
	cache *cache.Service
}

// NewBlogStore creates a BlogStore rooted at dir.
func NewBlogStore(dir string, c *cache.Service) *BlogStore {
	return &BlogStore{root: dir, cache: c}
}

// List returns all posts, newest first. Cached until the next write.
func (s *BlogStore) List() ([]models.BlogPost, error) {
	if v, ok := s.cache.Query.Get(blogCacheKey); ok {
		return v.([]models.BlogPost), nil
	}

	files, err := visibleFiles(s.root, ".md")
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}

	posts := make([]models.BlogPost, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			return nil, fmt.Errorf("read blog post %s: %w", name, err)
		}
		posts = append(posts, blogPostFromFile(strings.TrimSuffix(name, ".md"), string(data)))
	}

	// ISO dates compare correctly as strings; slug breaks date ties.
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})

	s.cache.Query.Set(blogCacheKey, posts)
	return posts, nil
}

// Get retrieves one post by slug. Returns (nil, nil) when absent.
func (s *BlogStore) Get(slug string) (*models.BlogPost, error) {
	data, err := os.ReadFile(filepath.Join(s.root, slug+".md"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blog post %s: %w", slug, err)
	}
	p := blogPostFromFile(slug, string(data))
	return &p, nil
}

// Save persists a post under slug, defaulting the date to today, and
// flushes both caches.
func (s *BlogStore) Save(slug string, p *models.BlogPost) error {
	date := p.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	content := frontmatter.Encode([]frontmatter.Field{
		{Key: "title", Value: p.Title},
		{Key: "date", Value: date},
		{Key: "author", Value: p.Author},
		{Key: "excerpt", Value: p.Excerpt},
		{Key: "tags", Value: tags},
	}, p.Content)

	if err := writeRecord(filepath.Join(s.root, slug+".md"), content); err != nil {
		return fmt.Errorf("save blog post %s: %w", slug, err)
	}

	s.cache.Flush("blog", slug, "save")
	return nil
}

// Delete removes a post by slug.
func (s *BlogStore) Delete(slug string) error {
	path := filepath.Join(s.root, slug+".md")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete blog post %s: %w", slug, err)
	}

	s.cache.Flush("blog", slug, "delete")
	return nil
}

func blogPostFromFile(slug, content string) models.BlogPost {
	header, body := frontmatter.Decode(content)

	excerpt := header.Str("excerpt", "")
	if excerpt == "" {
		excerpt = truncate(body, 200)
	}

	return models.BlogPost{
		Slug:    slug,
		Title:   header.Str("title", slug),
		Date:    header.Str("date", ""),
		Author:  header.Str("author", ""),
		Excerpt: excerpt,
		Tags:    header.List("tags"),
		Content: body,
	}
}

// truncate cuts s to at most n runes without splitting a character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
