// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store maps each content type to its on-disk layout under the
// content root and keeps the query and rendered caches consistent with
// every write. Collection reads are memoized in the query cache; single
// record reads always hit the filesystem so they reflect the latest write
// without invalidation bookkeeping. Every successful save or delete
// flushes both caches synchronously before returning.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by destructive operations on records that do
// not exist. Lookups that find nothing return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// CategoryNotEmptyError rejects deletion of a category that still owns
// products. Deletion is never cascaded.
type CategoryNotEmptyError struct {
	Slug  string
	Count int
}

func (e *CategoryNotEmptyError) Error() string {
	return fmt.Sprintf("category %q still owns %d product(s)", e.Slug, e.Count)
}

// visibleDirs lists the subdirectory names of root, skipping dotfiles and
// plain files. A missing root yields an empty list, not an error: content
// roots appear lazily on first write.
func visibleDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// visibleFiles lists the names of regular files in root with the given
// extension, skipping dotfiles. A missing root yields an empty list.
func visibleFiles(root, ext string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", root, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// writeRecord writes a record file as a single complete overwrite, so a
// concurrent reader observes either the old or the new content, never a
// torn record.
func writeRecord(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create record dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", path, err)
	}
	return nil
}

// copyTree duplicates a record directory (files and one level of
// subdirectories, which covers record file + tags + images) from src
// into dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
