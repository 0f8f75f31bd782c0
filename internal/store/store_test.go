// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"path/filepath"
	"testing"

	"figstore/internal/cache"
	"figstore/internal/models"
)

// testStores builds the full store set over a throwaway content root.
type testStores struct {
	cache      *cache.Service
	categories *CategoryStore
	products   *ProductStore
	blog       *BlogStore
	codex      *CodexStore
	pages      *PageStore
	promotions *PromotionStore
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	root := t.TempDir()
	svc := cache.NewService()

	products := NewProductStore(filepath.Join(root, "products"), svc)
	return &testStores{
		cache:      svc,
		categories: NewCategoryStore(filepath.Join(root, "categories"), svc, products),
		products:   products,
		blog:       NewBlogStore(filepath.Join(root, "blog"), svc),
		codex:      NewCodexStore(filepath.Join(root, "codex"), svc),
		pages:      NewPageStore(filepath.Join(root, "pages"), svc),
		promotions: NewPromotionStore(filepath.Join(root, "promotions"), svc),
	}
}

// seedProduct saves a minimal product and fails the test on error.
func seedProduct(t *testing.T, ts *testStores, category, slug string, p models.Product) {
	t.Helper()
	if err := ts.products.Save(category, slug, &p); err != nil {
		t.Fatalf("seed product %s/%s: %v", category, slug, err)
	}
}

func TestListAllMissingRootsReturnEmpty(t *testing.T) {
	ts := newTestStores(t)

	if got, err := ts.products.List(""); err != nil || len(got) != 0 {
		t.Errorf("products.List = %v, %v; want empty, nil", got, err)
	}
	if got, err := ts.categories.List(); err != nil || len(got) != 0 {
		t.Errorf("categories.List = %v, %v; want empty, nil", got, err)
	}
	if got, err := ts.blog.List(); err != nil || len(got) != 0 {
		t.Errorf("blog.List = %v, %v; want empty, nil", got, err)
	}
	if got, err := ts.codex.List(); err != nil || len(got) != 0 {
		t.Errorf("codex.List = %v, %v; want empty, nil", got, err)
	}
	if got, err := ts.pages.List(); err != nil || len(got) != 0 {
		t.Errorf("pages.List = %v, %v; want empty, nil", got, err)
	}
	if got, err := ts.promotions.List(); err != nil || len(got) != 0 {
		t.Errorf("promotions.List = %v, %v; want empty, nil", got, err)
	}
}

func TestGetAbsentReturnsNilNil(t *testing.T) {
	ts := newTestStores(t)

	if p, err := ts.products.Get("mechs", "ghost"); p != nil || err != nil {
		t.Errorf("products.Get = %v, %v; want nil, nil", p, err)
	}
	if c, err := ts.categories.Get("ghost"); c != nil || err != nil {
		t.Errorf("categories.Get = %v, %v; want nil, nil", c, err)
	}
	if b, err := ts.blog.Get("ghost"); b != nil || err != nil {
		t.Errorf("blog.Get = %v, %v; want nil, nil", b, err)
	}
}

func TestDeleteAbsentReturnsNotFound(t *testing.T) {
	ts := newTestStores(t)

	if err := ts.products.Delete("mechs", "ghost"); err != ErrNotFound {
		t.Errorf("products.Delete = %v, want ErrNotFound", err)
	}
	if err := ts.categories.Delete("ghost"); err != ErrNotFound {
		t.Errorf("categories.Delete = %v, want ErrNotFound", err)
	}
	if err := ts.blog.Delete("ghost"); err != ErrNotFound {
		t.Errorf("blog.Delete = %v, want ErrNotFound", err)
	}
	if err := ts.promotions.Delete("ghost"); err != ErrNotFound {
		t.Errorf("promotions.Delete = %v, want ErrNotFound", err)
	}
}
