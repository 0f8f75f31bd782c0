// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"reflect"
	"testing"

	"figstore/internal/models"
)

func TestListTags(t *testing.T) {
	ts := newTestStores(t)

	seedProduct(t, ts, "mechs", "a", models.Product{Title: "A", Tags: []string{"mecha", "limited"}})
	seedProduct(t, ts, "mechs", "b", models.Product{Title: "B", Tags: []string{"mecha"}})
	seedProduct(t, ts, "plush", "c", models.Product{Title: "C", Tags: []string{"plush", "limited"}})

	tags, err := ts.products.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}

	want := []models.TagCount{
		{Name: "limited", Count: 2},
		{Name: "mecha", Count: 2},
		{Name: "plush", Count: 1},
	}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %+v, want %+v", tags, want)
	}
}

func TestRenameTag(t *testing.T) {
	ts := newTestStores(t)

	seedProduct(t, ts, "mechs", "a", models.Product{Title: "A", Tags: []string{"mecha", "limited"}})
	seedProduct(t, ts, "mechs", "b", models.Product{Title: "B", Tags: []string{"limited"}})
	seedProduct(t, ts, "mechs", "c", models.Product{Title: "C", Tags: []string{"plush"}})

	affected, err := ts.products.RenameTag("limited", "rare")
	if err != nil {
		t.Fatalf("RenameTag: %v", err)
	}
	if affected != 2 {
		t.Errorf("affected = %d, want 2", affected)
	}

	a, _ := ts.products.Get("mechs", "a")
	if !reflect.DeepEqual(a.Tags, []string{"mecha", "rare"}) {
		t.Errorf("a tags = %v", a.Tags)
	}
	c, _ := ts.products.Get("mechs", "c")
	if !reflect.DeepEqual(c.Tags, []string{"plush"}) {
		t.Errorf("c tags = %v (should be untouched)", c.Tags)
	}

	// The derived inventory must reflect the rewrite immediately.
	tags, err := ts.products.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	for _, tc := range tags {
		if tc.Name == "limited" {
			t.Error("old tag name still present after rename")
		}
	}
}

// Renaming onto an existing tag must not leave duplicates on a product.
func TestRenameTagDeduplicates(t *testing.T) {
	ts := newTestStores(t)
	seedProduct(t, ts, "mechs", "a", models.Product{Title: "A", Tags: []string{"limited", "rare"}})

	if _, err := ts.products.RenameTag("limited", "rare"); err != nil {
		t.Fatalf("RenameTag: %v", err)
	}
	a, _ := ts.products.Get("mechs", "a")
	if !reflect.DeepEqual(a.Tags, []string{"rare"}) {
		t.Errorf("tags = %v, want [rare]", a.Tags)
	}
}

func TestDeleteTag(t *testing.T) {
	ts := newTestStores(t)

	seedProduct(t, ts, "mechs", "a", models.Product{Title: "A", Tags: []string{"mecha", "limited"}})
	seedProduct(t, ts, "plush", "b", models.Product{Title: "B", Tags: []string{"limited"}})

	affected, err := ts.products.DeleteTag("limited")
	if err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if affected != 2 {
		t.Errorf("affected = %d, want 2", affected)
	}

	a, _ := ts.products.Get("mechs", "a")
	if !reflect.DeepEqual(a.Tags, []string{"mecha"}) {
		t.Errorf("a tags = %v", a.Tags)
	}
	b, _ := ts.products.Get("plush", "b")
	if len(b.Tags) != 0 {
		t.Errorf("b tags = %v, want none", b.Tags)
	}
}
