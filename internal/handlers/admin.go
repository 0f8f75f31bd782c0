// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"figstore/internal/cache"
	"figstore/internal/models"
	"figstore/internal/slug"
	"figstore/internal/store"
)

// Admin groups the content-management handlers. Every write goes
// through a repository, which persists the record and flushes both
// caches before returning.
type Admin struct {
	categories *store.CategoryStore
	products   *store.ProductStore
	blog       *store.BlogStore
	codex      *store.CodexStore
	pages      *store.PageStore
	promotions *store.PromotionStore
	cache      *cache.Service
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(categories *store.CategoryStore, products *store.ProductStore, blog *store.BlogStore, codex *store.CodexStore, pages *store.PageStore, promotions *store.PromotionStore, c *cache.Service) *Admin {
	return &Admin{
		categories: categories,
		products:   products,
		blog:       blog,
		codex:      codex,
		pages:      pages,
		promotions: promotions,
		cache:      c,
	}
}

// --- Categories ---

// SaveCategory creates or updates a category. A missing slug is derived
// from the name.
func (a *Admin) SaveCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := readJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s := chi.URLParam(r, "slug"); s != "" {
		c.Slug = s
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}
	if c.Slug == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := a.categories.Save(c.Slug, &c); err != nil {
		slog.Error("save category failed", "error", err, "slug", c.Slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": c.Slug})
}

// DeleteCategory removes an empty category. Deleting one that still
// owns products is rejected with a 409.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	err := a.categories.Delete(s)
	var notEmpty *store.CategoryNotEmptyError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "category not found")
	case errors.As(err, &notEmpty):
		writeError(w, http.StatusConflict, notEmpty.Error())
	case err != nil:
		slog.Error("delete category failed", "error", err, "slug", s)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// --- Products ---

// CreateProduct creates a product from the request payload. The slug is
// derived from the title; in_stock defaults to true when omitted.
func (a *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p := models.Product{InStock: true}
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Category == "" || p.Title == "" {
		writeError(w, http.StatusBadRequest, "category and title are required")
		return
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}

	if err := a.products.Save(p.Category, p.Slug, &p); err != nil {
		slog.Error("save product failed", "error", err, "category", p.Category, "slug", p.Slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": p.Slug})
}

// UpdateProduct overwrites the product at category/slug.
func (a *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	s := chi.URLParam(r, "slug")

	p := models.Product{InStock: true}
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.Category, p.Slug = category, s

	if err := a.products.Save(category, s, &p); err != nil {
		slog.Error("save product failed", "error", err, "category", category, "slug", s)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteProduct removes a product record.
func (a *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	s := chi.URLParam(r, "slug")

	err := a.products.Delete(category, s)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case err != nil:
		slog.Error("delete product failed", "error", err, "category", category, "slug", s)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// MoveProduct relocates a product to another category, keeping its slug.
func (a *Admin) MoveProduct(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	s := chi.URLParam(r, "slug")

	var req struct {
		ToCategory string `json:"to_category"`
	}
	if err := readJSON(r, &req); err != nil || req.ToCategory == "" {
		writeError(w, http.StatusBadRequest, "to_category is required")
		return
	}

	err := a.products.Move(s, category, req.ToCategory)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case err != nil:
		slog.Error("move product failed", "error", err, "slug", s, "from", category, "to", req.ToCategory)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// --- Blog ---

// SaveBlogPost creates or updates a post. The slug is derived from the
// title when absent; the date defaults to today at the store layer.
func (a *Admin) SaveBlogPost(w http.ResponseWriter, r *http.Request) {
	var p models.BlogPost
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s := chi.URLParam(r, "slug"); s != "" {
		p.Slug = s
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Slug == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := a.blog.Save(p.Slug, &p); err != nil {
		slog.Error("save post failed", "error", err, "slug", p.Slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": p.Slug})
}

// DeleteBlogPost removes a post.
func (a *Admin) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	a.deleteBySlug(w, r, "post", a.blog.Delete)
}

// --- Codex ---

// SaveCodexEntry creates or updates a glossary entry.
func (a *Admin) SaveCodexEntry(w http.ResponseWriter, r *http.Request) {
	var e models.CodexEntry
	if err := readJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s := chi.URLParam(r, "slug"); s != "" {
		e.Slug = s
	}
	if e.Slug == "" {
		e.Slug = slug.Generate(e.Title)
	}
	if e.Slug == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := a.codex.Save(e.Slug, &e); err != nil {
		slog.Error("save codex entry failed", "error", err, "slug", e.Slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": e.Slug})
}

// DeleteCodexEntry removes a glossary entry.
func (a *Admin) DeleteCodexEntry(w http.ResponseWriter, r *http.Request) {
	a.deleteBySlug(w, r, "entry", a.codex.Delete)
}

// --- Pages ---

// SavePage creates or updates a site page.
func (a *Admin) SavePage(w http.ResponseWriter, r *http.Request) {
	var p models.Page
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s := chi.URLParam(r, "slug"); s != "" {
		p.Slug = s
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Slug == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := a.pages.Save(p.Slug, &p); err != nil {
		slog.Error("save page failed", "error", err, "slug", p.Slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": p.Slug})
}

// DeletePage removes a site page.
func (a *Admin) DeletePage(w http.ResponseWriter, r *http.Request) {
	a.deleteBySlug(w, r, "page", a.pages.Delete)
}

// --- Promotions ---

// ListPromotions returns every promotion, inactive ones included.
func (a *Admin) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := a.promotions.List()
	if err != nil {
		slog.Error("list promotions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promotions": promotions})
}

// SavePromotion creates or updates a promotion.
func (a *Admin) SavePromotion(w http.ResponseWriter, r *http.Request) {
	var p models.Promotion
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s := chi.URLParam(r, "slug"); s != "" {
		p.Slug = s
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Slug == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := a.promotions.Save(p.Slug, &p); err != nil {
		slog.Error("save promotion failed", "error", err, "slug", p.Slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": p.Slug})
}

// DeletePromotion removes a promotion.
func (a *Admin) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	a.deleteBySlug(w, r, "promotion", a.promotions.Delete)
}

// --- Tags ---

// RenameTag rewrites a tag across every product carrying it.
func (a *Admin) RenameTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	if err := readJSON(r, &req); err != nil || req.Old == "" || req.New == "" {
		writeError(w, http.StatusBadRequest, "old and new tag names are required")
		return
	}

	updated, err := a.products.RenameTag(req.Old, req.New)
	if err != nil {
		// Partial rewrites are logged at the store layer; report what
		// did change.
		slog.Error("rename tag incomplete", "error", err, "old", req.Old, "new", req.New)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": err == nil, "updated": updated})
}

// DeleteTag strips a tag from every product carrying it.
func (a *Admin) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	updated, err := a.products.DeleteTag(tag)
	if err != nil {
		slog.Error("delete tag incomplete", "error", err, "tag", tag)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": err == nil, "updated": updated})
}

// --- Cache control ---

// InvalidateCache clears both caches. Idempotent; always succeeds.
func (a *Admin) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	a.cache.InvalidateAll()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// RecentInvalidations returns the newest cache-flush events for the
// admin audit view.
func (a *Admin) RecentInvalidations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": a.cache.RecentInvalidations(limit)})
}

// deleteBySlug handles the shared delete flow of flat-file records.
func (a *Admin) deleteBySlug(w http.ResponseWriter, r *http.Request, kind string, del func(string) error) {
	s := chi.URLParam(r, "slug")

	err := del(s)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, kind+" not found")
	case err != nil:
		slog.Error("delete "+kind+" failed", "error", err, "slug", s)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
