// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"figstore/internal/cache"
	"figstore/internal/markdown"
	"figstore/internal/query"
	"figstore/internal/store"
	"figstore/internal/xref"
)

// autocompleteLimit caps suggestion lists for the search box.
const autocompleteLimit = 10

// Public groups the storefront read handlers. Rendered markdown is
// memoized in the rendered-output cache and dropped on every content
// write.
type Public struct {
	categories *store.CategoryStore
	products   *store.ProductStore
	blog       *store.BlogStore
	codex      *store.CodexStore
	pages      *store.PageStore
	promotions *store.PromotionStore
	engine     *query.Engine
	resolver   *xref.Resolver
	cache      *cache.Service
}

// NewPublic creates a new Public handler group.
func NewPublic(categories *store.CategoryStore, products *store.ProductStore, blog *store.BlogStore, codex *store.CodexStore, pages *store.PageStore, promotions *store.PromotionStore, engine *query.Engine, resolver *xref.Resolver, c *cache.Service) *Public {
	return &Public{
		categories: categories,
		products:   products,
		blog:       blog,
		codex:      codex,
		pages:      pages,
		promotions: promotions,
		engine:     engine,
		resolver:   resolver,
		cache:      c,
	}
}

// ListCategories returns all categories in display order.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// ListProducts answers catalog queries: category scoping, free-text
// search, facet filters, and sorting, all read through the query engine.
func (p *Public) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := query.Params{
		Category:   q.Get("category"),
		Search:     q.Get("search"),
		Tag:        q.Get("tag"),
		PreOrder:   q.Get("pre_order") == "true",
		OnSale:     q.Get("on_sale") == "true",
		NewArrival: q.Get("new_arrival") == "true",
		InStock:    q.Get("in_stock") == "true",
		Sort:       query.Sort(q.Get("sort")),
	}

	products, err := p.engine.Products(params)
	if err != nil {
		slog.Error("product query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// GetProduct returns one product with its rendered description and the
// related-products selection for the detail page.
func (p *Public) GetProduct(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	slug := chi.URLParam(r, "slug")

	product, err := p.products.Get(category, slug)
	if err != nil {
		slog.Error("get product failed", "error", err, "category", category, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	html, err := p.renderBody("product:"+category+"/"+slug, product.Description)
	if err != nil {
		slog.Error("render product description failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	related, err := p.engine.Related(product)
	if err != nil {
		slog.Error("related products failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product":          product,
		"description_html": html,
		"related":          related,
	})
}

// Autocomplete returns search suggestions for the storefront search box.
func (p *Public) Autocomplete(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	limit := autocompleteLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < autocompleteLimit {
			limit = n
		}
	}

	matches, err := p.engine.Autocomplete(term, limit)
	if err != nil {
		slog.Error("autocomplete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	type suggestion struct {
		Title    string `json:"title"`
		CNName   string `json:"cn_name,omitempty"`
		ZHTWName string `json:"zhtw_name,omitempty"`
		Category string `json:"category"`
		Slug     string `json:"slug"`
		Image    string `json:"image,omitempty"`
	}
	suggestions := make([]suggestion, 0, len(matches))
	for _, m := range matches {
		s := suggestion{
			Title:    m.Title,
			CNName:   m.CNName,
			ZHTWName: m.ZHTWName,
			Category: m.Category,
			Slug:     m.Slug,
		}
		if len(m.Images) > 0 {
			s.Image = m.Images[0]
		}
		suggestions = append(suggestions, s)
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// ListTags returns the derived tag inventory with live product counts.
func (p *Public) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := p.products.ListTags()
	if err != nil {
		slog.Error("list tags failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// ListBlogPosts returns all posts, newest first.
func (p *Public) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := p.blog.List()
	if err != nil {
		slog.Error("list posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// GetBlogPost returns one post with its rendered body.
func (p *Public) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := p.blog.Get(slug)
	if err != nil {
		slog.Error("get post failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	html, err := p.renderBody("blog:"+slug, post.Content)
	if err != nil {
		slog.Error("render post failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post, "content_html": html})
}

// ListCodexEntries returns the glossary in title order.
func (p *Public) ListCodexEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := p.codex.List()
	if err != nil {
		slog.Error("list codex failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// GetCodexEntry returns one glossary entry with its rendered body.
// Codex bodies may themselves reference other entries.
func (p *Public) GetCodexEntry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	entry, err := p.codex.Get(slug)
	if err != nil {
		slog.Error("get codex entry failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	html, err := p.renderBody("codex:"+slug, entry.Body)
	if err != nil {
		slog.Error("render codex entry failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry, "body_html": html})
}

// ListPromotions returns active promotions only; the admin surface
// lists all of them.
func (p *Public) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := p.promotions.ListActive()
	if err != nil {
		slog.Error("list promotions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promotions": promotions})
}

// GetPage returns a site page with its rendered body.
func (p *Public) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := p.pages.Get(slug)
	if err != nil {
		slog.Error("get page failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}

	html, err := p.renderBody("page:"+slug, page.Body)
	if err != nil {
		slog.Error("render page failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page, "body_html": html})
}

// renderBody resolves codex references in source, converts the result
// to HTML, and memoizes it in the rendered-output cache under key.
func (p *Public) renderBody(key, source string) (string, error) {
	if v, ok := p.cache.Rendered.Get(key); ok {
		return v.(string), nil
	}

	resolved, err := p.resolver.Resolve(source)
	if err != nil {
		return "", err
	}
	html, err := markdown.ToHTML(resolved)
	if err != nil {
		return "", err
	}

	p.cache.Rendered.Set(key, html)
	return html, nil
}
