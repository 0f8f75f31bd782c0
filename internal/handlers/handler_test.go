// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. The full stack — flat-file stores, caches, query
// engine, resolver, limiter — runs against a throwaway content tree.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"figstore/internal/auth"
	"figstore/internal/cache"
	"figstore/internal/models"
	"figstore/internal/query"
	"figstore/internal/session"
	"figstore/internal/store"
	"figstore/internal/xref"
)

// testApp bundles the wired handler groups and their backing stores.
type testApp struct {
	categories *store.CategoryStore
	products   *store.ProductStore
	blog       *store.BlogStore
	codex      *store.CodexStore
	pages      *store.PageStore
	promotions *store.PromotionStore
	cache      *cache.Service
	sessions   *session.Store
	users      *auth.UserStore
	limiter    *auth.LoginLimiter

	public *Public
	auth   *Auth
	admin  *Admin
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	root := t.TempDir()
	svc := cache.NewService()

	products := store.NewProductStore(filepath.Join(root, "products"), svc)
	categories := store.NewCategoryStore(filepath.Join(root, "categories"), svc, products)
	blog := store.NewBlogStore(filepath.Join(root, "blog"), svc)
	codex := store.NewCodexStore(filepath.Join(root, "codex"), svc)
	pages := store.NewPageStore(filepath.Join(root, "pages"), svc)
	promotions := store.NewPromotionStore(filepath.Join(root, "promotions"), svc)

	engine := query.New(products)
	resolver := xref.New(codex, svc)
	sessions := session.NewStore()
	users := auth.NewUserStore(filepath.Join(root, "data", "users.json"))
	limiter := auth.NewLoginLimiter(5, 15*time.Minute)

	return &testApp{
		categories: categories,
		products:   products,
		blog:       blog,
		codex:      codex,
		pages:      pages,
		promotions: promotions,
		cache:      svc,
		sessions:   sessions,
		users:      users,
		limiter:    limiter,

		public: NewPublic(categories, products, blog, codex, pages, promotions, engine, resolver, svc),
		auth:   NewAuth(sessions, users, limiter),
		admin:  NewAdmin(categories, products, blog, codex, pages, promotions, svc),
	}
}

// do runs handler against a request and decodes the JSON response body.
func do(t *testing.T, handler http.HandlerFunc, r *http.Request) (int, map[string]any) {
	t.Helper()

	rr := httptest.NewRecorder()
	handler(rr, r)

	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	var payload map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode response %q: %v", body, err)
		}
	}
	return rr.Code, payload
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	r := httptest.NewRequest(method, target, bytes.NewReader(data))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withURLParams attaches chi route parameters to a request built
// outside the router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func seedProduct(t *testing.T, app *testApp, category, slug string, p models.Product) {
	t.Helper()
	if err := app.products.Save(category, slug, &p); err != nil {
		t.Fatalf("seed product %s/%s: %v", category, slug, err)
	}
}
