// Package router sets up all HTTP routes and middleware chains for the
// shop's JSON API. It organizes routes into public and authenticated
// admin groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"figstore/internal/handlers"
	"figstore/internal/middleware"
	"figstore/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints — accessible without a session.
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// Public catalog reads.
		r.Get("/categories", public.ListCategories)
		r.Get("/products", public.ListProducts)
		r.Get("/products/{category}/{slug}", public.GetProduct)
		r.Get("/search/autocomplete", public.Autocomplete)
		r.Get("/tags", public.ListTags)

		r.Get("/blog", public.ListBlogPosts)
		r.Get("/blog/{slug}", public.GetBlogPost)
		r.Get("/codex", public.ListCodexEntries)
		r.Get("/codex/{slug}", public.GetCodexEntry)
		r.Get("/promotions", public.ListPromotions)
		r.Get("/pages/{slug}", public.GetPage)

		// Authenticated content management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/categories", admin.SaveCategory)
			r.Put("/categories/{slug}", admin.SaveCategory)
			r.Delete("/categories/{slug}", admin.DeleteCategory)

			r.Post("/products", admin.CreateProduct)
			r.Put("/products/{category}/{slug}", admin.UpdateProduct)
			r.Delete("/products/{category}/{slug}", admin.DeleteProduct)
			r.Post("/products/{category}/{slug}/move", admin.MoveProduct)

			r.Post("/blog", admin.SaveBlogPost)
			r.Put("/blog/{slug}", admin.SaveBlogPost)
			r.Delete("/blog/{slug}", admin.DeleteBlogPost)

			r.Post("/codex", admin.SaveCodexEntry)
			r.Put("/codex/{slug}", admin.SaveCodexEntry)
			r.Delete("/codex/{slug}", admin.DeleteCodexEntry)

			r.Post("/pages", admin.SavePage)
			r.Put("/pages/{slug}", admin.SavePage)
			r.Delete("/pages/{slug}", admin.DeletePage)

			r.Get("/admin/promotions", admin.ListPromotions)
			r.Post("/promotions", admin.SavePromotion)
			r.Put("/promotions/{slug}", admin.SavePromotion)
			r.Delete("/promotions/{slug}", admin.DeletePromotion)

			r.Post("/tags/rename", admin.RenameTag)
			r.Delete("/tags/{tag}", admin.DeleteTag)

			r.Post("/cache/invalidate", admin.InvalidateCache)
			r.Get("/cache/invalidations", admin.RecentInvalidations)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
