// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query answers compound catalog queries over the materialized
// product collection: category scoping, free-text search, tag and facet
// filtering, and sorting. It never touches the filesystem itself — the
// repository supplies the (cached) full collection and this package only
// narrows and reorders it. Filtered subsets are never written back to
// the cache: they cannot be reused by a different query.
package query

import (
	"sort"
	"strings"

	"figstore/internal/models"
	"figstore/internal/store"
)

// Sort mode for product listings.
type Sort string

const (
	SortDefault   Sort = "default"
	SortPriceAsc  Sort = "price_ascending"
	SortPriceDesc Sort = "price_descending"
)

// Params describes one catalog query. Zero values mean "no constraint".
// The facet booleans are independent predicates combined with AND
// semantics: a product must satisfy every active filter.
type Params struct {
	Category   string
	Search     string
	Tag        string
	PreOrder   bool
	OnSale     bool
	NewArrival bool
	InStock    bool
	Sort       Sort
}

// Engine evaluates catalog queries against the product repository.
type Engine struct {
	products *store.ProductStore
}

// New creates a query engine over the given product store.
func New(products *store.ProductStore) *Engine {
	return &Engine{products: products}
}

// Products returns the catalog listing for the given parameters.
func (e *Engine) Products(q Params) ([]models.Product, error) {
	all, err := e.products.List(q.Category)
	if err != nil {
		return nil, err
	}

	// Narrow the already-sorted collection; order is preserved.
	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if q.Search != "" && !matchesSearch(&p, q.Search) {
			continue
		}
		if q.Tag != "" && !p.HasTag(q.Tag) {
			continue
		}
		if q.PreOrder && !p.PreOrder {
			continue
		}
		if q.OnSale && !p.OnSale {
			continue
		}
		if q.NewArrival && !p.NewArrival {
			continue
		}
		if q.InStock && !p.InStock {
			continue
		}
		matched = append(matched, p)
	}

	applySort(matched, q.Sort)
	return matched, nil
}

// Autocomplete returns up to limit search matches for a typeahead box.
func (e *Engine) Autocomplete(term string, limit int) ([]models.Product, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	matches, err := e.Products(Params{Search: term})
	if err != nil {
		return nil, err
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// matchesSearch reports whether the product matches the term as a
// case-insensitive substring of its title, localized names, external id,
// or SKU.
func matchesSearch(p *models.Product, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{p.Title, p.CNName, p.ZHTWName, p.ExternalID, p.SKU} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// applySort reorders products in place. The input arrives in the
// repository's default order, and every sort here is stable, so equal
// keys keep a deterministic order in all modes.
func applySort(products []models.Product, mode Sort) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	default:
		// Default mode clusters by group: groups in case-insensitive
		// name order, ungrouped products after all groups. Within a
		// cluster the repository ordering (order_weight desc, title
		// asc) is preserved by stability.
		sort.SliceStable(products, func(i, j int) bool {
			gi, gj := strings.ToLower(products[i].Group), strings.ToLower(products[j].Group)
			if (gi == "") != (gj == "") {
				return gj == ""
			}
			return gi < gj
		})
	}
}
