// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"sort"

	"figstore/internal/models"
)

// relatedLimit caps how many related products a detail page shows.
const relatedLimit = 16

// Related selects products related to p in three priority tiers:
// same group first, then products sharing at least one tag (more shared
// tags ranking higher), then the rest of p's category. Tiers are
// concatenated in that order and truncated.
func (e *Engine) Related(p *models.Product) ([]models.Product, error) {
	// Group and tag matches may come from any category; only the last
	// tier is restricted to p's own category.
	all, err := e.products.List("")
	if err != nil {
		return nil, err
	}

	var group, tagged, rest []models.Product
	sharedCounts := make(map[string]int)

	for _, candidate := range all {
		if candidate.Category == p.Category && candidate.Slug == p.Slug {
			continue
		}
		switch {
		case p.Group != "" && candidate.Group == p.Group:
			group = append(group, candidate)
		case p.SharedTags(&candidate) > 0:
			sharedCounts[candidate.Category+"/"+candidate.Slug] = p.SharedTags(&candidate)
			tagged = append(tagged, candidate)
		case candidate.Category == p.Category:
			rest = append(rest, candidate)
		}
	}

	// More shared tags first; collection order breaks ties.
	sort.SliceStable(tagged, func(i, j int) bool {
		ki := tagged[i].Category + "/" + tagged[i].Slug
		kj := tagged[j].Category + "/" + tagged[j].Slug
		return sharedCounts[ki] > sharedCounts[kj]
	})

	related := make([]models.Product, 0, relatedLimit)
	for _, tier := range [][]models.Product{group, tagged, rest} {
		for _, candidate := range tier {
			if len(related) == relatedLimit {
				return related, nil
			}
			related = append(related, candidate)
		}
	}
	return related, nil
}
