// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the typed content records of the catalog. Every
// record is identified by a URL-safe slug derived once from its title, and
// persisted as a flat file with a structured header and a markdown body.
package models

// Product is a single catalog listing. Products live under their owning
// category's directory and carry a sibling tag list and an images directory.
type Product struct {
	Slug     string `json:"slug"`
	Category string `json:"category"`
	Title    string `json:"title"`

	// Localized name variants imported from the supplier feed.
	CNName   string `json:"cn_name,omitempty"`
	ZHTWName string `json:"zhtw_name,omitempty"`

	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price,omitempty"`
	OnSale    bool    `json:"is_on_sale"`

	InStock       bool   `json:"in_stock"`
	PreOrder      bool   `json:"is_pre_order"`
	AvailableDate string `json:"available_date,omitempty"`
	NewArrival    bool   `json:"is_new_arrival"`

	Description string   `json:"description"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`

	// Group clusters visually related listings (e.g. one product line)
	// in the default catalog ordering.
	Group string `json:"group,omitempty"`

	SKU        string `json:"sku,omitempty"`
	ExternalID string `json:"id,omitempty"`
	Series     string `json:"series,omitempty"`
	Scale      string `json:"scale,omitempty"`
	Size       string `json:"size,omitempty"`
	Weight     string `json:"weight,omitempty"`

	// Backend-only pricing fields, never shown on the public site.
	ZHTWPrice  float64 `json:"zhtw_price,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
	FinalPrice float64 `json:"final_price,omitempty"`
	CostTW     float64 `json:"cost_tw,omitempty"`

	OrderWeight int `json:"order_weight"`
}

// EffectivePrice returns the price the catalog sorts and displays by:
// the sale price while a sale is active and priced, otherwise the
// regular price.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}

// HasTag reports whether the product carries the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedTags counts how many of the product's tags also appear on other.
func (p *Product) SharedTags(other *Product) int {
	n := 0
	for _, t := range p.Tags {
		if other.HasTag(t) {
			n++
		}
	}
	return n
}
