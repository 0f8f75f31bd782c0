// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category groups products in the catalog. Each category owns a directory
// of product records; the repository refuses to delete a category that
// still owns any.
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderWeight int    `json:"order_weight"`
	Icon        string `json:"icon,omitempty"`
}
