// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// TagCount is one entry of the derived tag inventory: a distinct tag string
// with the number of products currently carrying it. Tags are never stored
// standalone; renaming or deleting one rewrites every affected product.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
