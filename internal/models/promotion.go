// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Promotion is a marketing campaign record. Products holds references in
// "category/slug" form; Banner names an image filename stored alongside
// the record.
type Promotion struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Active   bool     `json:"active"`
	Products []string `json:"products"`
	Banner   string   `json:"banner,omitempty"`
	Body     string   `json:"body"`
}
