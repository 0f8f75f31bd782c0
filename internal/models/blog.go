// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BlogPost is a dated article stored as a flat file under the blog root.
type BlogPost struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date"` // YYYY-MM-DD
	Author  string   `json:"author,omitempty"`
	Excerpt string   `json:"excerpt,omitempty"`
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
}
