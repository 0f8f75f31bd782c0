// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CodexEntry is a glossary record. Its title and every alias resolve to the
// entry when descriptions reference it with [[term]] markup.
type CodexEntry struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Aliases []string `json:"aliases"`
	Body    string   `json:"body"`
}
