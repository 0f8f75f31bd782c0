// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package frontmatter

import (
	"reflect"
	"testing"
)

// --------------------------------------------------------------------------
// TestDecode — value typing, defaults, and degraded inputs
// --------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantHeader Header
		wantBody   string
	}{
		{
			name:       "typed values",
			content:    "---\ntitle: Plasma Coil\nprice: 49.99\norder_weight: 10\nin_stock: true\nimages: [\"a.jpg\", \"b.jpg\"]\n---\n\nA fine part.",
			wantHeader: Header{"title": "Plasma Coil", "price": 49.99, "order_weight": 10, "in_stock": true, "images": []string{"a.jpg", "b.jpg"}},
			wantBody:   "A fine part.",
		},
		{
			name:       "case-insensitive booleans",
			content:    "---\na: True\nb: FALSE\n---\nbody",
			wantHeader: Header{"a": true, "b": false},
			wantBody:   "body",
		},
		{
			name:       "no delimiter means body-only",
			content:    "just a plain description",
			wantHeader: Header{},
			wantBody:   "just a plain description",
		},
		{
			name:       "unterminated header means body-only",
			content:    "---\ntitle: Broken",
			wantHeader: Header{},
			wantBody:   "---\ntitle: Broken",
		},
		{
			name:       "lines without a colon are skipped",
			content:    "---\ntitle: Ok\nnot a field line\n---\nbody",
			wantHeader: Header{"title": "Ok"},
			wantBody:   "body",
		},
		{
			name:       "numeric-looking strings stay strings",
			content:    "---\nversion: 1.2.3\nphone: +123456\n---\nbody",
			wantHeader: Header{"version": "1.2.3", "phone": "+123456"},
			wantBody:   "body",
		},
		{
			name:       "empty value is empty string",
			content:    "---\nicon:\n---\nbody",
			wantHeader: Header{"icon": ""},
			wantBody:   "body",
		},
		{
			name:       "empty list",
			content:    "---\ntags: []\n---\nbody",
			wantHeader: Header{"tags": []string{}},
			wantBody:   "body",
		},
		{
			name:       "body containing a delimiter survives",
			content:    "---\ntitle: T\n---\nabove\n---\nbelow",
			wantHeader: Header{"title": "T"},
			wantBody:   "above\n---\nbelow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := Decode(tt.content)
			if !reflect.DeepEqual(header, tt.wantHeader) {
				t.Errorf("header = %#v, want %#v", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

// A malformed list value must not fail the caller: the whole record
// degrades to an empty header with the original text as body.
func TestDecodeMalformedListDegrades(t *testing.T) {
	content := "---\nimages: [unquoted, busted]\n---\nbody text"
	header, body := Decode(content)
	if len(header) != 0 {
		t.Errorf("expected empty header, got %#v", header)
	}
	if body != content {
		t.Errorf("expected original content as body, got %q", body)
	}
}

// --------------------------------------------------------------------------
// TestRoundTrip — decode(encode(h, b)) must reproduce (h, b)
// --------------------------------------------------------------------------

func TestRoundTrip(t *testing.T) {
	fields := []Field{
		{Key: "title", Value: "Zeta Figure"},
		{Key: "price", Value: 129.5},
		{Key: "final_price", Value: 130.0},
		{Key: "order_weight", Value: 10},
		{Key: "in_stock", Value: true},
		{Key: "is_pre_order", Value: false},
		{Key: "images", Value: []string{"front.jpg", "back.webp"}},
		{Key: "sku", Value: "ZF-001"},
	}
	body := "Limited reissue.\n\nShips in Q3."

	encoded := Encode(fields, body)
	header, gotBody := Decode(encoded)

	if gotBody != body {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
	for _, f := range fields {
		got, ok := header[f.Key]
		if !ok {
			t.Errorf("field %q missing after round trip", f.Key)
			continue
		}
		if !reflect.DeepEqual(got, f.Value) {
			t.Errorf("field %q = %#v (%T), want %#v (%T)", f.Key, got, got, f.Value, f.Value)
		}
	}
	if len(header) != len(fields) {
		t.Errorf("header has %d fields, want %d", len(header), len(fields))
	}
}

func TestEncodeLayout(t *testing.T) {
	got := Encode([]Field{{Key: "name", Value: "Mechs"}, {Key: "order_weight", Value: 5}}, "All mech kits.")
	want := "---\nname: Mechs\norder_weight: 5\n---\n\nAll mech kits."
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

// --------------------------------------------------------------------------
// TestHeaderAccessors — typed reads with defaults
// --------------------------------------------------------------------------

func TestHeaderAccessors(t *testing.T) {
	h := Header{
		"title":        "X",
		"price":        49.99,
		"order_weight": 10,
		"weight_float": 7.0,
		"in_stock":     false,
		"tags":         []string{"mecha"},
	}

	if got := h.Str("title", "fallback"); got != "X" {
		t.Errorf("Str = %q", got)
	}
	if got := h.Str("missing", "fallback"); got != "fallback" {
		t.Errorf("Str fallback = %q", got)
	}
	if got := h.Int("order_weight", 0); got != 10 {
		t.Errorf("Int = %d", got)
	}
	if got := h.Int("weight_float", 0); got != 7 {
		t.Errorf("Int from float = %d", got)
	}
	if got := h.Float("price", 0); got != 49.99 {
		t.Errorf("Float = %v", got)
	}
	if got := h.Float("order_weight", 0); got != 10 {
		t.Errorf("Float from int = %v", got)
	}
	if got := h.Bool("in_stock", true); got {
		t.Error("Bool should be false")
	}
	if got := h.Bool("missing", true); !got {
		t.Error("Bool fallback should be true")
	}
	if got := h.List("tags"); !reflect.DeepEqual(got, []string{"mecha"}) {
		t.Errorf("List = %#v", got)
	}
	if got := h.List("missing"); got != nil {
		t.Errorf("List missing = %#v", got)
	}
}
