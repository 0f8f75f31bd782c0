// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package frontmatter implements the structured-header codec used by every
// content file in the catalog. A record is a `---` delimiter line, a block of
// `key: value` lines, a second delimiter line, and a free-form markdown body.
//
// Decoding is fail-soft: content that does not parse degrades to an empty
// header with the full text as body. One malformed file must never take a
// whole catalog listing down.
package frontmatter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Delimiter is the line that opens and closes the header block.
const Delimiter = "---"

// Header holds the decoded key/value preamble of a content file.
// Values are string, bool, int, float64, or []string.
type Header map[string]any

// Field is one ordered header entry for encoding. Field order is not
// significant on read, but writes keep a conventional order so that
// content files diff cleanly.
type Field struct {
	Key   string
	Value any
}

// Decode splits content into its header and body. Content that does not
// begin with the delimiter, or whose header block is malformed, is returned
// unchanged as body with an empty header.
func Decode(content string) (Header, string) {
	header, body, err := decode(content)
	if err != nil {
		slog.Warn("malformed record header, degrading to body-only", "error", err)
		return Header{}, content
	}
	return header, body
}

func decode(content string) (Header, string, error) {
	if !strings.HasPrefix(content, Delimiter) {
		return Header{}, content, nil
	}

	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return Header{}, content, nil
	}

	header := Header{}
	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		key, raw, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value, err := parseValue(strings.TrimSpace(raw))
		if err != nil {
			return nil, "", fmt.Errorf("field %q: %w", strings.TrimSpace(key), err)
		}
		header[strings.TrimSpace(key)] = value
	}

	return header, strings.TrimSpace(parts[2]), nil
}

// parseValue applies the value rules in order: JSON-style list, boolean,
// number, then plain string.
func parseValue(raw string) (any, error) {
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("parse list: %w", err)
		}
		return list, nil
	}

	if strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false") {
		return strings.EqualFold(raw, "true"), nil
	}

	if isNumeric(raw) {
		if strings.Contains(raw, ".") {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parse float: %w", err)
			}
			return f, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse int: %w", err)
		}
		return n, nil
	}

	return raw, nil
}

// isNumeric reports whether s consists only of digits and at most one
// decimal point, with at least one digit.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dots, digits := 0, 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Encode renders an ordered header and a body back into file content.
// It is the inverse of Decode for every value shape the codec supports.
func Encode(fields []Field, body string) string {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(formatValue(f.Value))
		b.WriteByte('\n')
	}
	b.WriteString(Delimiter)
	b.WriteString("\n\n")
	b.WriteString(body)
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		out, err := json.Marshal(val)
		if err != nil {
			// A string slice always marshals; kept for the type switch's sake.
			return "[]"
		}
		return string(out)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			// Keep whole floats float-typed across a round trip.
			s += ".0"
		}
		return s
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Str returns the string value for key, or fallback when absent or not a string.
func (h Header) Str(key, fallback string) string {
	if v, ok := h[key].(string); ok {
		return v
	}
	return fallback
}

// Text returns the value for key rendered as a string regardless of its
// decoded type. Useful for fields like external IDs that look numeric in
// content files but are identifiers, not quantities.
func (h Header) Text(key, fallback string) string {
	v, ok := h[key]
	if !ok {
		return fallback
	}
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return fallback
	default:
		return formatValue(val)
	}
}

// Bool returns the boolean value for key, or fallback when absent.
func (h Header) Bool(key string, fallback bool) bool {
	if v, ok := h[key].(bool); ok {
		return v
	}
	return fallback
}

// Int returns the integer value for key, accepting float-typed values from
// hand-edited files. Returns fallback when absent or non-numeric.
func (h Header) Int(key string, fallback int) int {
	switch v := h[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

// Float returns the numeric value for key as a float64, or fallback.
func (h Header) Float(key string, fallback float64) float64 {
	switch v := h[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

// List returns the string-list value for key, or nil when absent.
func (h Header) List(key string) []string {
	if v, ok := h[key].([]string); ok {
		return v
	}
	return nil
}
