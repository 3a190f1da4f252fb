// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts recipe descriptions and instructions from
// Markdown into HTML for detail responses.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables and task lists show up in imported recipes
		extension.Typographer, // smart quotes and fraction-friendly dashes
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(), // authors write instructions one step per line
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML in the source is
// escaped: recipe bodies come from untrusted authors.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
