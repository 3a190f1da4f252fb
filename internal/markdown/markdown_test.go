// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"emphasis", "A **rich** and *silky* sauce.", "<strong>rich</strong>"},
		{"headings", "## Ingredients", "<h2"},
		{"lists", "- flour\n- eggs", "<li>flour</li>"},
		{"strikethrough", "~~canned~~ fresh tomatoes", "<del>canned</del>"},
		{"hard wraps keep one step per line", "Chop the onions.\nSweat them gently.", "<br"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q): %v", tt.source, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestToHTMLSuppressesRawHTML(t *testing.T) {
	got, err := ToHTML(`Click <script>alert("hi")</script> here.`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML survived rendering: %q", got)
	}
}

func TestToHTMLTables(t *testing.T) {
	source := "| Amount | Item |\n| --- | --- |\n| 2 cups | flour |"
	got, err := ToHTML(source)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>flour</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}
