package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownKeepsProse(t *testing.T) {
	in := "Just a plain corrected sentence."
	if out := RenderMarkdown(in); out != in {
		t.Errorf("plain prose altered: %q", out)
	}
}

func TestRenderMarkdownStripsMarkers(t *testing.T) {
	out := RenderMarkdown("# Heading\n- item one\n1. numbered\n**bold** and _soft_ and `code`")

	for _, marker := range []string{"# ", "- ", "**", "_", "`"} {
		if strings.Contains(out, marker) {
			t.Errorf("marker %q survived rendering: %q", marker, out)
		}
	}
	for _, text := range []string{"Heading", "item one", "numbered", "bold", "soft", "code"} {
		if !strings.Contains(out, text) {
			t.Errorf("content %q lost in rendering: %q", text, out)
		}
	}
}

func TestRenderMarkdownFences(t *testing.T) {
	out := RenderMarkdown("before\n```\ncode line\n```\nafter")
	if strings.Contains(out, "```") {
		t.Errorf("fence survived: %q", out)
	}
	if !strings.Contains(out, "code line") {
		t.Errorf("fenced content lost: %q", out)
	}
}
