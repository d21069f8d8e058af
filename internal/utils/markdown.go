package utils

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Model output is mostly prose but frequently carries light markdown.
// This renderer styles it for the result pane without altering the
// underlying text; copy-to-clipboard always uses the raw result.

func codeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Padding(0, 1)
}

func headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func listStyle() lipgloss.Style {
	return lipgloss.NewStyle().MarginLeft(2)
}

var (
	orderedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	inlineCodeRe  = regexp.MustCompile("`[^`]+`")
	boldRe        = regexp.MustCompile(`\*\*[^*]+\*\*`)
	italicRe      = regexp.MustCompile(`_[^_]+_`)
)

// RenderMarkdown styles headings, lists, code, bold, and italic line by
// line. Unrecognized lines pass through untouched, so plain prose stays
// exactly as the model wrote it.
func RenderMarkdown(text string) string {
	var b strings.Builder
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			inFence = !inFence

		case inFence:
			b.WriteString(codeStyle().Render(line) + "\n")

		case strings.HasPrefix(line, "#"):
			b.WriteString(headingStyle().Render(strings.TrimLeft(line, "# ")) + "\n")

		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			b.WriteString(listStyle().Render("• "+renderInline(line[2:])) + "\n")

		case orderedItemRe.MatchString(line):
			m := orderedItemRe.FindStringSubmatch(line)
			b.WriteString(listStyle().Render(m[1]+". "+renderInline(m[2])) + "\n")

		default:
			b.WriteString(renderInline(line) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderInline(line string) string {
	line = inlineCodeRe.ReplaceAllStringFunc(line, func(match string) string {
		return codeStyle().Render(strings.Trim(match, "`"))
	})
	line = boldRe.ReplaceAllStringFunc(line, func(match string) string {
		return lipgloss.NewStyle().Bold(true).Render(strings.Trim(match, "*"))
	})
	line = italicRe.ReplaceAllStringFunc(line, func(match string) string {
		return lipgloss.NewStyle().Italic(true).Render(strings.Trim(match, "_"))
	})
	return line
}
