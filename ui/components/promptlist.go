package components

import (
	"strings"

	"samwise/internal/prompts"
	"samwise/ui/styles"
)

// RenderPromptList draws the transformation catalog with the cursor row
// highlighted.
func RenderPromptList(catalog []prompts.Prompt, cursor int) string {
	var b strings.Builder

	item := styles.PromptItemStyle()
	selected := styles.SelectedPromptStyle()

	for i, p := range catalog {
		line := p.Icon + " " + p.Name + " - " + p.Description
		if i == cursor {
			b.WriteString(selected.Render(line))
		} else {
			b.WriteString(item.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
