package components

import (
	"samwise/internal/utils"
	"samwise/ui/styles"
)

// RenderResult draws the transformed text pane. Display goes through the
// markdown renderer; copying uses the raw text.
func RenderResult(text string, loading bool) string {
	if loading {
		return styles.ResultStyle().Render("Transforming")
	}
	if text == "" {
		return styles.ResultStyle().Render("(no result)")
	}
	return styles.ResultStyle().Render(utils.RenderMarkdown(text)) + "\n\n" + styles.PromptItemStyle().Render("enter: copy   esc: back")
}
