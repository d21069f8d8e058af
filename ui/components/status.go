package components

import (
	"strings"

	"samwise/ui/styles"
)

func RenderStatus(status, model string, loading bool, loadingDots int, width int) string {
	content := status
	if loading {
		content += strings.Repeat(".", loadingDots)
	}
	if model != "" {
		content += "  [" + model + "]"
	}
	return styles.StatusStyle(width).Render(content)
}
