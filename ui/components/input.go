package components

import (
	"samwise/ui/styles"
)

func RenderInput(input string, width int) string {
	if input == "" {
		input = "(clipboard empty, type the text to transform)"
	}
	return styles.InputStyle(width).Render(input)
}
