package components

import (
	"strings"

	"samwise/internal/models"
	"samwise/ui/styles"
)

// RenderSettings draws the read-only settings pane. Keys are shown as
// set or unset, never in the clear.
func RenderSettings(info models.SettingsInfo) string {
	var b strings.Builder

	key := styles.SettingsKeyStyle()
	val := styles.SettingsValueStyle()

	row := func(name, value string) {
		b.WriteString(key.Render(name))
		b.WriteString(val.Render(value))
		b.WriteString("\n")
	}

	row("Model", info.SelectedModel)
	row("Hotkey", info.GlobalHotkey)
	row("Claude CLI", yesNo(info.UseClaudeCLI)+", found: "+yesNo(info.CLIFound))
	row("OpenAI key", setUnset(info.OpenAIKeySet))
	row("Anthropic key", setUnset(info.AnthropicKeySet))
	row("AtlasCloud key", setUnset(info.AtlasCloudKeySet))
	b.WriteString("\n")
	b.WriteString(styles.PromptItemStyle().Render("edit with: samwise config set   enter/esc: back"))
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func setUnset(v bool) string {
	if v {
		return "set"
	}
	return "not set"
}
