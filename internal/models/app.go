package models

import "samwise/internal/prompts"

// Mode selects which pane the window shows.
type Mode int

const (
	ModePrompts Mode = iota
	ModeResult
	ModeSettings
)

// SettingsInfo is the read-only summary shown in the settings pane.
// Secrets never appear here, only whether they are set.
type SettingsInfo struct {
	SelectedModel    string
	GlobalHotkey     string
	UseClaudeCLI     bool
	CLIFound         bool
	OpenAIKeySet     bool
	AnthropicKeySet  bool
	AtlasCloudKeySet bool
}

// AppModel is the window's local UI state. Provider access, persistence,
// and the hotkey all live elsewhere; this struct only holds what the
// view renders.
type AppModel struct {
	Visible bool
	Mode    Mode

	Prompts []prompts.Prompt
	Cursor  int

	Input  string // text to transform, prefilled from the clipboard
	Result string

	Status      string
	Loading     bool
	LoadingDots int
	BusySeq     uint64

	Settings SettingsInfo

	Width  int
	Height int
}
