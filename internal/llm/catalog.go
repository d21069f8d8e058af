package llm

// KnownModels is the model menu offered by the window and the tray.
// Any other id can still be configured by hand; these are the curated
// choices.
var KnownModels = []string{
	"gpt-4",
	"gpt-3.5-turbo",
	"claude-3-5-sonnet",
	"claude-3-opus",
	"claude-3-haiku",
}
