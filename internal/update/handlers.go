package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"samwise/internal/eventbus"
	"samwise/internal/llm"
	"samwise/internal/models"
)

// HandleKeyMsg handles keyboard input for the visible window.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, surface *Surface) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit

	case "esc":
		handleEscape(appModel, surface)
		return nil

	case "up", "ctrl+p":
		if appModel.Mode == models.ModePrompts && appModel.Cursor > 0 {
			appModel.Cursor--
		}
		return nil

	case "down", "ctrl+n":
		if appModel.Mode == models.ModePrompts && appModel.Cursor < len(appModel.Prompts)-1 {
			appModel.Cursor++
		}
		return nil

	case "tab":
		cycleModel(appModel, surface)
		return nil

	case "ctrl+s":
		appModel.Mode = models.ModeSettings
		return nil

	case "enter":
		handleEnter(appModel, surface)
		return nil

	case "backspace":
		if appModel.Mode == models.ModePrompts && len(appModel.Input) > 0 {
			appModel.Input = appModel.Input[:len(appModel.Input)-1]
		}
		return nil

	default:
		if appModel.Mode == models.ModePrompts && len(keyMsg.Runes) > 0 {
			appModel.Input += string(keyMsg.Runes)
		}
	}
	return nil
}

// handleEscape is the close gesture: cancel first if work is in flight,
// step back from a sub-pane otherwise, and hide from the prompt list.
// Escape never quits the process.
func handleEscape(appModel *models.AppModel, surface *Surface) {
	if appModel.Loading {
		if surface != nil && surface.SendToCore != nil {
			if err := surface.SendToCore(eventbus.CancelEvent{}); err != nil {
				appModel.Status = "Cancel failed: " + err.Error()
				return
			}
		}
		appModel.Loading = false
		appModel.Status = "Cancelled"
		return
	}

	if appModel.Mode != models.ModePrompts {
		appModel.Mode = models.ModePrompts
		appModel.Status = "Ready"
		return
	}

	if surface != nil && surface.Hide != nil {
		surface.Hide()
		return
	}
	appModel.Visible = false
}

func handleEnter(appModel *models.AppModel, surface *Surface) {
	switch appModel.Mode {
	case models.ModePrompts:
		if strings.TrimSpace(appModel.Input) == "" || len(appModel.Prompts) == 0 {
			appModel.Status = "Nothing to transform"
			return
		}
		if appModel.Loading {
			return
		}
		prompt := appModel.Prompts[appModel.Cursor]
		if surface == nil || surface.SendToCore == nil {
			appModel.Status = "Core not connected"
			return
		}
		if err := surface.SendToCore(eventbus.ApplyPromptEvent{PromptID: prompt.ID, Text: appModel.Input}); err != nil {
			appModel.Status = "Error: " + err.Error()
			return
		}
		appModel.Mode = models.ModeResult
		appModel.Result = ""
		appModel.Status = "Working"

	case models.ModeResult:
		if appModel.Result != "" && surface != nil && surface.CopyText != nil {
			surface.CopyText(appModel.Result)
			appModel.Status = "Copied to clipboard"
		}

	case models.ModeSettings:
		appModel.Mode = models.ModePrompts
	}
}

// cycleModel steps through the curated model menu.
func cycleModel(appModel *models.AppModel, surface *Surface) {
	menu := llm.KnownModels
	if len(menu) == 0 {
		return
	}
	next := menu[0]
	for i, id := range menu {
		if id == appModel.Settings.SelectedModel {
			next = menu[(i+1)%len(menu)]
			break
		}
	}
	if surface != nil && surface.SendToCore != nil {
		if err := surface.SendToCore(eventbus.SelectModelEvent{ModelID: next}); err != nil {
			appModel.Status = "Error: " + err.Error()
		}
	}
}

// CoreEventMsg wraps core events for Bubble Tea.
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent applies a core event to the window state.
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.ActivationEvent:
		appModel.Visible = true
		appModel.Mode = models.ModePrompts
		if event.Clipboard != "" {
			appModel.Input = event.Clipboard
		}
		if !appModel.Loading {
			appModel.Status = "Ready"
		}

	case eventbus.DeactivationEvent:
		appModel.Visible = false

	case eventbus.BusyEvent:
		appModel.Loading = true
		appModel.BusySeq = event.Seq
		appModel.Status = "Working"

	case eventbus.ResultEvent:
		if event.Seq < appModel.BusySeq {
			return nil
		}
		appModel.Loading = false
		if event.Err != nil {
			appModel.Status = statusForError(event.Err)
			return nil
		}
		appModel.Result = event.Text
		appModel.Mode = models.ModeResult
		appModel.Status = "Done"

	case eventbus.ModelChangedEvent:
		appModel.Settings.SelectedModel = event.ModelID
		appModel.Status = "Model: " + event.ModelID

	case eventbus.HotkeyUpdatedEvent:
		if event.Err != nil {
			appModel.Status = "Hotkey unchanged: " + event.Err.Error()
			return nil
		}
		appModel.Settings.GlobalHotkey = event.Binding
		appModel.Status = "Hotkey: " + event.Binding

	case eventbus.OpenSettingsEvent:
		appModel.Visible = true
		appModel.Mode = models.ModeSettings
	}

	return nil
}

// statusForError folds the error taxonomy into one status line.
func statusForError(err error) string {
	switch llm.KindOf(err) {
	case llm.KindCancelled:
		return "Cancelled"
	case llm.KindTimeout:
		return "Timed out"
	case llm.KindNotConfigured:
		return "Not configured: " + err.Error()
	case llm.KindUnsupportedModel:
		return "Unsupported model: " + err.Error()
	case llm.KindCLINotFound:
		return "Claude CLI not found"
	default:
		return "Error: " + err.Error()
	}
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
