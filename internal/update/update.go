package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"samwise/internal/eventbus"
	"samwise/internal/models"
)

// Surface bundles the window's outward connections: the bus toward core
// plus the OS-level callbacks the key handlers need. Any field may be
// nil; handlers degrade to local-only state changes.
type Surface struct {
	SendToCore func(event eventbus.UIEvent) error
	Hide       func()
	CopyText   func(text string)
}

func HandleUpdate(appModel *models.AppModel, msg tea.Msg, surface *Surface) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, surface)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}
