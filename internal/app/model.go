package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"samwise/internal/models"
	"samwise/internal/update"
	"samwise/ui/components"
	"samwise/ui/styles"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Core events re-arm the listener so the channel keeps draining.
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.ui, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdate(&m.ui, msg, m.surface)
	return m, cmd
}

func (m *AppModel) View() string {
	if !m.ui.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle().Render("Samwise"))
	b.WriteString("\n")

	switch m.ui.Mode {
	case models.ModeSettings:
		b.WriteString(components.RenderSettings(m.ui.Settings))
	case models.ModeResult:
		b.WriteString(components.RenderResult(m.ui.Result, m.ui.Loading))
	default:
		b.WriteString(components.RenderInput(m.ui.Input, m.ui.Width))
		b.WriteString("\n")
		b.WriteString(components.RenderPromptList(m.ui.Prompts, m.ui.Cursor))
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.ui.Status, m.ui.Settings.SelectedModel, m.ui.Loading, m.ui.LoadingDots, m.ui.Width))
	return b.String()
}
