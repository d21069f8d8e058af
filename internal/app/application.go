package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"samwise/internal/config"
	"samwise/internal/core"
	"samwise/internal/dispatcher"
	"samwise/internal/eventbus"
	"samwise/internal/hotkey"
	"samwise/internal/llm"
	"samwise/internal/models"
	"samwise/internal/prompts"
	"samwise/internal/tray"
	"samwise/internal/update"
)

// Application wires the config store, event bus, core service, hotkey
// controller, tray, and window together and manages their lifecycle.
type Application struct {
	store      *config.Store
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.Service
	controller *hotkey.Controller
	model      *AppModel
	program    *tea.Program
}

// AppModel adapts the window state to the Bubble Tea model interface.
type AppModel struct {
	ui         models.AppModel
	dispatcher *dispatcher.EventDispatcher
	surface    *update.Surface
}

func NewApplication() (*Application, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	cfg := store.Load()

	eb := eventbus.NewEventBus()
	clip := hotkey.NewSystemClipboard()
	controller := hotkey.NewController(hotkey.NewSystemRegistrar(), clip.Read, eb)
	service := core.NewService(store, eb, llm.NewDispatcher(), controller)
	disp := dispatcher.NewEventDispatcher(eb)

	model := &AppModel{
		ui:         initialUIState(cfg),
		dispatcher: disp,
		surface: &update.Surface{
			SendToCore: eb.SendToCore,
			Hide:       controller.Hide,
			CopyText:   clip.Write,
		},
	}

	return &Application{
		store:      store,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		controller: controller,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	cfg := app.store.Load()
	if err := app.controller.Start(cfg.GlobalHotkey); err != nil {
		// No global shortcut; the window starts visible so the app
		// stays usable.
		log.Printf("global hotkey unavailable: %v", err)
		app.model.ui.Visible = true
		app.model.ui.Status = "Hotkey unavailable"
	}

	app.program = tea.NewProgram(app.model, tea.WithAltScreen())

	go tray.Run(tray.Menu{
		Models:   llm.KnownModels,
		Selected: cfg.SelectedModel,
		OnShow:   app.controller.Show,
		OnSettings: func() {
			if err := app.eventBus.SendToUI(eventbus.OpenSettingsEvent{}); err != nil {
				log.Printf("open settings: %v", err)
			}
		},
		OnModel: func(modelID string) {
			if err := app.eventBus.SendToCore(eventbus.SelectModelEvent{ModelID: modelID}); err != nil {
				log.Printf("select model: %v", err)
			}
		},
		OnQuit: func() {
			if app.program != nil {
				app.program.Quit()
			}
		},
	})

	_, err := app.program.Run()
	return err
}

func (app *Application) Stop() {
	app.controller.Shutdown()
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	tray.Quit()
}

func initialUIState(cfg config.AppConfig) models.AppModel {
	return models.AppModel{
		Prompts: prompts.All(),
		Status:  "Ready",
		Width:   80,
		Settings: models.SettingsInfo{
			SelectedModel:    cfg.SelectedModel,
			GlobalHotkey:     cfg.GlobalHotkey,
			UseClaudeCLI:     cfg.LLM.UseClaudeCLI,
			CLIFound:         llm.CLIAvailable(),
			OpenAIKeySet:     cfg.LLM.OpenAIAPIKey != "",
			AnthropicKeySet:  cfg.LLM.AnthropicAPIKey != "",
			AtlasCloudKeySet: cfg.LLM.AtlasCloudAPIKey != "",
		},
	}
}
