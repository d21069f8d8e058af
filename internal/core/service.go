package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"samwise/internal/config"
	"samwise/internal/eventbus"
	"samwise/internal/llm"
	"samwise/internal/prompts"
)

// Dispatcher is the slice of llm.Dispatcher the service depends on.
type Dispatcher interface {
	Dispatch(ctx context.Context, req llm.Request, plan llm.Plan) (string, error)
}

// ShortcutRebinder switches the registered global shortcut. Nil when the
// process runs without a display.
type ShortcutRebinder interface {
	Rebind(binding string) error
}

// Service is the application core: it owns the loaded configuration,
// resolves and dispatches transformation requests, and reacts to UI
// events from the bus. The UI never calls providers directly.
type Service struct {
	store      *config.Store
	bus        *eventbus.EventBus
	dispatcher Dispatcher
	shortcuts  ShortcutRebinder
	cliProbe   func() bool

	mu  sync.Mutex
	cfg config.AppConfig

	state  *State
	ctx    context.Context
	cancel context.CancelFunc
}

func NewService(store *config.Store, bus *eventbus.EventBus, disp Dispatcher, shortcuts ShortcutRebinder) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store:      store,
		bus:        bus,
		dispatcher: disp,
		shortcuts:  shortcuts,
		cliProbe:   llm.CLIAvailable,
		cfg:        store.Load(),
		state:      NewState(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start runs the core event loop in a goroutine.
func (s *Service) Start() {
	go s.eventLoop()
}

// Stop aborts all in-flight work and ends the event loop.
func (s *Service) Stop() {
	s.state.CancelAll()
	s.cancel()
}

func (s *Service) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.bus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *Service) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.ApplyPromptEvent:
		s.applyPrompt(e.PromptID, e.Text)
	case eventbus.CancelEvent:
		s.CancelActive()
	case eventbus.SelectModelEvent:
		s.SelectModel(e.ModelID)
	case eventbus.UpdateHotkeyEvent:
		s.UpdateGlobalShortcut(e.Binding)
	case eventbus.SaveConfigEvent:
		if err := s.SaveConfig(e.Config); err != nil {
			log.Printf("save config: %v", err)
		}
	}
}

// GetPrompts returns the transformation catalog.
func (s *Service) GetPrompts() []prompts.Prompt {
	return prompts.All()
}

// Config returns a copy of the current configuration.
func (s *Service) Config() config.AppConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// CheckClaudeCLI probes PATH for the claude binary. Fresh lookup every
// call so a newly installed CLI shows up without a restart.
func (s *Service) CheckClaudeCLI() bool {
	return llm.LookupCLI()
}

// Transform runs one transformation synchronously under the caller's
// context. Resolution happens per call against the current configuration.
func (s *Service) Transform(ctx context.Context, promptID, text string) (string, error) {
	p, ok := prompts.Find(promptID)
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", promptID)
	}

	cfg := s.Config()
	plan := llm.Resolve(cfg.SelectedModel, cfg.LLM, s.cliProbe())
	req := llm.Request{
		Model:        cfg.SelectedModel,
		SystemPrompt: p.SystemPrompt,
		UserText:     text,
	}
	return s.dispatcher.Dispatch(ctx, req, plan)
}

// applyPrompt starts an asynchronous transformation. The UI gets a
// BusyEvent immediately and a ResultEvent when done, unless a newer
// request has already delivered.
func (s *Service) applyPrompt(promptID, text string) {
	ctx, cancel := context.WithCancel(s.ctx)
	seq := s.state.Begin(cancel)
	s.send(eventbus.BusyEvent{Seq: seq})

	go func() {
		defer s.state.Finish(seq)
		defer cancel()

		out, err := s.Transform(ctx, promptID, text)
		if !s.state.Deliver(seq) {
			return
		}
		s.send(eventbus.ResultEvent{Seq: seq, Text: out, Err: err})
	}()
}

// CancelActive aborts every in-flight transformation. Subprocesses are
// killed and HTTP requests aborted through their contexts.
func (s *Service) CancelActive() {
	s.state.CancelAll()
}

// SelectModel switches the active model and persists the choice.
func (s *Service) SelectModel(modelID string) {
	s.mu.Lock()
	s.cfg.SelectedModel = modelID
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.store.Save(cfg); err != nil {
		log.Printf("persist model selection: %v", err)
	}
	s.send(eventbus.ModelChangedEvent{ModelID: modelID})
}

// UpdateGlobalShortcut rebinds the global hotkey and persists the new
// binding. The new binding is registered before the old one is released;
// on failure the old shortcut stays active and the config is untouched.
func (s *Service) UpdateGlobalShortcut(binding string) {
	if s.shortcuts != nil {
		if err := s.shortcuts.Rebind(binding); err != nil {
			s.send(eventbus.HotkeyUpdatedEvent{Binding: binding, Err: err})
			return
		}
	}

	s.mu.Lock()
	s.cfg.GlobalHotkey = binding
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.store.Save(cfg); err != nil {
		log.Printf("persist hotkey: %v", err)
	}
	s.send(eventbus.HotkeyUpdatedEvent{Binding: binding})
}

// SaveConfig replaces the full configuration. A hotkey change goes
// through the same register-then-release path as UpdateGlobalShortcut;
// if registration fails the saved config keeps the old binding.
func (s *Service) SaveConfig(cfg config.AppConfig) error {
	cur := s.Config()

	if cfg.GlobalHotkey != cur.GlobalHotkey && s.shortcuts != nil {
		if err := s.shortcuts.Rebind(cfg.GlobalHotkey); err != nil {
			s.send(eventbus.HotkeyUpdatedEvent{Binding: cfg.GlobalHotkey, Err: err})
			cfg.GlobalHotkey = cur.GlobalHotkey
		} else {
			s.send(eventbus.HotkeyUpdatedEvent{Binding: cfg.GlobalHotkey})
		}
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	if err := s.store.Save(cfg); err != nil {
		return err
	}
	if cfg.SelectedModel != cur.SelectedModel {
		s.send(eventbus.ModelChangedEvent{ModelID: cfg.SelectedModel})
	}
	return nil
}

func (s *Service) send(ev eventbus.CoreEvent) {
	if err := s.bus.SendToUI(ev); err != nil {
		log.Printf("drop %T: %v", ev, err)
	}
}
