package core

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"samwise/internal/config"
	"samwise/internal/eventbus"
	"samwise/internal/llm"
)

type fakeDispatcher struct {
	mu    sync.Mutex
	plans []llm.Plan
	fn    func(ctx context.Context, req llm.Request, plan llm.Plan) (string, error)
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, req llm.Request, plan llm.Plan) (string, error) {
	f.mu.Lock()
	f.plans = append(f.plans, plan)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(ctx, req, plan)
	}
	return "transformed", nil
}

func (f *fakeDispatcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.plans)
}

type fakeRebinder struct {
	bindings []string
	err      error
}

func (f *fakeRebinder) Rebind(binding string) error {
	if f.err != nil {
		return f.err
	}
	f.bindings = append(f.bindings, binding)
	return nil
}

func newTestService(t *testing.T, cfg config.AppConfig, disp Dispatcher, reb ShortcutRebinder) (*Service, *eventbus.EventBus, *config.Store) {
	t.Helper()
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
	if err := store.Save(cfg); err != nil {
		t.Fatal(err)
	}
	bus := eventbus.NewEventBus()
	s := NewService(store, bus, disp, reb)
	s.cliProbe = func() bool { return false }
	t.Cleanup(s.Stop)
	return s, bus, store
}

func nextUIEvent(t *testing.T, bus *eventbus.EventBus) eventbus.CoreEvent {
	t.Helper()
	select {
	case ev := <-bus.CoreToUI():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no core event within 2s")
		return nil
	}
}

func TestTransformUnknownPrompt(t *testing.T) {
	disp := &fakeDispatcher{}
	s, _, _ := newTestService(t, config.Default(), disp, nil)

	_, err := s.Transform(context.Background(), "nonexistent", "text")
	if err == nil {
		t.Fatal("unknown prompt accepted")
	}
	if disp.callCount() != 0 {
		t.Error("dispatcher called for unknown prompt")
	}
}

func TestTransformResolvesSelectedModel(t *testing.T) {
	cfg := config.Default()
	cfg.SelectedModel = "gpt-4"
	cfg.LLM.OpenAIAPIKey = "sk-oai"
	disp := &fakeDispatcher{}
	s, _, _ := newTestService(t, cfg, disp, nil)

	out, err := s.Transform(context.Background(), "fix_grammar", "teh text")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out != "transformed" {
		t.Errorf("output = %q", out)
	}

	plan := disp.plans[0]
	if plan.Family != llm.FamilyOpenAI || plan.Transport != llm.TransportAPI || plan.Model != "gpt-4" {
		t.Errorf("plan = %+v", plan)
	}
}

func TestApplyPromptEmitsBusyThenResult(t *testing.T) {
	s, bus, _ := newTestService(t, config.Default(), &fakeDispatcher{}, nil)
	s.Start()

	if err := bus.SendToCore(eventbus.ApplyPromptEvent{PromptID: "summarize", Text: "long text"}); err != nil {
		t.Fatal(err)
	}

	busy, ok := nextUIEvent(t, bus).(eventbus.BusyEvent)
	if !ok {
		t.Fatal("first event is not BusyEvent")
	}
	result, ok := nextUIEvent(t, bus).(eventbus.ResultEvent)
	if !ok {
		t.Fatal("second event is not ResultEvent")
	}
	if result.Seq != busy.Seq {
		t.Errorf("result seq %d != busy seq %d", result.Seq, busy.Seq)
	}
	if result.Err != nil || result.Text != "transformed" {
		t.Errorf("result = %+v", result)
	}
}

func TestStaleResultIsDropped(t *testing.T) {
	slowRelease := make(chan struct{})
	disp := &fakeDispatcher{
		fn: func(ctx context.Context, req llm.Request, plan llm.Plan) (string, error) {
			if req.UserText == "x" {
				<-slowRelease
				return "slow result", nil
			}
			return "fast result", nil
		},
	}
	s, bus, _ := newTestService(t, config.Default(), disp, nil)
	s.Start()

	if err := bus.SendToCore(eventbus.ApplyPromptEvent{PromptID: "summarize", Text: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := nextUIEvent(t, bus).(eventbus.BusyEvent); !ok {
		t.Fatal("expected BusyEvent for slow request")
	}

	if err := bus.SendToCore(eventbus.ApplyPromptEvent{PromptID: "simplify", Text: "y"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := nextUIEvent(t, bus).(eventbus.BusyEvent); !ok {
		t.Fatal("expected BusyEvent for fast request")
	}

	result, ok := nextUIEvent(t, bus).(eventbus.ResultEvent)
	if !ok {
		t.Fatal("expected ResultEvent")
	}
	if result.Text != "fast result" {
		t.Fatalf("first delivered result = %q", result.Text)
	}

	// Let the slow request finish; its result must never surface.
	close(slowRelease)
	select {
	case ev := <-bus.CoreToUI():
		t.Errorf("stale event surfaced: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCancelActiveAbortsDispatch(t *testing.T) {
	disp := &fakeDispatcher{
		fn: func(ctx context.Context, req llm.Request, plan llm.Plan) (string, error) {
			<-ctx.Done()
			return "", &llm.Error{Kind: llm.KindCancelled}
		},
	}
	s, bus, _ := newTestService(t, config.Default(), disp, nil)
	s.Start()

	if err := bus.SendToCore(eventbus.ApplyPromptEvent{PromptID: "expand", Text: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := nextUIEvent(t, bus).(eventbus.BusyEvent); !ok {
		t.Fatal("expected BusyEvent")
	}

	if err := bus.SendToCore(eventbus.CancelEvent{}); err != nil {
		t.Fatal(err)
	}

	result, ok := nextUIEvent(t, bus).(eventbus.ResultEvent)
	if !ok {
		t.Fatal("expected ResultEvent after cancel")
	}
	if llm.KindOf(result.Err) != llm.KindCancelled {
		t.Errorf("result error = %v, want cancelled", result.Err)
	}
}

func TestSelectModelPersists(t *testing.T) {
	s, bus, store := newTestService(t, config.Default(), &fakeDispatcher{}, nil)
	s.Start()

	if err := bus.SendToCore(eventbus.SelectModelEvent{ModelID: "gpt-4"}); err != nil {
		t.Fatal(err)
	}

	changed, ok := nextUIEvent(t, bus).(eventbus.ModelChangedEvent)
	if !ok || changed.ModelID != "gpt-4" {
		t.Fatalf("event = %+v (ok=%v)", changed, ok)
	}
	if got := store.Load().SelectedModel; got != "gpt-4" {
		t.Errorf("persisted model = %q", got)
	}
}

func TestUpdateGlobalShortcut(t *testing.T) {
	reb := &fakeRebinder{}
	s, bus, store := newTestService(t, config.Default(), &fakeDispatcher{}, reb)

	s.UpdateGlobalShortcut("ctrl+shift+j")

	ev, ok := nextUIEvent(t, bus).(eventbus.HotkeyUpdatedEvent)
	if !ok || ev.Err != nil || ev.Binding != "ctrl+shift+j" {
		t.Fatalf("event = %+v (ok=%v)", ev, ok)
	}
	if len(reb.bindings) != 1 || reb.bindings[0] != "ctrl+shift+j" {
		t.Errorf("rebinder calls = %v", reb.bindings)
	}
	if got := store.Load().GlobalHotkey; got != "ctrl+shift+j" {
		t.Errorf("persisted hotkey = %q", got)
	}
}

func TestUpdateGlobalShortcutFailureKeepsConfig(t *testing.T) {
	reb := &fakeRebinder{err: errors.New("binding already taken")}
	s, bus, store := newTestService(t, config.Default(), &fakeDispatcher{}, reb)

	s.UpdateGlobalShortcut("ctrl+shift+j")

	ev, ok := nextUIEvent(t, bus).(eventbus.HotkeyUpdatedEvent)
	if !ok || ev.Err == nil {
		t.Fatalf("event = %+v (ok=%v)", ev, ok)
	}
	if got := store.Load().GlobalHotkey; got != config.Default().GlobalHotkey {
		t.Errorf("config changed after failed rebind: %q", got)
	}
}

func TestSaveConfigRevertsHotkeyOnRebindFailure(t *testing.T) {
	reb := &fakeRebinder{err: errors.New("binding already taken")}
	s, bus, store := newTestService(t, config.Default(), &fakeDispatcher{}, reb)

	next := config.Default()
	next.GlobalHotkey = "ctrl+shift+j"
	next.LLM.OpenAIAPIKey = "sk-oai"
	if err := s.SaveConfig(next); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	if ev, ok := nextUIEvent(t, bus).(eventbus.HotkeyUpdatedEvent); !ok || ev.Err == nil {
		t.Fatalf("event = %+v (ok=%v)", ev, ok)
	}

	saved := store.Load()
	if saved.GlobalHotkey != config.Default().GlobalHotkey {
		t.Errorf("hotkey saved despite failed rebind: %q", saved.GlobalHotkey)
	}
	if saved.LLM.OpenAIAPIKey != "sk-oai" {
		t.Error("rest of config not saved")
	}
}
