package hotkey

import (
	"errors"
	"testing"
	"time"

	"samwise/internal/eventbus"
)

type fakeRegistration struct {
	keydown      chan struct{}
	unregistered bool
}

func (r *fakeRegistration) Keydown() <-chan struct{} { return r.keydown }
func (r *fakeRegistration) Unregister()              { r.unregistered = true }

func (r *fakeRegistration) press() {
	r.keydown <- struct{}{}
}

type fakeRegistrar struct {
	fail map[string]bool
	regs map[string]*fakeRegistration
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{fail: make(map[string]bool), regs: make(map[string]*fakeRegistration)}
}

func (r *fakeRegistrar) Register(binding string) (Registration, error) {
	if r.fail[binding] {
		return nil, errors.New("binding already taken")
	}
	reg := &fakeRegistration{keydown: make(chan struct{})}
	r.regs[binding] = reg
	return reg, nil
}

func staticClipboard(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func waitForEvent(t *testing.T, bus *eventbus.EventBus) eventbus.CoreEvent {
	t.Helper()
	select {
	case ev := <-bus.CoreToUI():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no core event within 2s")
		return nil
	}
}

func assertNoEvent(t *testing.T, bus *eventbus.EventBus) {
	t.Helper()
	select {
	case ev := <-bus.CoreToUI():
		t.Fatalf("unexpected event %T", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestToggleSnapshotsClipboard(t *testing.T) {
	registrar := newFakeRegistrar()
	bus := eventbus.NewEventBus()
	c := NewController(registrar, staticClipboard("copied text"), bus)

	if err := c.Start("ctrl+shift+space"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	registrar.regs["ctrl+shift+space"].press()
	ev := waitForEvent(t, bus)
	act, ok := ev.(eventbus.ActivationEvent)
	if !ok {
		t.Fatalf("first press sent %T, want ActivationEvent", ev)
	}
	if act.Clipboard != "copied text" {
		t.Errorf("clipboard snapshot = %q", act.Clipboard)
	}
	if !c.Visible() {
		t.Error("controller not visible after activation")
	}

	registrar.regs["ctrl+shift+space"].press()
	if _, ok := waitForEvent(t, bus).(eventbus.DeactivationEvent); !ok {
		t.Fatal("second press should deactivate")
	}
	if c.Visible() {
		t.Error("controller still visible after deactivation")
	}
}

func TestClipboardFailureActivatesEmpty(t *testing.T) {
	registrar := newFakeRegistrar()
	bus := eventbus.NewEventBus()
	c := NewController(registrar, func() (string, error) { return "", errors.New("no clipboard") }, bus)

	if err := c.Start("ctrl+shift+space"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	registrar.regs["ctrl+shift+space"].press()

	act, ok := waitForEvent(t, bus).(eventbus.ActivationEvent)
	if !ok || act.Clipboard != "" {
		t.Errorf("want empty activation, got %+v (ok=%v)", act, ok)
	}
}

func TestShowHideIdempotent(t *testing.T) {
	registrar := newFakeRegistrar()
	bus := eventbus.NewEventBus()
	c := NewController(registrar, staticClipboard(""), bus)

	c.Hide()
	assertNoEvent(t, bus)

	c.Show()
	if _, ok := waitForEvent(t, bus).(eventbus.ActivationEvent); !ok {
		t.Fatal("Show should activate")
	}
	c.Show()
	assertNoEvent(t, bus)

	c.Hide()
	if _, ok := waitForEvent(t, bus).(eventbus.DeactivationEvent); !ok {
		t.Fatal("Hide should deactivate")
	}
	c.Hide()
	assertNoEvent(t, bus)
}

func TestRebindSwapsRegistration(t *testing.T) {
	registrar := newFakeRegistrar()
	bus := eventbus.NewEventBus()
	c := NewController(registrar, staticClipboard(""), bus)

	if err := c.Start("ctrl+shift+space"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	old := registrar.regs["ctrl+shift+space"]

	if err := c.Rebind("ctrl+shift+j"); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if !old.unregistered {
		t.Error("old binding not released")
	}
	if c.Binding() != "ctrl+shift+j" {
		t.Errorf("binding = %q", c.Binding())
	}

	registrar.regs["ctrl+shift+j"].press()
	if _, ok := waitForEvent(t, bus).(eventbus.ActivationEvent); !ok {
		t.Fatal("new binding does not trigger")
	}
}

func TestRebindFailureKeepsOldBinding(t *testing.T) {
	registrar := newFakeRegistrar()
	registrar.fail["ctrl+shift+j"] = true
	bus := eventbus.NewEventBus()
	c := NewController(registrar, staticClipboard(""), bus)

	if err := c.Start("ctrl+shift+space"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	old := registrar.regs["ctrl+shift+space"]

	err := c.Rebind("ctrl+shift+j")
	var rebindErr *RebindError
	if !errors.As(err, &rebindErr) {
		t.Fatalf("error = %v, want *RebindError", err)
	}
	if rebindErr.Binding != "ctrl+shift+j" {
		t.Errorf("failed binding = %q", rebindErr.Binding)
	}
	if old.unregistered {
		t.Error("old binding released on failed rebind")
	}
	if c.Binding() != "ctrl+shift+space" {
		t.Errorf("binding = %q, want the old one", c.Binding())
	}

	old.press()
	if _, ok := waitForEvent(t, bus).(eventbus.ActivationEvent); !ok {
		t.Fatal("old binding stopped working after failed rebind")
	}
}

func TestShutdownReleasesBinding(t *testing.T) {
	registrar := newFakeRegistrar()
	bus := eventbus.NewEventBus()
	c := NewController(registrar, staticClipboard(""), bus)

	if err := c.Start("ctrl+shift+space"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	reg := registrar.regs["ctrl+shift+space"]

	c.Shutdown()
	if !reg.unregistered {
		t.Error("binding not released on shutdown")
	}

	c.Show()
	assertNoEvent(t, bus)

	if err := c.Start("ctrl+shift+space"); err == nil {
		t.Error("Start after shutdown should fail")
	}
}
