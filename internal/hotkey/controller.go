package hotkey

import (
	"fmt"
	"log"
	"sync"

	"samwise/internal/eventbus"
)

// RebindError reports a failed shortcut change. The previous binding is
// still registered when this is returned.
type RebindError struct {
	Binding string
	Err     error
}

func (e *RebindError) Error() string {
	return fmt.Sprintf("rebind to %q failed: %v", e.Binding, e.Err)
}

func (e *RebindError) Unwrap() error { return e.Err }

// Controller owns the global shortcut and the hidden/visible window
// state. Hotkey presses toggle the state; transitions are announced on
// the bus so the window model never touches the OS directly.
type Controller struct {
	registrar     Registrar
	readClipboard func() (string, error)
	bus           *eventbus.EventBus

	mu      sync.Mutex
	current Registration
	binding string
	visible bool
	stop    chan struct{}
	done    bool
}

func NewController(registrar Registrar, readClipboard func() (string, error), bus *eventbus.EventBus) *Controller {
	return &Controller{
		registrar:     registrar,
		readClipboard: readClipboard,
		bus:           bus,
	}
}

// Start registers the initial binding and begins watching for presses.
func (c *Controller) Start(binding string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return fmt.Errorf("controller is shut down")
	}
	if c.current != nil {
		return fmt.Errorf("already started with %q", c.binding)
	}

	reg, err := c.registrar.Register(binding)
	if err != nil {
		return &RebindError{Binding: binding, Err: err}
	}
	c.install(reg, binding)
	return nil
}

// Rebind switches the global shortcut. The new binding is registered
// before the old one is released, so a failure leaves the old shortcut
// fully functional.
func (c *Controller) Rebind(binding string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return fmt.Errorf("controller is shut down")
	}

	reg, err := c.registrar.Register(binding)
	if err != nil {
		return &RebindError{Binding: binding, Err: err}
	}
	c.release()
	c.install(reg, binding)
	return nil
}

// Binding returns the currently registered shortcut.
func (c *Controller) Binding() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binding
}

// Visible reports the window state the controller believes in.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Show makes the window visible without a clipboard snapshot. No-op when
// already visible.
func (c *Controller) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done || c.visible {
		return
	}
	c.visible = true
	c.send(eventbus.ActivationEvent{})
}

// Hide returns the window to the hidden state. No-op when already hidden.
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done || !c.visible {
		return
	}
	c.visible = false
	c.send(eventbus.DeactivationEvent{})
}

// Toggle is the hotkey-press transition. Hidden to visible snapshots the
// clipboard at press time and carries it in the activation; visible to
// hidden announces deactivation only.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}

	if c.visible {
		c.visible = false
		c.send(eventbus.DeactivationEvent{})
		return
	}

	clip, err := c.readClipboard()
	if err != nil {
		log.Printf("clipboard read failed: %v", err)
		clip = ""
	}
	c.visible = true
	c.send(eventbus.ActivationEvent{Clipboard: clip})
}

// Shutdown releases the OS binding and stops the watcher. Presses after
// shutdown are ignored.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	c.release()
}

// install assumes c.mu is held.
func (c *Controller) install(reg Registration, binding string) {
	stop := make(chan struct{})
	c.current = reg
	c.binding = binding
	c.stop = stop
	go c.watch(reg, stop)
}

// release assumes c.mu is held.
func (c *Controller) release() {
	if c.current == nil {
		return
	}
	close(c.stop)
	c.current.Unregister()
	c.current = nil
	c.stop = nil
}

func (c *Controller) watch(reg Registration, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-reg.Keydown():
			if !ok {
				return
			}
			c.Toggle()
		}
	}
}

func (c *Controller) send(ev eventbus.CoreEvent) {
	if err := c.bus.SendToUI(ev); err != nil {
		log.Printf("drop %T: %v", ev, err)
	}
}
