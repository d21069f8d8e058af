package hotkey

import (
	"fmt"

	"golang.design/x/hotkey"
)

// Registration is a live system-wide binding. Keydown delivers one value
// per press; Unregister releases the OS binding and closes the channel's
// forwarder.
type Registration interface {
	Keydown() <-chan struct{}
	Unregister()
}

// Registrar turns binding strings into live registrations. The system
// implementation talks to the OS; tests substitute fakes.
type Registrar interface {
	Register(binding string) (Registration, error)
}

// SystemRegistrar registers hotkeys with the operating system.
type SystemRegistrar struct{}

func NewSystemRegistrar() *SystemRegistrar { return &SystemRegistrar{} }

func (r *SystemRegistrar) Register(binding string) (Registration, error) {
	mods, key, err := ParseBinding(binding)
	if err != nil {
		return nil, err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register %q: %w", binding, err)
	}

	reg := &systemRegistration{
		hk:      hk,
		keydown: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	go reg.forward()
	return reg, nil
}

type systemRegistration struct {
	hk      *hotkey.Hotkey
	keydown chan struct{}
	stop    chan struct{}
}

// forward drains OS keydown events into the registration channel. Presses
// arriving while one is already queued are coalesced.
func (r *systemRegistration) forward() {
	for {
		select {
		case <-r.stop:
			return
		case <-r.hk.Keydown():
			select {
			case r.keydown <- struct{}{}:
			default:
			}
		}
	}
}

func (r *systemRegistration) Keydown() <-chan struct{} { return r.keydown }

func (r *systemRegistration) Unregister() {
	close(r.stop)
	r.hk.Unregister()
}
