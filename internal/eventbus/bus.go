package eventbus

import (
	"errors"
	"time"

	"samwise/internal/config"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// ApplyPromptEvent - UI asks core to transform text with a named prompt
type ApplyPromptEvent struct {
	PromptID string
	Text     string
}

func (e ApplyPromptEvent) UIEvent() {}

// CancelEvent - UI asks core to abort the in-flight transformation
type CancelEvent struct{}

func (e CancelEvent) UIEvent() {}

// SelectModelEvent - UI or tray picked a different model
type SelectModelEvent struct {
	ModelID string
}

func (e SelectModelEvent) UIEvent() {}

// UpdateHotkeyEvent - UI asks core to rebind the global shortcut
type UpdateHotkeyEvent struct {
	Binding string
}

func (e UpdateHotkeyEvent) UIEvent() {}

// SaveConfigEvent - UI hands core an updated configuration to persist
type SaveConfigEvent struct {
	Config config.AppConfig
}

func (e SaveConfigEvent) UIEvent() {}

// BusyEvent - Core started working on request Seq
type BusyEvent struct {
	Seq uint64
}

func (e BusyEvent) CoreEvent() {}

// ResultEvent - Core finished request Seq with transformed text or an error
type ResultEvent struct {
	Seq  uint64
	Text string
	Err  error
}

func (e ResultEvent) CoreEvent() {}

// ActivationEvent - global hotkey fired; carries the clipboard snapshot
type ActivationEvent struct {
	Clipboard string
}

func (e ActivationEvent) CoreEvent() {}

// DeactivationEvent - window should hide (hotkey toggled while visible)
type DeactivationEvent struct{}

func (e DeactivationEvent) CoreEvent() {}

// ModelChangedEvent - the selected model changed
type ModelChangedEvent struct {
	ModelID string
}

func (e ModelChangedEvent) CoreEvent() {}

// OpenSettingsEvent - tray/menu requested the settings view
type OpenSettingsEvent struct{}

func (e OpenSettingsEvent) CoreEvent() {}

// HotkeyUpdatedEvent - outcome of a rebind request
type HotkeyUpdatedEvent struct {
	Binding string
	Err     error
}

func (e HotkeyUpdatedEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker implements circuit breaker pattern
type CircuitBreaker struct {
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	if cb.state == CircuitOpen {
		// Check if we should transition to half-open
		if time.Since(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
		}
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.failureCount++
	cb.lastFailureTime = time.Now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	if eb.circuitBreaker.IsOpen() {
		err := errors.New("circuit breaker is open")
		eb.reportError("SendToCore", err)
		return err
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("UI to Core channel is full")
		eb.reportError("SendToCore", err)
		return err
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	if eb.circuitBreaker.IsOpen() {
		err := errors.New("circuit breaker is open")
		eb.reportError("SendToUI", err)
		return err
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("Core to UI channel is full")
		eb.reportError("SendToUI", err)
		return err
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.state
}

func (eb *EventBus) Close() {
	close(eb.uiToCore)
	close(eb.coreToUI)
}
