package hotkey

import (
	"errors"

	"golang.design/x/clipboard"
)

var errClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard wraps the OS text clipboard. Init can fail on headless
// systems; a failed init degrades reads to an error and writes to
// no-ops instead of panicking.
type Clipboard struct {
	available bool
}

func NewSystemClipboard() *Clipboard {
	err := clipboard.Init()
	return &Clipboard{available: err == nil}
}

func (c *Clipboard) Read() (string, error) {
	if !c.available {
		return "", errClipboardUnavailable
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (c *Clipboard) Write(text string) {
	if !c.available {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
}
