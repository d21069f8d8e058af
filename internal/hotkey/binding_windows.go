//go:build windows

package hotkey

import "golang.design/x/hotkey"

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":      hotkey.ModCtrl,
	"control":   hotkey.ModCtrl,
	"cmdorctrl": hotkey.ModCtrl,
	"shift":     hotkey.ModShift,
	"alt":       hotkey.ModAlt,
	"super":     hotkey.ModWin,
	"win":       hotkey.ModWin,
	"cmd":       hotkey.ModWin,
	"meta":      hotkey.ModWin,
}
