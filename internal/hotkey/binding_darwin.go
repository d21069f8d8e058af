//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":      hotkey.ModCtrl,
	"control":   hotkey.ModCtrl,
	"cmdorctrl": hotkey.ModCmd,
	"shift":     hotkey.ModShift,
	"alt":       hotkey.ModOption,
	"option":    hotkey.ModOption,
	"cmd":       hotkey.ModCmd,
	"super":     hotkey.ModCmd,
	"meta":      hotkey.ModCmd,
}
