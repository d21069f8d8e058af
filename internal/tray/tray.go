package tray

import (
	"github.com/getlantern/systray"
)

// Menu describes the tray entries and their callbacks. Callbacks run on
// the systray goroutine; keep them short and hand real work to the bus.
type Menu struct {
	Models   []string
	Selected string

	OnShow     func()
	OnSettings func()
	OnModel    func(modelID string)
	OnQuit     func()
}

// Run starts the tray icon loop. Blocks until Quit; callers run it in a
// goroutine.
func Run(menu Menu) {
	systray.Run(func() { onReady(menu) }, nil)
}

// Quit tears the tray down.
func Quit() {
	systray.Quit()
}

func onReady(menu Menu) {
	systray.SetTitle("Samwise")
	systray.SetTooltip("Text transformations")

	show := systray.AddMenuItem("Show", "Open the transformation window")
	systray.AddSeparator()

	modelItems := make([]*systray.MenuItem, len(menu.Models))
	for i, id := range menu.Models {
		modelItems[i] = systray.AddMenuItemCheckbox(id, "Use "+id, id == menu.Selected)
	}
	systray.AddSeparator()

	settings := systray.AddMenuItem("Settings", "View configuration")
	quit := systray.AddMenuItem("Quit", "Exit the application")

	for i := range modelItems {
		go watchModelItem(menu, modelItems, i)
	}

	go func() {
		for {
			select {
			case <-show.ClickedCh:
				if menu.OnShow != nil {
					menu.OnShow()
				}
			case <-settings.ClickedCh:
				if menu.OnSettings != nil {
					menu.OnSettings()
				}
			case <-quit.ClickedCh:
				if menu.OnQuit != nil {
					menu.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func watchModelItem(menu Menu, items []*systray.MenuItem, idx int) {
	for range items[idx].ClickedCh {
		for j, item := range items {
			if j == idx {
				item.Check()
			} else {
				item.Uncheck()
			}
		}
		if menu.OnModel != nil {
			menu.OnModel(menu.Models[idx])
		}
	}
}
