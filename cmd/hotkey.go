package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"samwise/internal/config"
	"samwise/internal/hotkey"
)

var hotkeyCmd = &cobra.Command{
	Use:   "hotkey [binding]",
	Short: "Show or change the global shortcut",
	Long:  `With no argument prints the configured binding. With an argument like "ctrl+shift+space" validates it and persists it; the running app picks it up on next start.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := config.NewStore()
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		cfg := store.Load()

		if len(args) == 0 {
			fmt.Println(cfg.GlobalHotkey)
			return
		}

		binding := args[0]
		if err := hotkey.ValidateBinding(binding); err != nil {
			log.Fatalf("Rejected: %v", err)
		}

		cfg.GlobalHotkey = binding
		if err := store.Save(cfg); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		fmt.Printf("Global hotkey set to %s\n", binding)
	},
}

func init() {
	rootCmd.AddCommand(hotkeyCmd)
}
