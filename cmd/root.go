package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"samwise/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "samwise",
	Short: "Hotkey-driven text transformations",
	Long:  `Samwise sits in the tray and rewrites whatever is on your clipboard with a configurable language model, summoned by a global hotkey.`,
	Run: func(cmd *cobra.Command, args []string) {
		application, err := app.NewApplication()
		if err != nil {
			log.Fatalf("Failed to create application: %v", err)
		}
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
}
