package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"samwise/internal/config"
	"samwise/internal/llm"
	"samwise/internal/prompts"
)

var (
	transformPromptID string
	transformModel    string
)

var transformCmd = &cobra.Command{
	Use:   "transform [text]",
	Short: "Transform text without the window",
	Long:  `Run one transformation headlessly. Text comes from the argument or stdin; the result goes to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := ""
		if len(args) > 0 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("Failed to read stdin: %v", err)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			log.Fatalf("No text to transform")
		}

		prompt, ok := prompts.Find(transformPromptID)
		if !ok {
			log.Fatalf("Unknown prompt %q; available: %s", transformPromptID, promptIDs())
		}

		store, err := config.NewStore()
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		cfg := store.Load()

		model := cfg.SelectedModel
		if transformModel != "" {
			model = transformModel
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		plan := llm.Resolve(model, cfg.LLM, llm.CLIAvailable())
		out, err := llm.NewDispatcher().Dispatch(ctx, llm.Request{
			Model:        model,
			SystemPrompt: prompt.SystemPrompt,
			UserText:     text,
		}, plan)
		if err != nil {
			log.Fatalf("Transform failed: %v", err)
		}
		fmt.Println(out)
	},
}

func promptIDs() string {
	ids := make([]string, 0, len(prompts.All()))
	for _, p := range prompts.All() {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ", ")
}

func init() {
	transformCmd.Flags().StringVarP(&transformPromptID, "prompt", "p", "fix_grammar", "prompt id to apply")
	transformCmd.Flags().StringVarP(&transformModel, "model", "m", "", "override the configured model")
	rootCmd.AddCommand(transformCmd)
}
