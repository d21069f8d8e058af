package cmd

import (
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"samwise/internal/config"
	"samwise/internal/llm"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Inspect and edit API keys, model selection, and the Claude CLI preference.`,
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := config.NewStore()
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		cfg := store.Load()

		fmt.Printf("Config file: %s\n\n", store.Path())
		fmt.Printf("Selected model: %s\n", cfg.SelectedModel)
		fmt.Printf("Global hotkey: %s\n", cfg.GlobalHotkey)
		fmt.Printf("Use Claude CLI: %v (found: %v)\n", cfg.LLM.UseClaudeCLI, llm.LookupCLI())
		fmt.Printf("Claude CLI model: %s\n", cfg.LLM.ClaudeCLIModel)
		fmt.Printf("OpenAI API key: %s\n", keyStatus(cfg.LLM.OpenAIAPIKey))
		fmt.Printf("Anthropic API key: %s\n", keyStatus(cfg.LLM.AnthropicAPIKey))
		fmt.Printf("AtlasCloud API key: %s\n", keyStatus(cfg.LLM.AtlasCloudAPIKey))
		if cfg.LLM.ForceAtlasCloudForClaude {
			fmt.Println("Claude requests are forced through AtlasCloud")
		}
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit the configuration interactively",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := config.NewStore()
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		cfg := store.Load()

		cfg.LLM.OpenAIAPIKey = promptSecret("OpenAI API key", cfg.LLM.OpenAIAPIKey)
		cfg.LLM.AnthropicAPIKey = promptSecret("Anthropic API key", cfg.LLM.AnthropicAPIKey)
		cfg.LLM.AtlasCloudAPIKey = promptSecret("AtlasCloud API key", cfg.LLM.AtlasCloudAPIKey)
		cfg.LLM.UseClaudeCLI = promptYesNo("Prefer the Claude CLI for claude models", cfg.LLM.UseClaudeCLI)

		cliModelPrompt := promptui.Prompt{
			Label:   "Claude CLI model",
			Default: cfg.LLM.ClaudeCLIModel,
		}
		if cfg.LLM.ClaudeCLIModel, err = cliModelPrompt.Run(); err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		modelSelect := promptui.Select{
			Label: "Selected model",
			Items: llm.KnownModels,
		}
		if _, cfg.SelectedModel, err = modelSelect.Run(); err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if err := store.Save(cfg); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		fmt.Println("Configuration saved")
	},
}

func promptSecret(label, current string) string {
	prompt := promptui.Prompt{
		Label:   label,
		Default: current,
		Mask:    '*',
	}
	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return value
}

func promptYesNo(label string, current bool) bool {
	items := []string{"yes", "no"}
	cursor := 1
	if current {
		cursor = 0
	}
	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: cursor,
	}
	_, value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return value == "yes"
}

func keyStatus(key string) string {
	if key == "" {
		return "not set"
	}
	return "set (hidden)"
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)
}
