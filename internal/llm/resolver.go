package llm

import (
	"strings"

	"samwise/internal/config"
)

// Family identifies which backend vendor handles a model id.
type Family int

const (
	FamilyClaude Family = iota
	FamilyOpenAI
	FamilyAtlasCloud
	FamilyUnsupported
)

func (f Family) String() string {
	switch f {
	case FamilyClaude:
		return "claude"
	case FamilyOpenAI:
		return "openai"
	case FamilyAtlasCloud:
		return "atlascloud"
	default:
		return "unsupported"
	}
}

// Transport is the sub-plan within a family: local CLI binary or HTTP API.
// TransportNone means the family is known but no credential/CLI is usable.
type Transport int

const (
	TransportNone Transport = iota
	TransportCLI
	TransportAPI
)

// Plan is the resolved execution strategy for one request. Model is the
// name passed to the backend, which for the CLI sub-plan comes from
// config (claude_cli_model) rather than the requested model id.
type Plan struct {
	Family    Family
	Transport Transport
	Model     string
	APIKey    string
	Hint      string
}

// Resolve maps a model id onto a Plan. Pure: no I/O, never fails; CLI
// discoverability is probed by the caller (see CLIAvailable) so that
// resolution stays deterministic and testable.
//
// Resolution order is first-match-wins: plain claude ids, then gpt ids,
// then vendor-qualified ids ("vendor/model", the AtlasCloud convention).
// Note that "anthropic/claude-..." therefore resolves to AtlasCloud, not
// to the plain Anthropic API.
func Resolve(modelID string, cfg config.LLMConfig, cliAvailable bool) Plan {
	switch {
	case strings.HasPrefix(modelID, "claude"):
		return resolveClaude(modelID, cfg, cliAvailable)

	case strings.HasPrefix(modelID, "gpt"):
		if cfg.OpenAIAPIKey != "" {
			return Plan{Family: FamilyOpenAI, Transport: TransportAPI, Model: modelID, APIKey: cfg.OpenAIAPIKey}
		}
		return Plan{Family: FamilyOpenAI, Hint: "no OpenAI API key configured"}

	case strings.Contains(modelID, "/"):
		if cfg.AtlasCloudAPIKey != "" {
			return Plan{Family: FamilyAtlasCloud, Transport: TransportAPI, Model: modelID, APIKey: cfg.AtlasCloudAPIKey}
		}
		return Plan{Family: FamilyAtlasCloud, Hint: "no AtlasCloud API key configured"}

	default:
		return Plan{Family: FamilyUnsupported}
	}
}

// resolveClaude applies the CLI-before-API authentication hierarchy.
// force_atlascloud_for_claude short-circuits to AtlasCloud when a key is
// present, matching the desktop app's escape hatch for accounts without
// CLI access.
func resolveClaude(modelID string, cfg config.LLMConfig, cliAvailable bool) Plan {
	if cfg.ForceAtlasCloudForClaude && cfg.AtlasCloudAPIKey != "" {
		// AtlasCloud names Claude models with the vendor prefix.
		return Plan{Family: FamilyAtlasCloud, Transport: TransportAPI, Model: "anthropic/" + modelID, APIKey: cfg.AtlasCloudAPIKey}
	}
	if cfg.UseClaudeCLI && cliAvailable {
		model := cfg.ClaudeCLIModel
		if model == "" {
			model = modelID
		}
		return Plan{Family: FamilyClaude, Transport: TransportCLI, Model: model}
	}
	if cfg.AnthropicAPIKey != "" {
		return Plan{Family: FamilyClaude, Transport: TransportAPI, Model: modelID, APIKey: cfg.AnthropicAPIKey}
	}
	return Plan{Family: FamilyClaude, Hint: "Claude CLI is not usable and no Anthropic API key configured"}
}
