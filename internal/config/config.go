package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LLMConfig holds provider credentials and the CLI preference. An empty
// key means that provider family is unusable via its API; use_claude_cli
// is advisory, the CLI must also be discoverable on PATH.
type LLMConfig struct {
	OpenAIAPIKey             string `json:"openai_api_key,omitempty"`
	AnthropicAPIKey          string `json:"anthropic_api_key,omitempty"`
	AtlasCloudAPIKey         string `json:"atlascloud_api_key,omitempty"`
	UseClaudeCLI             bool   `json:"use_claude_cli"`
	ClaudeCLIModel           string `json:"claude_cli_model"`
	ForceAtlasCloudForClaude bool   `json:"force_atlascloud_for_claude,omitempty"`
}

// AppConfig is the persisted configuration: one JSON object in the user
// config dir. Secrets are stored in the clear by design.
type AppConfig struct {
	LLM           LLMConfig `json:"llm"`
	SelectedModel string    `json:"selected_model"`
	GlobalHotkey  string    `json:"global_hotkey"`
}

// Default returns the built-in configuration used when no file exists or
// the file cannot be parsed.
func Default() AppConfig {
	return AppConfig{
		LLM: LLMConfig{
			UseClaudeCLI:   true,
			ClaudeCLIModel: "claude-3-5-sonnet-20241022",
		},
		SelectedModel: "claude-3-5-sonnet",
		GlobalHotkey:  "ctrl+shift+space",
	}
}

// Store owns the persisted AppConfig file. It is the single writer;
// everything else receives value copies. Saves are serialized so
// concurrent callers cannot interleave partial writes.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store rooted at the user config dir
// (…/samwise/config.json). The directory is created on demand.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return NewStoreAt(filepath.Join(base, "samwise", "config.json")), nil
}

// NewStoreAt creates a store over an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the config file. A missing file is not an error, and an
// unparseable file falls back silently to defaults so the app stays
// usable; fields absent from the file keep their default values.
func (s *Store) Load() AppConfig {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Default()
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save persists cfg atomically: marshal, write a temp file next to the
// target, rename over it. A failed write never corrupts the previous
// file. Save failures are surfaced; silent loss of settings is not
// acceptable.
func (s *Store) Save(cfg AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
