// Package config defines the configuration schema for huntboard.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProviderConfig holds credentials for the LLM provider.
type ProviderConfig struct {
	APIKey  string `json:"apiKey"`
	APIBase string `json:"apiBase,omitempty"`
}

// AgentDefaults holds default values for agent behaviour.
type AgentDefaults struct {
	Workspace   string  `json:"workspace"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	MaxToolIter int     `json:"maxToolIterations"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Workspace:   "~/.huntboard/workspace",
		Model:       "gpt-4o",
		MaxTokens:   8192,
		Temperature: 0.3,
		MaxToolIter: 10,
	}
}

// AgentsConfig wraps agent defaults.
type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

// FetchToolConfig configures the posting-fetch tool.
type FetchToolConfig struct {
	MaxChars int `json:"maxChars"`
}

// ToolsConfig groups all tool-level settings.
type ToolsConfig struct {
	// CatalogPath overrides the embedded tool catalogue resource.
	// Empty means use the embedded catalogue.
	CatalogPath string          `json:"catalogPath,omitempty"`
	Fetch       FetchToolConfig `json:"fetch"`
}

// FeedConfig holds the operations websocket feed settings.
type FeedConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// RemindersConfig holds the follow-up reminder scheduler settings.
type RemindersConfig struct {
	Enabled bool `json:"enabled"`
}

// Config is the root configuration object, loaded from ~/.huntboard/config.json.
type Config struct {
	Agents    AgentsConfig    `json:"agents"`
	Provider  ProviderConfig  `json:"provider"`
	Tools     ToolsConfig     `json:"tools"`
	Feed      FeedConfig      `json:"feed"`
	Reminders RemindersConfig `json:"reminders"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents: AgentsConfig{Defaults: defaultAgentDefaults()},
		Tools: ToolsConfig{
			Fetch: FetchToolConfig{MaxChars: 50000},
		},
		Feed: FeedConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    18820,
		},
		Reminders: RemindersConfig{Enabled: true},
	}
}

// WorkspacePath returns the agent workspace directory with ~ expanded.
func (c *Config) WorkspacePath() string {
	ws := c.Agents.Defaults.Workspace
	if strings.HasPrefix(ws, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			ws = filepath.Join(home, strings.TrimPrefix(ws, "~"))
		}
	}
	return ws
}
