package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# BioID Configuration

llm:
  provider: gemini
  request_timeout: 60s
  providers:
    gemini:
      model: gemini-2.5-flash
      # api_key: your-api-key (or set GEMINI_API_KEY env var)
    openai:
      model: gpt-4o-mini
      deep_model: gpt-4o
      # api_key: your-api-key (or set OPENAI_API_KEY env var)
    anthropic:
      model: claude-3-5-haiku-latest
      # api_key: your-api-key (or set ANTHROPIC_API_KEY env var)
    groq:
      model: llama-3.3-70b-versatile
      # base_url: https://api.groq.com/openai/v1

batch:
  delay: 1500ms

output:
  dir: .

# session:
#   path: .bioid/session.db

log:
  level: warn
`

// WriteDefault creates the .bioid directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	configDir := ConfigDir(basePath)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Exists checks if a bioid config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
