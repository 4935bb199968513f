// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for bioid configuration.
	DefaultConfigDir = ".bioid"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultSessionFile is the default session database file name.
	DefaultSessionFile = "session.db"
)

// Provider slugs as used in the config file and on the command line.
const (
	SlugGemini     = "gemini"
	SlugOpenAI     = "openai"
	SlugGroq       = "groq"
	SlugAnthropic  = "anthropic"
	SlugCohere     = "cohere"
	SlugMistral    = "mistral"
	SlugPerplexity = "perplexity"
	SlugTogether   = "together"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	LLM     LLMConfig     `yaml:"llm,omitempty"`
	Batch   BatchConfig   `yaml:"batch,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Session SessionConfig `yaml:"session,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// LLMConfig holds configuration for the resolution providers.
type LLMConfig struct {
	// Provider is the slug of the provider used when none is given.
	Provider       string                    `yaml:"provider,omitempty"`
	RequestTimeout time.Duration             `yaml:"request_timeout,omitempty"`
	Providers      map[string]ProviderConfig `yaml:"providers,omitempty"`
}

// ProviderConfig holds per-provider settings.
type ProviderConfig struct {
	Model     string `yaml:"model,omitempty"`
	DeepModel string `yaml:"deep_model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// BatchConfig holds batch runner settings.
type BatchConfig struct {
	// Delay is the pause between two consecutive provider requests.
	Delay time.Duration `yaml:"delay,omitempty"`
}

// OutputConfig holds result export settings.
type OutputConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// SessionConfig holds configuration for the SQLite session store.
type SessionConfig struct {
	// Path is the file path to the SQLite database.
	// Empty means DefaultSessionFile inside the config directory.
	Path string `yaml:"path,omitempty"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// defaultProviders returns the built-in model and endpoint of every provider.
func defaultProviders() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		SlugGemini:     {Model: "gemini-2.5-flash"},
		SlugOpenAI:     {Model: "gpt-4o-mini", DeepModel: "gpt-4o"},
		SlugGroq:       {Model: "llama-3.3-70b-versatile", BaseURL: "https://api.groq.com/openai/v1"},
		SlugAnthropic:  {Model: "claude-3-5-haiku-latest"},
		SlugCohere:     {Model: "command-r-plus", BaseURL: "https://api.cohere.ai/compatibility/v1"},
		SlugMistral:    {Model: "mistral-large-latest", BaseURL: "https://api.mistral.ai/v1"},
		SlugPerplexity: {Model: "sonar", DeepModel: "sonar-pro", BaseURL: "https://api.perplexity.ai"},
		SlugTogether:   {Model: "meta-llama/Llama-3.3-70B-Instruct-Turbo", BaseURL: "https://api.together.xyz/v1"},
	}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       SlugGemini,
			RequestTimeout: 60 * time.Second,
			Providers:      defaultProviders(),
		},
		Batch: BatchConfig{
			Delay: 1500 * time.Millisecond,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the .bioid directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'bioid init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return parse(data)
}

// LoadOrDefault loads the config file when present and falls back to the
// defaults otherwise. Environment overrides apply in both cases.
func LoadOrDefault(basePath string) (*Config, error) {
	if !Exists(basePath) {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(basePath)
}

func parse(data []byte) (*Config, error) {
	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.fillProviderDefaults()

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// fillProviderDefaults completes partially configured providers. A providers
// entry in the file replaces the default entry as a whole, so fields the
// file leaves empty are taken from the defaults again.
func (c *Config) fillProviderDefaults() {
	if c.LLM.Providers == nil {
		c.LLM.Providers = make(map[string]ProviderConfig)
	}
	for slug, def := range defaultProviders() {
		p := c.LLM.Providers[slug]
		if p.Model == "" {
			p.Model = def.Model
		}
		if p.DeepModel == "" {
			p.DeepModel = def.DeepModel
		}
		if p.BaseURL == "" {
			p.BaseURL = def.BaseURL
		}
		c.LLM.Providers[slug] = p
	}
}

// applyEnvOverrides applies environment variable overrides. The Gemini key
// is left to the client, which reads its own environment default.
func (c *Config) applyEnvOverrides() {
	for slug, p := range c.LLM.Providers {
		if slug == SlugGemini || p.APIKey != "" {
			continue
		}
		if key := os.Getenv(EnvKeyName(slug)); key != "" {
			p.APIKey = key
			c.LLM.Providers[slug] = p
		}
	}
	if level := os.Getenv("BIOID_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.LLM.RequestTimeout < 0 {
		return fmt.Errorf("llm.request_timeout must not be negative")
	}
	if c.Batch.Delay < 0 {
		return fmt.Errorf("batch.delay must not be negative")
	}
	if _, ok := c.LLM.Providers[c.LLM.Provider]; !ok {
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	return nil
}

// ProviderSettings returns the settings of the provider with the given slug.
func (c *Config) ProviderSettings(slug string) ProviderConfig {
	return c.LLM.Providers[slug]
}

// SessionPath returns the session database path, resolved against basePath.
func (c *Config) SessionPath(basePath string) string {
	if c.Session.Path != "" {
		return c.Session.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, DefaultSessionFile)
}

// EnvKeyName returns the environment variable holding the key for slug.
func EnvKeyName(slug string) string {
	return strings.ToUpper(slug) + "_API_KEY"
}

// ConfigDir returns the path to the .bioid config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
