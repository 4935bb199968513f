// Package gemini provides an EntityResolver using the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
	"github.com/ersonp/bioid/internal/infrastructure/llm/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// EnvKeys are checked in order when no API key is given.
var EnvKeys = []string{"GEMINI_API_KEY", "API_KEY"}

// getenv reads the environment (can be mocked in tests).
var getenv = os.Getenv

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey    string // empty means the environment default
	BaseURL   string
	Model     string
	DeepModel string
	Timeout   time.Duration
}

// Client implements ports.EntityResolver using Gemini.
type Client struct {
	client    *genai.Client
	model     string
	deepModel string
}

// NewClient creates a new Gemini resolver client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = EnvironmentKey()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required (set %s)", entities.ProviderGemini, strings.Join(EnvKeys, " or "))
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	model := DefaultModel
	if cfg.Model != "" {
		model = cfg.Model
	}
	deepModel := model
	if cfg.DeepModel != "" {
		deepModel = cfg.DeepModel
	}

	return &Client{
		client:    client,
		model:     model,
		deepModel: deepModel,
	}, nil
}

// EnvironmentKey returns the first non-empty environment default key.
func EnvironmentKey() string {
	for _, name := range EnvKeys {
		if key := strings.TrimSpace(getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

// Resolve sends one generate content request for req.EntityName. Deep search
// requests are grounded with Google Search.
func (c *Client) Resolve(ctx context.Context, req ports.ResolveRequest) (*entities.Resolution, error) {
	if err := prompt.Validate(req); err != nil {
		return nil, err
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System(req.DeepSearch), genai.RoleUser),
		Temperature:       genai.Ptr[float32](prompt.Temperature),
		MaxOutputTokens:   int32(prompt.MaxOutputTokens(req.DeepSearch)),
	}

	model := c.model
	if req.DeepSearch {
		model = c.deepModel
		// Search grounding cannot be combined with a JSON response type.
		genCfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		genCfg.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt.User(req)), genCfg)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini: %w", err)
	}

	res, err := prompt.Parse(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("Gemini: %w", err)
	}
	return res, nil
}
