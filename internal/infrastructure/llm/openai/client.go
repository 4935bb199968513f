// Package openai provides an EntityResolver for OpenAI-compatible chat
// completion APIs (OpenAI, Groq, Cohere, Mistral AI, Perplexity, Together AI).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
	"github.com/ersonp/bioid/internal/infrastructure/llm/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// Config holds configuration for an OpenAI-compatible endpoint.
type Config struct {
	// Name is the provider name used in error messages.
	Name      string
	APIKey    string
	BaseURL   string // empty means the OpenAI endpoint
	Model     string
	DeepModel string // empty means Model
	Timeout   time.Duration
	// JSONMode requests a JSON object response format. Not every
	// compatible endpoint accepts it.
	JSONMode bool
}

// Client implements ports.EntityResolver using a chat completion API.
type Client struct {
	client    *openai.Client
	name      string
	model     string
	deepModel string
	jsonMode  bool
}

// NewClient creates a new OpenAI-compatible resolver client.
func NewClient(cfg Config) (*Client, error) {
	name := cfg.Name
	if name == "" {
		name = string(entities.ProviderOpenAI)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
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
		client:    openai.NewClientWithConfig(clientCfg),
		name:      name,
		model:     model,
		deepModel: deepModel,
		jsonMode:  cfg.JSONMode,
	}, nil
}

// Resolve sends one chat completion request for req.EntityName.
func (c *Client) Resolve(ctx context.Context, req ports.ResolveRequest) (*entities.Resolution, error) {
	if err := prompt.Validate(req); err != nil {
		return nil, err
	}

	model := c.model
	if req.DeepSearch {
		model = c.deepModel
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt.System(req.DeepSearch),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.User(req),
			},
		},
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxOutputTokens(req.DeepSearch),
	}
	if c.jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from " + c.name)
	}

	res, err := prompt.Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	return res, nil
}

// Model returns the model used for a standard or deep search request.
func (c *Client) Model(deep bool) string {
	if deep {
		return c.deepModel
	}
	return c.model
}
