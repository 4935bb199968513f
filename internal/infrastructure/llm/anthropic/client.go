// Package anthropic provides an EntityResolver using the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
	"github.com/ersonp/bioid/internal/infrastructure/llm/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-3-5-haiku-latest"

// Config holds configuration for the Anthropic client.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	DeepModel string
	Timeout   time.Duration
}

// Client implements ports.EntityResolver using Anthropic.
type Client struct {
	client    anthropic.Client
	model     string
	deepModel string
}

// NewClient creates a new Anthropic resolver client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	// Requests are never retried; one call is made per entity.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
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
		client:    anthropic.NewClient(opts...),
		model:     model,
		deepModel: deepModel,
	}, nil
}

// Resolve sends one message request for req.EntityName.
func (c *Client) Resolve(ctx context.Context, req ports.ResolveRequest) (*entities.Resolution, error) {
	if err := prompt.Validate(req); err != nil {
		return nil, err
	}

	model := c.model
	if req.DeepSearch {
		model = c.deepModel
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(prompt.MaxOutputTokens(req.DeepSearch)),
		System: []anthropic.TextBlockParam{
			{Text: prompt.System(req.DeepSearch)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User(req))),
		},
		Temperature: anthropic.Float(prompt.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("calling Anthropic: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	res, err := prompt.Parse(text.String())
	if err != nil {
		return nil, fmt.Errorf("Anthropic: %w", err)
	}
	return res, nil
}
