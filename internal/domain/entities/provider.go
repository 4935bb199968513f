package entities

import (
	"fmt"
	"strings"
)

// Provider identifies an external text-completion service.
type Provider string

// Supported providers.
const (
	ProviderGemini     Provider = "Google Gemini"
	ProviderOpenAI     Provider = "OpenAI"
	ProviderGroq       Provider = "Groq"
	ProviderAnthropic  Provider = "Anthropic"
	ProviderCohere     Provider = "Cohere"
	ProviderMistral    Provider = "Mistral AI"
	ProviderPerplexity Provider = "Perplexity"
	ProviderTogether   Provider = "Together AI"
)

// Providers lists every supported provider in display order.
var Providers = []Provider{
	ProviderGemini,
	ProviderOpenAI,
	ProviderGroq,
	ProviderAnthropic,
	ProviderCohere,
	ProviderMistral,
	ProviderPerplexity,
	ProviderTogether,
}

var providerSlugs = map[Provider]string{
	ProviderGemini:     "gemini",
	ProviderOpenAI:     "openai",
	ProviderGroq:       "groq",
	ProviderAnthropic:  "anthropic",
	ProviderCohere:     "cohere",
	ProviderMistral:    "mistral",
	ProviderPerplexity: "perplexity",
	ProviderTogether:   "together",
}

// IsValid reports whether p is one of the supported providers.
func (p Provider) IsValid() bool {
	_, ok := providerSlugs[p]
	return ok
}

// Slug returns the short lowercase name used in flags and config keys.
func (p Provider) Slug() string {
	return providerSlugs[p]
}

// HasEnvDefault reports whether the provider can run without an explicit
// credential because the environment supplies one.
func (p Provider) HasEnvDefault() bool {
	return p == ProviderGemini
}

// ParseProvider accepts a display name or a slug, case-insensitively.
func ParseProvider(s string) (Provider, error) {
	s = strings.TrimSpace(s)
	for p, slug := range providerSlugs {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, slug) {
			return p, nil
		}
	}

	slugs := make([]string, 0, len(Providers))
	for _, p := range Providers {
		slugs = append(slugs, p.Slug())
	}
	return "", fmt.Errorf("unknown provider %q (valid: %s)", s, strings.Join(slugs, ", "))
}
