package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	defaultGeminiModel    = "gemini-2.5-flash"
	defaultAnthropicModel = "claude-sonnet-4-5"

	defaultGeminiBaseURL    = "https://generativelanguage.googleapis.com"
	defaultAnthropicBaseURL = "https://api.anthropic.com"
)

// ErrNotConfigured means no API key is set for the selected provider. It
// is detected before any network activity, so an unconfigured client never
// attempts a call.
var ErrNotConfigured = errors.New("LLM not configured")

// GatewayError wraps a failed provider call: transport errors, non-OK
// statuses and empty responses all land here. There is no retry.
type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("LLM gateway %s: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Usage tracks token consumption for one provider call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

// Config selects the provider and credentials for a Client. BaseURL
// overrides the provider endpoint; tests point it at a local server.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// Client talks to one model provider. All state is fixed at construction,
// so a single instance is safe to share across concurrent callers.
type Client struct {
	provider string
	model    string
	apiKey   string
	baseURL  string
	http     *http.Client
}

// New builds a client for the configured provider, filling in the
// provider's default model and endpoint where the config leaves them
// empty. A missing API key does not fail construction; it leaves the
// client disabled and every Invoke and Probe returns ErrNotConfigured.
func New(cfg Config, httpClient *http.Client) *Client {
	provider := cfg.Provider
	if provider == "" {
		provider = ProviderGemini
	}
	model := cfg.Model
	if model == "" {
		switch provider {
		case ProviderAnthropic:
			model = defaultAnthropicModel
		default:
			model = defaultGeminiModel
		}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch provider {
		case ProviderAnthropic:
			baseURL = defaultAnthropicBaseURL
		default:
			baseURL = defaultGeminiBaseURL
		}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		provider: provider,
		model:    model,
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		http:     httpClient,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

func (c *Client) Provider() string { return c.provider }

func (c *Client) Model() string { return c.model }

// keyEnvName names the environment variable that would enable this client.
func (c *Client) keyEnvName() string {
	if c.provider == ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// Invoke sends one prompt to the model and returns its raw response text.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: set %s", ErrNotConfigured, c.keyEnvName())
	}

	var (
		text  string
		usage Usage
		err   error
	)
	switch c.provider {
	case ProviderAnthropic:
		text, usage, err = c.callAnthropic(ctx, prompt)
	default:
		text, usage, err = c.callGemini(ctx, prompt)
	}
	if err != nil {
		log.Printf("llm invoke failed provider=%s model=%s: %v", c.provider, c.model, err)
		return "", &GatewayError{Provider: c.provider, Err: err}
	}
	log.Printf("llm invoke provider=%s model=%s prompt_chars=%d response_chars=%d tokens_in=%d tokens_out=%d",
		c.provider, c.model, len(prompt), len(text), usage.InputTokens, usage.OutputTokens)
	return text, nil
}

// Probe checks provider reachability against its models endpoint without
// spending tokens.
func (c *Client) Probe(ctx context.Context) error {
	if !c.Configured() {
		return fmt.Errorf("%w: set %s", ErrNotConfigured, c.keyEnvName())
	}

	var err error
	switch c.provider {
	case ProviderAnthropic:
		err = c.probeAnthropic(ctx)
	default:
		err = c.probeGemini(ctx)
	}
	if err != nil {
		return &GatewayError{Provider: c.provider, Err: err}
	}
	return nil
}
