package sage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message is a chat message sent to the LLM.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Completion is the LLM reply and its token usage.
type Completion struct {
	Content      string
	PromptTokens int64
	OutputTokens int64
}

// LLM completes a chat conversation.
type LLM interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}

// OpenAIConfig configures the OpenAI-compatible chat completions client.
type OpenAIConfig struct {
	APIKey      string        `env:"OPENAI_API_KEY"`
	Model       string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	Endpoint    string        `env:"OPENAI_ENDPOINT" envDefault:"https://api.openai.com/v1"`
	Temperature float64       `env:"OPENAI_TEMPERATURE" envDefault:"0"`
	MaxTokens   int64         `env:"OPENAI_MAX_TOKENS" envDefault:"600"`
	Timeout     time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
}

// OpenAI talks to any endpoint that speaks the chat completions protocol
// (OpenAI, Azure, Ollama, vLLM).
type OpenAI struct {
	cfg    OpenAIConfig
	client *http.Client
}

// NewOpenAI creates the client. Empty Model and Endpoint use the OpenAI defaults.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.openai.com/v1"
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &OpenAI{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type openaiRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int64     `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type openaiResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends messages to {Endpoint}/chat/completions.
func (p *OpenAI) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	body, err := json.Marshal(openaiRequest{
		Model:       p.cfg.Model,
		Messages:    messages,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", ErrCompletion, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrCompletion, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrCompletion, err)
	}

	var out openaiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: status %d: unmarshal response: %w", ErrCompletion, resp.StatusCode, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("%w: status %d: %s", ErrCompletion, resp.StatusCode, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrCompletion, resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrCompletion, ErrNoChoices)
	}

	return &Completion{
		Content:      out.Choices[0].Message.Content,
		PromptTokens: out.Usage.PromptTokens,
		OutputTokens: out.Usage.CompletionTokens,
	}, nil
}

var _ LLM = (*OpenAI)(nil)
