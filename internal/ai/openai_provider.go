package ai

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"cvoptimizer/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any server exposing the OpenAI chat completions
// API, such as LM Studio, llama.cpp or OpenAI itself.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// Ensure OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a client for cfg.BaseURL. The /v1 suffix is
// added when the configured URL does not already carry it.
func NewOpenAIProvider(cfg config.LLMConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = apiBaseURL(cfg.BaseURL)
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func apiBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL
	}
	return baseURL + "/v1"
}

// Complete implements Provider
func (p *OpenAIProvider) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: requestTemperature(req.Temperature),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &ChatResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: &TokenUsage{
			InputTokens:  int64(resp.Usage.PromptTokens),
			OutputTokens: int64(resp.Usage.CompletionTokens),
			TotalTokens:  int64(resp.Usage.TotalTokens),
		},
	}, nil
}

// requestTemperature maps 0 to the smallest positive float32. The client
// omits a zero temperature from the request body, which would leave the
// server on its own default.
func requestTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// Name implements Provider
func (p *OpenAIProvider) Name() string { return "openai" }

// Close implements Provider
func (p *OpenAIProvider) Close() error { return nil }
