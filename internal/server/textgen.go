package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ncoat48/mikichats/internal/config"

	tokenizer "github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator is the single-turn completion boundary: one prompt string
// in, raw unstructured model text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type openAIGenerator struct {
	client          *openai.Client
	model           string
	maxPromptTokens int
}

// NewOpenAIGenerator builds a TextGenerator backed by an OpenAI-compatible
// chat completion endpoint. The base URL is configurable so Gemini's
// compatibility endpoint can serve the same contract.
func NewOpenAIGenerator(cfg config.Config) (TextGenerator, error) {
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	clientCfg := openai.DefaultConfig(strings.TrimSpace(cfg.OpenAIAPIKey))
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &openAIGenerator{
		client:          openai.NewClientWithConfig(clientCfg),
		model:           cfg.OpenAIModel,
		maxPromptTokens: cfg.OpenAIMaxPromptToken,
	}, nil
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	tokens := countPromptTokens(prompt)
	if g.maxPromptTokens > 0 && tokens > g.maxPromptTokens {
		return "", fmt.Errorf("prompt is too long (%d tokens, limit %d)", tokens, g.maxPromptTokens)
	}

	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	log.Printf("chat completion model=%s prompt_tokens=%d", g.model, tokens)
	return resp.Choices[0].Message.Content, nil
}

func countPromptTokens(prompt string) int {
	enc, err := tokenizer.GetEncoding("cl100k_base")
	if err != nil {
		// rough bytes-per-token estimate when the encoding is unavailable
		return len(prompt) / 4
	}
	return len(enc.Encode(prompt, nil, nil))
}
