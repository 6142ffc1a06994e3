package server

import (
	"context"
	"strings"
	"testing"

	"github.com/ncoat48/mikichats/internal/config"
)

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	if _, err := NewOpenAIGenerator(config.Default()); err == nil {
		t.Fatal("expected an error without an api key")
	}
	cfg := config.Default()
	cfg.OpenAIAPIKey = "sk-test"
	gen, err := NewOpenAIGenerator(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen == nil {
		t.Fatal("expected a generator")
	}
}

func TestGenerateRejectsOversizedPrompt(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.OpenAIMaxPromptToken = 10
	gen, err := NewOpenAIGenerator(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = gen.Generate(context.Background(), strings.Repeat("affection ", 100))
	if err == nil || !strings.Contains(err.Error(), "too long") {
		t.Fatalf("expected a prompt-length error, got %v", err)
	}
}

func TestCountPromptTokens(t *testing.T) {
	if countPromptTokens("") != 0 {
		t.Error("empty prompt must count zero tokens")
	}
	short := countPromptTokens("hello")
	long := countPromptTokens(strings.Repeat("hello world ", 50))
	if short <= 0 || long <= short {
		t.Errorf("token counts not monotonic: short=%d long=%d", short, long)
	}
}
