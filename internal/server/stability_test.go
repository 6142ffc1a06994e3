package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ncoat48/mikichats/internal/config"
)

type stabilityCapture struct {
	path    string
	auth    string
	payload stabilityRequest
}

func stabilityStub(t *testing.T, status int, body any) (*stabilityGenerator, *stabilityCapture) {
	t.Helper()
	captured := &stabilityCapture{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&captured.payload)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return &stabilityGenerator{apiKey: "sk-test", engine: "stable-diffusion-xl-1024-v1-0", baseURL: ts.URL}, captured
}

func TestStabilityGenerate(t *testing.T) {
	image := []byte("fake-png-bytes")
	gen, captured := stabilityStub(t, http.StatusOK, map[string]any{
		"artifacts": []map[string]any{
			{"base64": base64.StdEncoding.EncodeToString(image), "finishReason": "SUCCESS"},
		},
	})

	got, err := gen.Generate(context.Background(), AvatarRequest{Gender: "woman", Age: "22", Appearance: "silver hair"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(got) != string(image) {
		t.Fatalf("expected decoded image bytes, got %q", got)
	}
	if captured.path != "/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image" {
		t.Fatalf("unexpected path %q", captured.path)
	}
	if captured.auth != "Bearer sk-test" {
		t.Fatalf("missing auth header, got %q", captured.auth)
	}
	if len(captured.payload.TextPrompts) != 2 {
		t.Fatalf("expected prompt and negative prompt, got %+v", captured.payload.TextPrompts)
	}
	prompt := captured.payload.TextPrompts[0].Text
	if !strings.Contains(prompt, "22 year old woman") || !strings.Contains(prompt, "silver hair") {
		t.Fatalf("persona not in prompt: %q", prompt)
	}
	if captured.payload.Width != 512 || captured.payload.Height != 512 || captured.payload.StylePreset != "anime" {
		t.Fatalf("unexpected generation parameters %+v", captured.payload)
	}
}

func TestStabilityGenerateFiltered(t *testing.T) {
	gen, _ := stabilityStub(t, http.StatusOK, map[string]any{
		"artifacts": []map[string]any{
			{"base64": "", "finishReason": "CONTENT_FILTERED"},
		},
	})
	if _, err := gen.Generate(context.Background(), AvatarRequest{}); !errors.Is(err, ErrImageFiltered) {
		t.Fatalf("expected ErrImageFiltered, got %v", err)
	}
}

func TestStabilityGenerateServiceError(t *testing.T) {
	gen, _ := stabilityStub(t, http.StatusBadRequest, map[string]any{"message": "invalid prompt"})
	_, err := gen.Generate(context.Background(), AvatarRequest{})
	if err == nil || !strings.Contains(err.Error(), "invalid prompt") {
		t.Fatalf("expected service message in error, got %v", err)
	}
}

func TestStabilityGenerateEmptyResponse(t *testing.T) {
	gen, _ := stabilityStub(t, http.StatusOK, map[string]any{"artifacts": []map[string]any{}})
	if _, err := gen.Generate(context.Background(), AvatarRequest{}); err == nil {
		t.Fatal("expected an error for an empty artifact list")
	}
}

func TestNewStabilityGeneratorRequiresKey(t *testing.T) {
	if _, err := NewStabilityGenerator(config.Default()); err == nil {
		t.Fatal("expected an error without an api key")
	}
	cfg := config.Default()
	cfg.StabilityAPIKey = "sk-test"
	if _, err := NewStabilityGenerator(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAvatarPrompts(t *testing.T) {
	prompt, negative := avatarPrompts(AvatarRequest{Gender: "man", Age: "30", Appearance: "tall, glasses"})
	if !strings.Contains(prompt, "30 year old man, tall, glasses") {
		t.Errorf("unexpected prompt %q", prompt)
	}
	if !strings.Contains(negative, "bad anatomy") {
		t.Errorf("unexpected negative prompt %q", negative)
	}
}
