package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ncoat48/mikichats/internal/config"
)

// ErrImageFiltered reports that the image service's safety filter rejected
// the generation.
var ErrImageFiltered = errors.New("image generation was filtered for safety")

type AvatarRequest struct {
	Gender     string
	Age        string
	Appearance string
}

// ImageGenerator produces raw avatar image bytes from a persona description.
type ImageGenerator interface {
	Generate(ctx context.Context, req AvatarRequest) ([]byte, error)
}

const stabilityBaseURL = "https://api.stability.ai"

type stabilityGenerator struct {
	apiKey  string
	engine  string
	baseURL string
}

func NewStabilityGenerator(cfg config.Config) (ImageGenerator, error) {
	if strings.TrimSpace(cfg.StabilityAPIKey) == "" {
		return nil, errors.New("STABILITY_API_KEY is not set")
	}
	return &stabilityGenerator{
		apiKey:  strings.TrimSpace(cfg.StabilityAPIKey),
		engine:  cfg.StabilityEngine,
		baseURL: stabilityBaseURL,
	}, nil
}

type stabilityTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityRequest struct {
	TextPrompts []stabilityTextPrompt `json:"text_prompts"`
	StylePreset string                `json:"style_preset"`
	Steps       int                   `json:"steps"`
	CfgScale    float64               `json:"cfg_scale"`
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Samples     int                   `json:"samples"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
	Message string `json:"message"`
}

func (g *stabilityGenerator) Generate(ctx context.Context, req AvatarRequest) ([]byte, error) {
	prompt, negative := avatarPrompts(req)

	payload, err := json.Marshal(stabilityRequest{
		TextPrompts: []stabilityTextPrompt{
			{Text: prompt, Weight: 1},
			{Text: negative, Weight: -1},
		},
		StylePreset: "anime",
		Steps:       30,
		CfgScale:    7,
		Width:       512,
		Height:      512,
		Samples:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build image request")
	}

	reqCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", g.baseURL, g.engine)
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build image request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach image service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image response")
	}

	var parsed stabilityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse image response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Message != "" {
			return nil, fmt.Errorf("image service error: %s", parsed.Message)
		}
		return nil, fmt.Errorf("image request failed (%d)", resp.StatusCode)
	}

	for _, artifact := range parsed.Artifacts {
		if artifact.FinishReason == "CONTENT_FILTERED" {
			return nil, ErrImageFiltered
		}
		if artifact.Base64 == "" {
			continue
		}
		image, err := base64.StdEncoding.DecodeString(artifact.Base64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data")
		}
		return image, nil
	}
	return nil, errors.New("no image was generated")
}

func avatarPrompts(req AvatarRequest) (prompt, negative string) {
	prompt = fmt.Sprintf(
		"A beautiful portrait of a %s year old %s, %s. digital art, anime style, detailed face, cinematic lighting, high quality",
		req.Age, req.Gender, req.Appearance)
	negative = "blurry, deformed, ugly, bad anatomy, mutated, extra limbs, disfigured"
	return prompt, negative
}
