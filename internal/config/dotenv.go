package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	RoomCodeLength       int
	SessionSecret        string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	OpenAIMaxPromptToken int
	StabilityAPIKey      string
	StabilityEngine      string
	CloudinaryCloudName  string
	CloudinaryAPIKey     string
	CloudinaryAPISecret  string
}

func Default() Config {
	return Config{
		RoomCodeLength:       4,
		OpenAIBaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
		OpenAIModel:          "gemini-2.5-flash",
		OpenAIMaxPromptToken: 8000,
		StabilityEngine:      "stable-diffusion-xl-1024-v1-0",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("ROOM_CODE_LENGTH"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.RoomCodeLength = value
		}
	}
	if raw := os.Getenv("SESSION_SECRET"); raw != "" {
		cfg.SessionSecret = raw
	}
	if raw := os.Getenv("OPENAI_API_KEY"); raw != "" {
		cfg.OpenAIAPIKey = raw
	}
	if raw := os.Getenv("OPENAI_BASE_URL"); raw != "" {
		cfg.OpenAIBaseURL = raw
	}
	if raw := os.Getenv("OPENAI_MODEL"); raw != "" {
		cfg.OpenAIModel = raw
	}
	if raw := os.Getenv("OPENAI_MAX_PROMPT_TOKENS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.OpenAIMaxPromptToken = value
		}
	}
	if raw := os.Getenv("STABILITY_API_KEY"); raw != "" {
		cfg.StabilityAPIKey = raw
	}
	if raw := os.Getenv("STABILITY_ENGINE"); raw != "" {
		cfg.StabilityEngine = raw
	}
	if raw := os.Getenv("CLOUDINARY_CLOUD_NAME"); raw != "" {
		cfg.CloudinaryCloudName = raw
	}
	if raw := os.Getenv("CLOUDINARY_API_KEY"); raw != "" {
		cfg.CloudinaryAPIKey = raw
	}
	if raw := os.Getenv("CLOUDINARY_API_SECRET"); raw != "" {
		cfg.CloudinaryAPISecret = raw
	}
	return cfg
}
