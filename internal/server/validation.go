package server

import (
	"strconv"
	"strings"
)

const (
	defaultDifficulty = 5
	maxDifficulty     = 10
)

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func valueOr(text, fallback string) string {
	if normalizeText(text) == "" {
		return fallback
	}
	return text
}

// parseDifficulty reads the create-form difficulty, defaulting to 5 and
// clamping to the 0..10 range the prompt promises.
func parseDifficulty(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultDifficulty
	}
	if value < 0 {
		return 0
	}
	if value > maxDifficulty {
		return maxDifficulty
	}
	return value
}
