package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

const fallbackReply = "I'm not sure what to say."

// botReply is the normalized result of one model call. AffectionChange is
// expected in [-20, 20] but is not clamped here.
type botReply struct {
	Response        string
	AffectionChange int
}

// parseBotReply extracts the JSON object embedded in free-form model output.
// It takes the greedy brace-delimited block (first '{' to last '}') and
// decodes it; when no block exists, the JSON is malformed, or the affection
// value is not numeric, the raw text is returned verbatim as the response
// with a zero affection change. It never fails.
func parseBotReply(raw string) botReply {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return botReply{Response: raw}
	}

	var payload struct {
		Response        *string         `json:"response"`
		AffectionChange json.RawMessage `json:"affection_change"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return botReply{Response: raw}
	}

	reply := botReply{Response: fallbackReply}
	if payload.Response != nil {
		reply.Response = *payload.Response
	}
	if len(payload.AffectionChange) > 0 {
		delta, err := parseAffectionChange(payload.AffectionChange)
		if err != nil {
			return botReply{Response: raw}
		}
		reply.AffectionChange = delta
	}
	return reply
}

func parseAffectionChange(raw json.RawMessage) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, errors.New("affection_change is not a number")
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return int(number), nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		value, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return 0, err
		}
		return value, nil
	}
	return 0, errors.New("affection_change is not a number")
}
