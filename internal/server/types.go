package server

import "time"

const (
	speakerSystem = "System"

	defaultBotName        = "Bot"
	defaultBotPersonality = "friendly"
	defaultScenario       = "You meet at a park."
	defaultAppearance     = "not specified"
	defaultBotImageURL    = "https://placehold.co/100x100/4a5568/FFFFFF?text=Bot"

	winScore      = 100
	historyWindow = 10

	avatarFolder = "bot_avatars"
)

// Room is the full state of one game session, keyed by its short numeric
// code. Persona fields and the scenario are immutable after creation; only
// user scores, game_over, and the message log change afterwards.
type Room struct {
	Code           string
	BotName        string
	BotPersonality string
	BotAppearance  string
	BotImageURL    string
	StartScenario  string
	Difficulty     int
	GameOver       bool
	Users          map[string]UserState
	Messages       []Message
}

type UserState struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

type Message struct {
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
