package web

type RoomUser struct {
	Nickname string
	Score    int
	IsYou    bool
}

type RoomMessage struct {
	Speaker string
	Text    string
	Kind    string // "you", "user", "bot", or "system"
}

type RoomPage struct {
	Code          string
	BotName       string
	BotImageURL   string
	StartScenario string
	Difficulty    int
	GameOver      bool
	Users         []RoomUser
	Messages      []RoomMessage
}
