package server

import (
	"fmt"
	"time"
)

// chatTurn is the outcome of one user message: the store update to apply
// and the derived score state.
type chatTurn struct {
	Update   RoomUpdate
	NewScore int
	Won      bool
}

// buildChatTurn assembles the single logical update for a successful model
// call: the user's message, the bot's reply, a system summary of the score
// movement, the clamped score write, and, when the score first reaches the
// win threshold, the one-way game_over transition plus a win announcement.
func buildChatTurn(room *Room, userID, nickname, messageText string, reply botReply, start, end time.Time) chatTurn {
	current := room.Users[userID].Score
	newScore := clampScore(current + reply.AffectionChange)

	messages := []Message{
		{User: userID, Text: messageText, Timestamp: start},
		{User: room.BotName, Text: reply.Response, Timestamp: end},
		{User: speakerSystem, Text: scoreSummary(nickname, reply.AffectionChange, newScore), Timestamp: end},
	}

	turn := chatTurn{
		Update: RoomUpdate{
			SetScores: map[string]int{userID: newScore},
		},
		NewScore: newScore,
	}

	if newScore >= winScore && !room.GameOver {
		over := true
		turn.Update.SetGameOver = &over
		turn.Won = true
		messages = append(messages, Message{
			User:      speakerSystem,
			Text:      fmt.Sprintf("GAME OVER! %s has won %s's affection!", nickname, room.BotName),
			Timestamp: end,
		})
	}

	turn.Update.AppendMessages = messages
	return turn
}

func scoreSummary(nickname string, delta, newScore int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("%s's affection went up by %d%%! (Now %d%%)", nickname, delta, newScore)
	case delta < 0:
		return fmt.Sprintf("%s's affection went down by %d%%! (Now %d%%)", nickname, -delta, newScore)
	default:
		return fmt.Sprintf("%s's affection didn't change. (Still %d%%)", nickname, newScore)
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > winScore {
		return winScore
	}
	return score
}
