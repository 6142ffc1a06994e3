package server

import (
	"fmt"
	"sort"
	"strings"
)

// buildBotPrompt renders the room state, the acting user's nickname, and the
// new message into the single instruction string sent to the text model.
// Output depends only on the inputs: users are listed in identifier order
// and only the ten chronologically-latest messages are included,
// oldest-first.
func buildBotPrompt(room *Room, nickname, messageText string) string {
	appearance := room.BotAppearance
	if appearance == "" {
		appearance = defaultAppearance
	}
	lines := []string{
		fmt.Sprintf("You are %s. Your personality is: %s.", room.BotName, room.BotPersonality),
		fmt.Sprintf("Your appearance is: %s", appearance),
		"You are in a role-playing game where multiple users are trying to win your affection.",
	}

	lines = append(lines, "\nCurrent affection levels:")
	if len(room.Users) == 0 {
		lines = append(lines, "No one is in the room yet.")
	} else {
		for _, id := range sortedUserIDs(room.Users) {
			user := room.Users[id]
			lines = append(lines, fmt.Sprintf("- %s: %d%%", user.Nickname, user.Score))
		}
	}

	lines = append(lines, fmt.Sprintf("\nThe current scenario: %s", room.StartScenario))
	lines = append(lines, "\nHere is the recent chat history (max 10):")
	for _, msg := range latestMessages(room.Messages, historyWindow) {
		lines = append(lines, fmt.Sprintf("%s: %s", speakerDisplay(room, msg.User), msg.Text))
	}

	lines = append(lines, "\n--- NEW MESSAGE ---")
	lines = append(lines, fmt.Sprintf("%s: %s", nickname, messageText))
	lines = append(lines, "\n--- YOUR TASK ---")
	lines = append(lines, fmt.Sprintf(
		"Based on this new message, you must do two things:"+
			"\n1.  **Respond** in character as %s."+
			"\n2.  **Evaluate** the user's message. How much did it change your affection for them?"+
			" The difficulty is %d/10."+
			"\nYou MUST reply in this exact JSON format (no markdown):"+
			"\n{"+
			"\n  \"response\": \"Your in-character reply here.\","+
			"\n  \"affection_change\": <number from -20 to 20>"+
			"\n}",
		room.BotName, room.Difficulty))

	return strings.Join(lines, "\n")
}

// latestMessages selects the n newest messages by timestamp and returns
// them oldest-first, regardless of the order they were stored in.
func latestMessages(messages []Message, n int) []Message {
	sorted := make([]Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// speakerDisplay resolves a stored sender identifier for the prompt: the
// bot's own name becomes "You", System stays as-is, and user identifiers
// resolve to the current nickname, falling back to the raw identifier when
// the user record is gone.
func speakerDisplay(room *Room, sender string) string {
	if sender == room.BotName {
		return "You"
	}
	if sender == speakerSystem {
		return speakerSystem
	}
	if user, ok := room.Users[sender]; ok {
		return user.Nickname
	}
	return sender
}

func sortedUserIDs(users map[string]UserState) []string {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
