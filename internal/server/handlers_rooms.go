package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ncoat48/mikichats/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	flash := s.sessions.PopFlash(w, r)
	nickname := s.sessions.Nickname(w, r)
	templ.Handler(web.Home(flash, nickname)).ServeHTTP(w, r)
}

func (s *Server) handleCreateView(w http.ResponseWriter, r *http.Request) {
	nickname := s.sessions.Nickname(w, r)
	templ.Handler(web.CreateView(nickname)).ServeHTTP(w, r)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	userID := s.sessions.UserID(w, r)

	nickname := normalizeText(r.FormValue("nickname"))
	if nickname == "" {
		nickname = "Host"
	}
	s.sessions.SetNickname(w, r, nickname)

	code, err := newRoomCode(s.rooms, s.cfg.RoomCodeLength)
	if err != nil {
		log.Printf("room code generation failed err=%v", err)
		s.sessions.SetFlash(w, r, "Error: Could not create the room. Try again.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	botName := valueOr(r.FormValue("bot_name"), defaultBotName)
	scenario := valueOr(r.FormValue("start_scenario"), defaultScenario)
	now := time.Now().UTC()

	room := &Room{
		Code:           code,
		BotName:        botName,
		BotPersonality: valueOr(r.FormValue("bot_personality"), defaultBotPersonality),
		BotAppearance:  valueOr(r.FormValue("appearance"), defaultAppearance),
		BotImageURL:    valueOr(r.FormValue("bot_image_url"), defaultBotImageURL),
		StartScenario:  scenario,
		Difficulty:     parseDifficulty(r.FormValue("difficulty")),
		Users: map[string]UserState{
			userID: {Nickname: nickname, Score: 0},
		},
		Messages: []Message{
			{User: speakerSystem, Text: fmt.Sprintf("Game started! %s created the room.", nickname), Timestamp: now},
			{User: botName, Text: scenario, Timestamp: now},
		},
	}

	if err := s.rooms.Create(room); err != nil {
		log.Printf("room create failed room_code=%s err=%v", code, err)
		s.sessions.SetFlash(w, r, "Error: Could not create the room. Try again.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	log.Printf("room created room_code=%s user_id=%s bot_name=%s difficulty=%d", code, userID, botName, room.Difficulty)
	http.Redirect(w, r, "/room/"+code, http.StatusFound)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	code := normalizeText(r.FormValue("room_code"))
	nickname := normalizeText(r.FormValue("nickname"))
	if nickname == "" {
		nickname = newGuestNickname()
	}

	room, err := s.rooms.Get(code)
	if err != nil {
		if !errors.Is(err, ErrRoomNotFound) {
			log.Printf("room lookup failed room_code=%s err=%v", code, err)
		}
		s.sessions.SetFlash(w, r, "Error: Room code not found.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if room.GameOver {
		s.sessions.SetFlash(w, r, "Error: This game has already ended.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	userID := s.sessions.UserID(w, r)
	s.sessions.SetNickname(w, r, nickname)

	// rejoining with a known identifier is a no-op
	if _, ok := room.Users[userID]; !ok {
		err := s.rooms.Update(code, RoomUpdate{
			SetUsers: map[string]UserState{
				userID: {Nickname: nickname, Score: 0},
			},
			AppendMessages: []Message{
				{User: speakerSystem, Text: fmt.Sprintf("%s has joined the game!", nickname), Timestamp: time.Now().UTC()},
			},
		})
		if err != nil {
			log.Printf("room join failed room_code=%s user_id=%s err=%v", code, userID, err)
			s.sessions.SetFlash(w, r, "Error: Could not join the room. Try again.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		log.Printf("user joined room_code=%s user_id=%s nickname=%s", code, userID, nickname)
	}

	http.Redirect(w, r, "/room/"+code, http.StatusFound)
}

func (s *Server) handleRoomView(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	room, err := s.rooms.Get(code)
	if err != nil {
		s.sessions.SetFlash(w, r, "Error: Room not found.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	userID := s.sessions.UserID(w, r)
	if _, ok := room.Users[userID]; !ok {
		s.sessions.SetFlash(w, r, "Error: You are not part of this room. Please join first.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	templ.Handler(web.RoomView(buildRoomPage(room, userID))).ServeHTTP(w, r)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	room, err := s.rooms.Get(code)
	if err != nil {
		s.sessions.SetFlash(w, r, "Error: Room not found.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	userID := s.sessions.UserID(w, r)
	nickname := s.sessions.Nickname(w, r)
	if nickname == "" {
		nickname = "Anonymous"
	}
	if _, ok := room.Users[userID]; !ok {
		s.sessions.SetFlash(w, r, "Error: You are not part of this room. Please join first.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if room.GameOver {
		writeFailure(w, http.StatusBadRequest, "Game is over")
		return
	}
	messageText := r.FormValue("message")
	if messageText == "" {
		writeFailure(w, http.StatusBadRequest, "Empty message")
		return
	}

	start := time.Now().UTC()
	raw, err := s.generateReply(r, room, nickname, messageText)
	if err != nil {
		log.Printf("chat generation failed room_code=%s user_id=%s err=%v", code, userID, err)
		apology := fmt.Sprintf("Sorry, %s, I'm having trouble thinking. (Error: %v)", nickname, err)
		updateErr := s.rooms.Update(code, RoomUpdate{
			AppendMessages: []Message{
				{User: userID, Text: messageText, Timestamp: start},
				{User: speakerSystem, Text: apology, Timestamp: time.Now().UTC()},
			},
		})
		if updateErr != nil {
			log.Printf("apology write failed room_code=%s err=%v", code, updateErr)
		}
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	reply := parseBotReply(raw)
	turn := buildChatTurn(room, userID, nickname, messageText, reply, start, time.Now().UTC())
	if err := s.rooms.Update(code, turn.Update); err != nil {
		log.Printf("chat turn write failed room_code=%s user_id=%s err=%v", code, userID, err)
		writeFailure(w, http.StatusInternalServerError, "failed to save the chat turn")
		return
	}

	log.Printf("chat turn room_code=%s user_id=%s delta=%d score=%d won=%t", code, userID, reply.AffectionChange, turn.NewScore, turn.Won)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) generateReply(r *http.Request, room *Room, nickname, messageText string) (string, error) {
	if s.text == nil {
		return "", errors.New("text model is not configured")
	}
	prompt := buildBotPrompt(room, nickname, messageText)
	return s.text.Generate(r.Context(), prompt)
}

func newGuestNickname() string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "Guest"
	}
	n := int(buf[0])<<8 | int(buf[1])
	return fmt.Sprintf("Guest_%d", 100+n%900)
}

func buildRoomPage(room *Room, userID string) web.RoomPage {
	page := web.RoomPage{
		Code:          room.Code,
		BotName:       room.BotName,
		BotImageURL:   room.BotImageURL,
		StartScenario: room.StartScenario,
		Difficulty:    room.Difficulty,
		GameOver:      room.GameOver,
	}
	for _, id := range sortedUserIDs(room.Users) {
		user := room.Users[id]
		page.Users = append(page.Users, web.RoomUser{
			Nickname: user.Nickname,
			Score:    user.Score,
			IsYou:    id == userID,
		})
	}
	for _, msg := range latestMessages(room.Messages, len(room.Messages)) {
		kind := "user"
		speaker := msg.User
		switch msg.User {
		case speakerSystem:
			kind = "system"
		case room.BotName:
			kind = "bot"
		default:
			if msg.User == userID {
				kind = "you"
			}
			if user, ok := room.Users[msg.User]; ok {
				speaker = user.Nickname
			}
		}
		page.Messages = append(page.Messages, web.RoomMessage{
			Speaker: speaker,
			Text:    msg.Text,
			Kind:    kind,
		})
	}
	return page
}
