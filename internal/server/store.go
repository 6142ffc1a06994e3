package server

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/ncoat48/mikichats/internal/db"

	"gorm.io/gorm"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomUpdate is one logical partial update against a room document: score
// and user-entry setters plus message appends, applied together in a single
// store call. The backing store applies it read-modify-write; concurrent
// updates to the same room are last-write-wins, matching the isolation the
// original store call offered.
type RoomUpdate struct {
	SetUsers       map[string]UserState
	SetScores      map[string]int
	SetGameOver    *bool
	AppendMessages []Message
}

// RoomStore holds room documents in Postgres when a connection is provided,
// or in memory otherwise.
type RoomStore struct {
	db    *gorm.DB
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRoomStore(conn *gorm.DB) *RoomStore {
	return &RoomStore{
		db:    conn,
		rooms: make(map[string]*Room),
	}
}

func (s *RoomStore) Exists(code string) (bool, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, ok := s.rooms[code]
		return ok, nil
	}
	var count int64
	if err := s.db.Model(&db.Room{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get returns a snapshot of the room. Callers may mutate the snapshot
// freely; nothing is written back without an explicit Create or Update.
func (s *RoomStore) Get(code string) (*Room, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		room, ok := s.rooms[code]
		if !ok {
			return nil, ErrRoomNotFound
		}
		return copyRoom(room), nil
	}
	var record db.Room
	if err := s.db.Where("code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return decodeRoom(&record)
}

// Create stores a new room document. A code collision overwrites the
// existing document, as the original store's set did.
func (s *RoomStore) Create(room *Room) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rooms[room.Code] = copyRoom(room)
		return nil
	}
	record, err := encodeRoom(room)
	if err != nil {
		return err
	}
	return s.db.Save(record).Error
}

func (s *RoomStore) Update(code string, update RoomUpdate) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		room, ok := s.rooms[code]
		if !ok {
			return ErrRoomNotFound
		}
		applyRoomUpdate(room, update)
		return nil
	}
	var record db.Room
	if err := s.db.Where("code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	room, err := decodeRoom(&record)
	if err != nil {
		return err
	}
	applyRoomUpdate(room, update)
	updated, err := encodeRoom(room)
	if err != nil {
		return err
	}
	updated.CreatedAt = record.CreatedAt
	return s.db.Save(updated).Error
}

func applyRoomUpdate(room *Room, update RoomUpdate) {
	if room.Users == nil {
		room.Users = make(map[string]UserState)
	}
	for id, user := range update.SetUsers {
		room.Users[id] = user
	}
	for id, score := range update.SetScores {
		user := room.Users[id]
		user.Score = score
		room.Users[id] = user
	}
	if update.SetGameOver != nil {
		room.GameOver = *update.SetGameOver
	}
	room.Messages = append(room.Messages, update.AppendMessages...)
}

func copyRoom(room *Room) *Room {
	dup := *room
	dup.Users = make(map[string]UserState, len(room.Users))
	for id, user := range room.Users {
		dup.Users[id] = user
	}
	dup.Messages = make([]Message, len(room.Messages))
	copy(dup.Messages, room.Messages)
	return &dup
}

func encodeRoom(room *Room) (*db.Room, error) {
	users, err := json.Marshal(room.Users)
	if err != nil {
		return nil, err
	}
	messages, err := json.Marshal(room.Messages)
	if err != nil {
		return nil, err
	}
	return &db.Room{
		Code:           room.Code,
		BotName:        room.BotName,
		BotPersonality: room.BotPersonality,
		BotAppearance:  room.BotAppearance,
		BotImageURL:    room.BotImageURL,
		StartScenario:  room.StartScenario,
		Difficulty:     room.Difficulty,
		GameOver:       room.GameOver,
		Users:          users,
		Messages:       messages,
	}, nil
}

func decodeRoom(record *db.Room) (*Room, error) {
	room := &Room{
		Code:           record.Code,
		BotName:        record.BotName,
		BotPersonality: record.BotPersonality,
		BotAppearance:  record.BotAppearance,
		BotImageURL:    record.BotImageURL,
		StartScenario:  record.StartScenario,
		Difficulty:     record.Difficulty,
		GameOver:       record.GameOver,
		Users:          make(map[string]UserState),
	}
	if len(record.Users) > 0 {
		if err := json.Unmarshal(record.Users, &room.Users); err != nil {
			return nil, err
		}
	}
	if len(record.Messages) > 0 {
		if err := json.Unmarshal(record.Messages, &room.Messages); err != nil {
			return nil, err
		}
	}
	return room, nil
}
