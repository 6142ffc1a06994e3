package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ncoat48/mikichats/internal/db"

	"gorm.io/gorm"
)

const sessionCookie = "mc_session"

// sessionStore keeps per-browser identity: a random user_NNNN identifier,
// the chosen nickname, and a one-shot flash message. Backed by Postgres
// when a connection is provided, in memory otherwise. The cookie value is
// HMAC-signed when a secret is configured.
type sessionStore struct {
	db       *gorm.DB
	secret   string
	mu       sync.Mutex
	sessions map[string]sessionData
}

type sessionData struct {
	UserID   string
	Nickname string
	Flash    string
}

func newSessionStore(conn *gorm.DB, secret string) *sessionStore {
	return &sessionStore{
		db:       conn,
		secret:   secret,
		sessions: make(map[string]sessionData),
	}
}

// UserID returns the session's user identifier, assigning one on first use.
// The identifier is a fixed prefix plus four random digits; a collision
// with another live session is possible and not checked.
func (s *sessionStore) UserID(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		data := s.sessions[id]
		if data.UserID == "" {
			data.UserID = newUserID()
			s.sessions[id] = data
		}
		return data.UserID
	}
	record := s.loadRecord(id)
	if record.UserID == "" {
		record.UserID = newUserID()
		_ = s.db.Save(&record).Error
	}
	return record.UserID
}

func (s *sessionStore) Nickname(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sessions[id].Nickname
	}
	return s.loadRecord(id).Nickname
}

func (s *sessionStore) SetNickname(w http.ResponseWriter, r *http.Request, nickname string) {
	if strings.TrimSpace(nickname) == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		data := s.sessions[id]
		data.Nickname = nickname
		s.sessions[id] = data
		s.mu.Unlock()
		return
	}
	record := s.loadRecord(id)
	record.Nickname = nickname
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		data := s.sessions[id]
		data.Flash = message
		s.sessions[id] = data
		s.mu.Unlock()
		return
	}
	record := s.loadRecord(id)
	record.Flash = message
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) PopFlash(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		data := s.sessions[id]
		message := data.Flash
		data.Flash = ""
		s.sessions[id] = data
		return message
	}
	record := s.loadRecord(id)
	if record.Flash == "" {
		return ""
	}
	message := record.Flash
	record.Flash = ""
	_ = s.db.Save(&record).Error
	return message
}

func (s *sessionStore) loadRecord(id string) db.Session {
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		record = db.Session{ID: id}
	}
	return record
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	for _, cookie := range r.Cookies() {
		if cookie.Name != sessionCookie || cookie.Value == "" {
			continue
		}
		if id, ok := s.verifyCookie(cookie.Value); ok {
			return id
		}
	}
	id := newSessionID()
	signed := s.signCookie(id)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// later accessor calls in the same request must resolve to this session
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: signed})
	return id
}

func (s *sessionStore) signCookie(id string) string {
	if s.secret == "" {
		return id
	}
	return id + "." + s.signature(id)
}

func (s *sessionStore) verifyCookie(value string) (string, bool) {
	if s.secret == "" {
		if strings.Contains(value, ".") {
			return "", false
		}
		return value, true
	}
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.signature(id))) {
		return "", false
	}
	return id, true
}

func (s *sessionStore) signature(id string) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}

func newUserID() string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("user_%d", 1000+time.Now().UnixNano()%9000)
	}
	n := int(buf[0])<<8 | int(buf[1])
	return fmt.Sprintf("user_%d", 1000+n%9000)
}
