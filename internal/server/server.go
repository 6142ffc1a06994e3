package server

import (
	"net/http"

	"github.com/ncoat48/mikichats/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	rooms    *RoomStore
	db       *gorm.DB
	cfg      config.Config
	sessions *sessionStore
	text     TextGenerator
	images   ImageGenerator
	host     ImageHost
}

func New(conn *gorm.DB, cfg config.Config, text TextGenerator, images ImageGenerator, host ImageHost) *Server {
	return &Server{
		rooms:    NewRoomStore(conn),
		db:       conn,
		cfg:      cfg,
		sessions: newSessionStore(conn, cfg.SessionSecret),
		text:     text,
		images:   images,
		host:     host,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /create", s.handleCreateView)
	mux.HandleFunc("POST /create", s.handleCreateRoom)
	mux.HandleFunc("POST /join", s.handleJoinRoom)
	mux.HandleFunc("GET /room/{code}", s.handleRoomView)
	mux.HandleFunc("POST /room/{code}", s.handlePostMessage)
	mux.HandleFunc("POST /generate-bot-image", s.handleGenerateBotImage)
	mux.HandleFunc("POST /upload-bot-image", s.handleUploadBotImage)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
