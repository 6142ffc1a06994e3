package main

import (
	"log"
	"net/http"
	"os"

	"github.com/ncoat48/mikichats/internal/config"
	"github.com/ncoat48/mikichats/internal/db"
	"github.com/ncoat48/mikichats/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		opened, err := db.Open()
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.Migrate(opened); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		conn = opened
	} else {
		log.Println("DATABASE_URL not set, rooms and sessions are held in memory")
	}

	text, err := server.NewOpenAIGenerator(cfg)
	if err != nil {
		log.Printf("text model disabled: %v", err)
	}
	images, err := server.NewStabilityGenerator(cfg)
	if err != nil {
		log.Printf("image generation disabled: %v", err)
	}
	host, err := server.NewCloudinaryHost(cfg)
	if err != nil {
		log.Printf("image hosting disabled: %v", err)
	}

	srv := server.New(conn, cfg, text, images, host)
	log.Printf("mikichats server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
