package db

import (
	"time"

	"gorm.io/datatypes"
)

// Room is one game session document. The users map and the append-only
// message log are stored as JSONB so the whole room reads back in one row.
type Room struct {
	Code           string         `gorm:"primaryKey;size:16"`
	BotName        string         `gorm:"size:64;not null"`
	BotPersonality string         `gorm:"size:512;not null"`
	BotAppearance  string         `gorm:"size:512;not null"`
	BotImageURL    string         `gorm:"size:512"`
	StartScenario  string         `gorm:"size:1024;not null"`
	Difficulty     int            `gorm:"not null"`
	GameOver       bool           `gorm:"not null;default:false"`
	Users          datatypes.JSON `gorm:"type:jsonb;not null"`
	Messages       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
}
