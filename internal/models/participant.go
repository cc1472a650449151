package models

import "time"

const (
	LanguageUkrainian = "uk"
	LanguageGerman    = "de"
)

type Participant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	Username   string    `gorm:"size:100" json:"username,omitempty"`
	FirstName  string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName   string    `gorm:"size:100" json:"last_name,omitempty"`
	Language   string    `gorm:"size:5;not null;default:'uk'" json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName picks the best available display name for messages.
func (p *Participant) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.Username != "":
		return p.Username
	default:
		return "Пацієнт"
	}
}
