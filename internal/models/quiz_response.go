package models

import "time"

// QuizResponse is one run through the intake questionnaire by one
// participant. Answers live in the answers table keyed by question id;
// the generated report is attached once and never silently regenerated.
type QuizResponse struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	SessionID     string      `gorm:"size:36;not null;uniqueIndex" json:"session_id"`
	ParticipantID uint        `gorm:"not null;index" json:"participant_id"`
	Participant   Participant `gorm:"foreignKey:ParticipantID" json:"-"`
	Language      string      `gorm:"size:5;not null;default:'uk'" json:"language"`
	IsComplete    bool        `gorm:"not null;default:false" json:"is_complete"`
	Report        string      `gorm:"type:text" json:"report,omitempty"`
	Answers       []Answer    `gorm:"foreignKey:QuizResponseID" json:"answers,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type Answer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QuizResponseID uint      `gorm:"not null;uniqueIndex:idx_response_question" json:"quiz_response_id"`
	QuestionID     string    `gorm:"size:64;not null;uniqueIndex:idx_response_question" json:"question_id"`
	Value          string    `gorm:"type:text;not null" json:"value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
