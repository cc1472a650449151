package services

import (
	"time"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"

	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

// TelegramProfile is what the transport knows about the sender.
type TelegramProfile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

func (s *ParticipantService) GetOrCreate(profile TelegramProfile) (*models.Participant, bool, error) {
	var participant models.Participant
	if err := s.db.Where("telegram_id = ?", profile.TelegramID).First(&participant).Error; err == nil {
		return &participant, false, nil
	}

	participant = models.Participant{
		TelegramID: profile.TelegramID,
		Username:   profile.Username,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Language:   i18n.DefaultLanguage,
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, false, err
	}
	return &participant, true, nil
}

func (s *ParticipantService) Get(telegramID int64) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.Where("telegram_id = ?", telegramID).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *ParticipantService) SetLanguage(telegramID int64, language string) (*models.Participant, error) {
	participant, err := s.Get(telegramID)
	if err != nil {
		return nil, err
	}

	participant.Language = language
	participant.UpdatedAt = time.Now()
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}
