package services

import (
	"errors"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSessionNotFound marks the data-consistency anomaly where a position
// references a session the store no longer has. Callers recover by
// resetting the participant to a clean state.
var ErrSessionNotFound = errors.New("quiz session not found")

// SessionStore is the durable side of a quiz conversation. Implemented
// by ResponseService; stubbed in engine tests.
type SessionStore interface {
	CreateSession(participantID uint, language string) (*models.QuizResponse, error)
	GetBySessionID(sessionID string) (*models.QuizResponse, error)
	GetActiveForParticipant(participantID uint) (*models.QuizResponse, error)
	SaveAnswer(sessionID, questionID, value string) error
	Answers(sessionID string) (map[string]string, error)
	MarkComplete(sessionID string) error
}

type ResponseService struct {
	db *gorm.DB
}

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db}
}

func (s *ResponseService) CreateSession(participantID uint, language string) (*models.QuizResponse, error) {
	response := models.QuizResponse{
		SessionID:     uuid.NewString(),
		ParticipantID: participantID,
		Language:      language,
	}
	if err := s.db.Create(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *ResponseService) GetBySessionID(sessionID string) (*models.QuizResponse, error) {
	var response models.QuizResponse
	if err := s.db.Where("session_id = ?", sessionID).First(&response).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	return &response, nil
}

// GetActiveForParticipant returns the most recent incomplete session, or
// ErrSessionNotFound when there is none.
func (s *ResponseService) GetActiveForParticipant(participantID uint) (*models.QuizResponse, error) {
	var response models.QuizResponse
	err := s.db.Where("participant_id = ? AND is_complete = ?", participantID, false).
		Order("created_at DESC").
		First(&response).Error
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return &response, nil
}

// SaveAnswer upserts the answer for (session, question); a back-navigated
// participant re-answering a question overwrites the stored value.
func (s *ResponseService) SaveAnswer(sessionID, questionID, value string) error {
	response, err := s.GetBySessionID(sessionID)
	if err != nil {
		return err
	}

	var existing models.Answer
	if err := s.db.Where("quiz_response_id = ? AND question_id = ?", response.ID, questionID).
		First(&existing).Error; err == nil {
		existing.Value = value
		return s.db.Save(&existing).Error
	}

	answer := models.Answer{
		QuizResponseID: response.ID,
		QuestionID:     questionID,
		Value:          value,
	}
	return s.db.Create(&answer).Error
}

func (s *ResponseService) Answers(sessionID string) (map[string]string, error) {
	response, err := s.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	var answers []models.Answer
	if err := s.db.Where("quiz_response_id = ?", response.ID).Find(&answers).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string, len(answers))
	for _, a := range answers {
		result[a.QuestionID] = a.Value
	}
	return result, nil
}

func (s *ResponseService) MarkComplete(sessionID string) error {
	res := s.db.Model(&models.QuizResponse{}).
		Where("session_id = ?", sessionID).
		Update("is_complete", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *ResponseService) AttachReport(sessionID, report string) error {
	res := s.db.Model(&models.QuizResponse{}).
		Where("session_id = ?", sessionID).
		Update("report", report)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListCompletedForParticipant returns completed sessions newest first.
func (s *ResponseService) ListCompletedForParticipant(participantID uint) ([]models.QuizResponse, error) {
	var responses []models.QuizResponse
	err := s.db.Where("participant_id = ? AND is_complete = ?", participantID, true).
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListCompleted returns all completed sessions newest first, for the
// staff REST surface.
func (s *ResponseService) ListCompleted() ([]models.QuizResponse, error) {
	var responses []models.QuizResponse
	err := s.db.Where("is_complete = ?", true).
		Preload("Participant").
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
