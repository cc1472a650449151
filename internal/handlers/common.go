package handlers

import "github.com/MrVulpesTech/hospital-quiz-bot/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Participant = models.Participant
type QuizResponse = models.QuizResponse
