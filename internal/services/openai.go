package services

import (
	"context"
	"errors"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the external text-generation collaborator. The report
// orchestrator depends on this interface; tests stub it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type OpenAIService struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	topP        float32
}

func NewOpenAIService(cfg *config.Config) *OpenAIService {
	return &OpenAIService{
		client:      openai.NewClient(cfg.OpenAIKey),
		model:       cfg.OpenAIModel,
		temperature: cfg.OpenAITemperature,
		maxTokens:   cfg.OpenAIMaxTokens,
		topP:        cfg.OpenAITopP,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		TopP:        s.topP,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
