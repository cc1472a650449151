package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"
)

// ErrNotComplete rejects report generation for a session that has not
// been confirmed by the participant.
var ErrNotComplete = errors.New("quiz session is not complete")

// ReportStore is the slice of the session store the orchestrator needs.
type ReportStore interface {
	GetBySessionID(sessionID string) (*models.QuizResponse, error)
	Answers(sessionID string) (map[string]string, error)
	AttachReport(sessionID, report string) error
}

// ReportService turns a completed answer set into a narrative report via
// the external text-generation collaborator and stores it on the session.
type ReportService struct {
	store   ReportStore
	catalog *Catalog
	ai      Completer
	prompts *PromptSet
}

func NewReportService(store ReportStore, catalog *Catalog, ai Completer, prompts *PromptSet) *ReportService {
	return &ReportService{store: store, catalog: catalog, ai: ai, prompts: prompts}
}

// Generate produces and stores the report for a completed session. On
// collaborator failure the session's report stays unset so a later
// GetOrGenerate retries.
func (s *ReportService) Generate(ctx context.Context, session *models.QuizResponse, useAlternative bool) (string, error) {
	if !session.IsComplete {
		return "", ErrNotComplete
	}

	answers, err := s.store.Answers(session.SessionID)
	if err != nil {
		return "", err
	}

	patientData := s.formatAnswers(session.Language, answers)
	userPrompt, err := s.prompts.BuildUserPrompt(patientData, useAlternative)
	if err != nil {
		return "", err
	}

	report, err := s.ai.Complete(ctx, s.prompts.System, userPrompt)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	if err := s.store.AttachReport(session.SessionID, report); err != nil {
		return "", err
	}

	log.Printf("[Report] generated report for session %s", session.SessionID)
	return report, nil
}

// GetOrGenerate returns the stored report verbatim when present; it
// never regenerates silently.
func (s *ReportService) GetOrGenerate(ctx context.Context, sessionID string) (string, error) {
	session, err := s.store.GetBySessionID(sessionID)
	if err != nil {
		return "", err
	}
	if session.Report != "" {
		return session.Report, nil
	}
	return s.Generate(ctx, session, false)
}

// formatAnswers renders one "question: answer" line per stored answer,
// in catalog order, resolving ids to display text. Answers whose id has
// drifted out of the catalog fall back to the humanized id.
func (s *ReportService) formatAnswers(lang string, answers map[string]string) string {
	var lines []string
	seen := make(map[string]bool, len(answers))

	for _, q := range s.catalog.Questions(lang) {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", q.Text, answer))
		seen[q.ID] = true
	}

	for id, answer := range answers {
		if !seen[id] {
			lines = append(lines, fmt.Sprintf("%s: %s", humanizeID(id), answer))
		}
	}

	return strings.Join(lines, "\n")
}

func humanizeID(id string) string {
	text := strings.ReplaceAll(id, "_", " ")
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// maxMessageLength is Telegram's practical limit per message, minus
// headroom for the part header.
const maxMessageLength = 4000

// FormatReportMessages renders a report into one or more transport
// messages, splitting long reports on paragraph boundaries.
func FormatReportMessages(lang, report string) []string {
	header := i18n.T(lang, "report.header")

	if len(report) <= maxMessageLength {
		return []string{fmt.Sprintf("<b>%s</b>\n\n%s", header, report)}
	}

	parts := splitLongText(report, maxMessageLength)
	messages := make([]string, len(parts))
	for i, part := range parts {
		key := "report.part"
		if i > 0 {
			key = "report.part_continued"
		}
		suffix := fmt.Sprintf(i18n.T(lang, key), i+1, len(parts))
		messages[i] = fmt.Sprintf("<b>%s</b> %s\n\n%s", header, suffix, part)
	}
	return messages
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

func splitLongText(text string, maxLength int) []string {
	if len(text) <= maxLength {
		return []string{text}
	}

	var parts []string
	current := ""

	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if len(current)+len(paragraph)+2 > maxLength && current != "" {
			parts = append(parts, strings.TrimSpace(current))
			current = paragraph + "\n\n"
		} else {
			current += paragraph + "\n\n"
		}
	}
	if current != "" {
		parts = append(parts, strings.TrimSpace(current))
	}
	return parts
}
