package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/config"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
)

// PositionState tags where a conversation is within the questionnaire.
type PositionState string

const (
	StateAnswering        PositionState = "answering"
	StateAwaitingFollowUp PositionState = "awaiting_follow_up"
	StateConfirming       PositionState = "confirming"
	StateGeneratingReport PositionState = "generating_report"
	StateViewingReport    PositionState = "viewing_report"
)

// Position is the per-participant cursor. The transport layer stores it
// between turns and hands it back verbatim.
type Position struct {
	State            PositionState `json:"state"`
	QuestionIndex    int           `json:"question_index"`
	QuestionID       string        `json:"question_id"`
	SessionID        string        `json:"session_id"`
	Language         string        `json:"language"`
	AwaitingFollowUp bool          `json:"awaiting_follow_up"`
}

// KeyboardKind tells the transport which quick-reply set to render
// alongside a message.
type KeyboardKind int

const (
	KeyboardNone KeyboardKind = iota
	KeyboardOptions
	KeyboardCancel
	KeyboardConfirm
	KeyboardMainMenu
	KeyboardReportActions
)

type Reply struct {
	Text     string
	Keyboard KeyboardKind
	Options  []string
}

// Turn is the outcome of processing one inbound message. A nil Position
// means the conversation state must be cleared. GenerateReport asks the
// caller to start report generation for Position.SessionID and feed the
// result back through FinishReport.
type Turn struct {
	Position       *Position
	Replies        []Reply
	GenerateReport bool
}

// QuizEngine is the quiz conversation state machine. It is
// transport-agnostic: it consumes a Position plus raw input and produces
// the next Position plus replies, touching only the session store.
type QuizEngine struct {
	catalog       *Catalog
	store         SessionStore
	restartPolicy string
}

func NewQuizEngine(catalog *Catalog, store SessionStore, restartPolicy string) *QuizEngine {
	return &QuizEngine{catalog: catalog, store: store, restartPolicy: restartPolicy}
}

// Start begins a questionnaire for a participant. Depending on the
// restart policy an unfinished session is either silently abandoned or
// resumed at its first unanswered question.
func (e *QuizEngine) Start(participantID uint, lang string) (Turn, error) {
	if e.catalog.Count(lang) == 0 {
		return Turn{Replies: []Reply{{
			Text:     i18n.T(lang, "quiz.unavailable"),
			Keyboard: KeyboardMainMenu,
		}}}, nil
	}

	if e.restartPolicy == config.RestartPolicyResume {
		if turn, ok := e.resume(participantID, lang); ok {
			return turn, nil
		}
	}

	session, err := e.store.CreateSession(participantID, lang)
	if err != nil {
		return Turn{}, fmt.Errorf("create session: %w", err)
	}

	first, _ := e.catalog.ByIndex(lang, 0)
	pos := Position{
		State:         StateAnswering,
		QuestionIndex: 0,
		QuestionID:    first.ID,
		SessionID:     session.SessionID,
		Language:      lang,
	}

	replies := []Reply{
		{Text: i18n.T(lang, "quiz.intro")},
		e.questionReply(lang, first, 0),
	}
	return Turn{Position: &pos, Replies: replies}, nil
}

func (e *QuizEngine) resume(participantID uint, lang string) (Turn, bool) {
	active, err := e.store.GetActiveForParticipant(participantID)
	if err != nil {
		return Turn{}, false
	}
	answers, err := e.store.Answers(active.SessionID)
	if err != nil {
		return Turn{}, false
	}

	index := 0
	for i, q := range e.catalog.Questions(lang) {
		index = i
		if _, answered := answers[q.ID]; !answered {
			break
		}
	}

	question, _ := e.catalog.ByIndex(lang, index)
	pos := Position{
		State:         StateAnswering,
		QuestionIndex: index,
		QuestionID:    question.ID,
		SessionID:     active.SessionID,
		Language:      lang,
	}
	replies := []Reply{
		{Text: i18n.T(lang, "quiz.resumed")},
		e.questionReply(lang, question, index),
	}
	return Turn{Position: &pos, Replies: replies}, true
}

// Handle processes one inbound message against the current position.
// It never returns an unclassified failure: every path yields a reply,
// and store anomalies reset the conversation instead of propagating.
func (e *QuizEngine) Handle(pos Position, input string) Turn {
	input = strings.TrimSpace(input)
	lang := pos.Language

	switch pos.State {
	case StateAnswering:
		return e.handleAnswering(pos, input)
	case StateAwaitingFollowUp:
		return e.handleFollowUp(pos, input)
	case StateConfirming:
		return e.handleConfirming(pos, input)
	case StateGeneratingReport:
		// Intentional backpressure: no input is accepted while the
		// report call is outstanding, including cancel.
		return Turn{Position: &pos, Replies: []Reply{{Text: i18n.T(lang, "report.wait")}}}
	case StateViewingReport:
		if input == i18n.T(lang, i18n.TokenCancel) {
			return e.cancelled(lang)
		}
		return Turn{Position: &pos, Replies: []Reply{{
			Text:     i18n.T(lang, "menu.hint"),
			Keyboard: KeyboardMainMenu,
		}}}
	}

	log.Printf("[QuizEngine] unknown position state %q, resetting", pos.State)
	return e.sessionLost(lang)
}

func (e *QuizEngine) handleAnswering(pos Position, input string) Turn {
	lang := pos.Language

	question, ok := e.catalog.ByIndex(lang, pos.QuestionIndex)
	if !ok {
		log.Printf("[QuizEngine] question index %d out of range for %s", pos.QuestionIndex, lang)
		return e.sessionLost(lang)
	}

	switch ClassifyInput(question, lang, input) {
	case InputCancel:
		return e.cancelled(lang)

	case InputBack:
		if pos.QuestionIndex == 0 {
			return Turn{Position: &pos, Replies: []Reply{{Text: i18n.T(lang, "quiz.first_question")}}}
		}
		prevIndex := pos.QuestionIndex - 1
		prev, _ := e.catalog.ByIndex(lang, prevIndex)
		pos.QuestionIndex = prevIndex
		pos.QuestionID = prev.ID
		return Turn{Position: &pos, Replies: []Reply{e.questionReply(lang, prev, prevIndex)}}

	case InputRejected:
		return Turn{Position: &pos, Replies: []Reply{{Text: i18n.T(lang, "quiz.invalid_answer")}}}
	}

	if err := e.store.SaveAnswer(pos.SessionID, question.ID, input); err != nil {
		return e.storeFailure(lang, err)
	}

	if question.Type == QuestionOptionalText && IsAffirmative(lang, input) {
		pos.State = StateAwaitingFollowUp
		pos.AwaitingFollowUp = true
		prompt := question.FollowUpText
		if prompt == "" {
			prompt = i18n.T(lang, "quiz.follow_up")
		}
		return Turn{Position: &pos, Replies: []Reply{{Text: prompt, Keyboard: KeyboardCancel}}}
	}

	return e.advance(pos)
}

func (e *QuizEngine) handleFollowUp(pos Position, input string) Turn {
	lang := pos.Language

	if input == i18n.T(lang, i18n.TokenCancel) {
		return e.cancelled(lang)
	}
	if strings.TrimSpace(input) == "" {
		return Turn{Position: &pos, Replies: []Reply{{Text: i18n.T(lang, "quiz.invalid_answer")}}}
	}

	// The follow-up text replaces the affirmative choice stored earlier.
	if err := e.store.SaveAnswer(pos.SessionID, pos.QuestionID, input); err != nil {
		return e.storeFailure(lang, err)
	}

	pos.State = StateAnswering
	pos.AwaitingFollowUp = false
	return e.advance(pos)
}

func (e *QuizEngine) handleConfirming(pos Position, input string) Turn {
	lang := pos.Language

	switch input {
	case i18n.T(lang, i18n.TokenCancel):
		return e.cancelled(lang)

	case i18n.T(lang, i18n.TokenConfirmFinish):
		if err := e.store.MarkComplete(pos.SessionID); err != nil {
			return e.storeFailure(lang, err)
		}
		pos.State = StateGeneratingReport
		return Turn{
			Position:       &pos,
			Replies:        []Reply{{Text: i18n.T(lang, "report.generating"), Keyboard: KeyboardCancel}},
			GenerateReport: true,
		}

	case i18n.T(lang, i18n.TokenReturnToQuestions):
		lastIndex := e.catalog.Count(lang) - 1
		last, _ := e.catalog.ByIndex(lang, lastIndex)
		pos.State = StateAnswering
		pos.QuestionIndex = lastIndex
		pos.QuestionID = last.ID
		return Turn{Position: &pos, Replies: []Reply{e.questionReply(lang, last, lastIndex)}}
	}

	return Turn{Position: &pos, Replies: []Reply{{
		Text:     i18n.T(lang, "quiz.confirm_footer"),
		Keyboard: KeyboardConfirm,
	}}}
}

// advance moves to the next question, or to confirmation after the last.
func (e *QuizEngine) advance(pos Position) Turn {
	lang := pos.Language
	nextIndex := pos.QuestionIndex + 1

	if nextIndex < e.catalog.Count(lang) {
		next, _ := e.catalog.ByIndex(lang, nextIndex)
		pos.QuestionIndex = nextIndex
		pos.QuestionID = next.ID
		return Turn{Position: &pos, Replies: []Reply{e.questionReply(lang, next, nextIndex)}}
	}

	answers, err := e.store.Answers(pos.SessionID)
	if err != nil {
		return e.storeFailure(lang, err)
	}

	pos.State = StateConfirming
	return Turn{Position: &pos, Replies: []Reply{{
		Text:     e.confirmationSummary(lang, answers),
		Keyboard: KeyboardConfirm,
	}}}
}

// FinishReport applies the asynchronous outcome of report generation to
// a conversation parked in the generating state.
func (e *QuizEngine) FinishReport(pos Position, report string, genErr error) Turn {
	lang := pos.Language

	if genErr != nil {
		log.Printf("[QuizEngine] report generation failed for session %s: %v", pos.SessionID, genErr)
		return Turn{Replies: []Reply{{
			Text:     i18n.T(lang, "report.failed"),
			Keyboard: KeyboardMainMenu,
		}}}
	}

	pos.State = StateViewingReport
	replies := make([]Reply, 0, 2)
	for _, part := range FormatReportMessages(lang, report) {
		replies = append(replies, Reply{Text: part})
	}
	replies = append(replies, Reply{
		Text:     i18n.T(lang, "report.actions"),
		Keyboard: KeyboardReportActions,
	})
	return Turn{Position: &pos, Replies: replies}
}

// Cancel is the global escape hatch, honored from the transport layer
// regardless of the state-specific vocabulary.
func (e *QuizEngine) Cancel(lang string) Turn {
	return e.cancelled(lang)
}

func (e *QuizEngine) cancelled(lang string) Turn {
	return Turn{Replies: []Reply{{
		Text:     i18n.T(lang, "cancel.done"),
		Keyboard: KeyboardMainMenu,
	}}}
}

func (e *QuizEngine) sessionLost(lang string) Turn {
	return Turn{Replies: []Reply{{
		Text:     i18n.T(lang, "quiz.session_missing"),
		Keyboard: KeyboardMainMenu,
	}}}
}

func (e *QuizEngine) storeFailure(lang string, err error) Turn {
	if errors.Is(err, ErrSessionNotFound) {
		log.Printf("[QuizEngine] %v", err)
		return e.sessionLost(lang)
	}
	log.Printf("[QuizEngine] store error: %v", err)
	return e.sessionLost(lang)
}

func (e *QuizEngine) questionReply(lang string, q Question, index int) Reply {
	progress := fmt.Sprintf(i18n.T(lang, "quiz.progress"), index+1, e.catalog.Count(lang))
	text := fmt.Sprintf("<b>%s</b>\n\n%s", progress, q.Text)
	if q.Type == QuestionTextInput && q.Placeholder != "" {
		text += "\n" + fmt.Sprintf(i18n.T(lang, "quiz.format_hint"), q.Placeholder)
	}

	if q.Type == QuestionSingleChoice || q.Type == QuestionOptionalText {
		return Reply{Text: text, Keyboard: KeyboardOptions, Options: q.Options}
	}
	return Reply{Text: text, Keyboard: KeyboardCancel}
}

func (e *QuizEngine) confirmationSummary(lang string, answers map[string]string) string {
	var lines []string
	lines = append(lines, i18n.T(lang, "quiz.confirm_header"), "")
	for _, q := range e.catalog.Questions(lang) {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: <b>%s</b>", q.Text, answer))
	}
	lines = append(lines, "", i18n.T(lang, "quiz.confirm_footer"))
	return strings.Join(lines, "\n")
}
