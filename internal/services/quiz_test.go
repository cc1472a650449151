package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/config"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"
)

type stubStore struct {
	sessions map[string]*models.QuizResponse
	answers  map[string]map[string]string
	active   *models.QuizResponse
	saveErr  error
	created  int
}

func newStubStore() *stubStore {
	return &stubStore{
		sessions: make(map[string]*models.QuizResponse),
		answers:  make(map[string]map[string]string),
	}
}

func (s *stubStore) CreateSession(participantID uint, language string) (*models.QuizResponse, error) {
	s.created++
	session := &models.QuizResponse{
		SessionID:     fmt.Sprintf("session-%d", s.created),
		ParticipantID: participantID,
		Language:      language,
	}
	s.sessions[session.SessionID] = session
	s.answers[session.SessionID] = make(map[string]string)
	return session, nil
}

func (s *stubStore) GetBySessionID(sessionID string) (*models.QuizResponse, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *stubStore) GetActiveForParticipant(participantID uint) (*models.QuizResponse, error) {
	if s.active == nil {
		return nil, ErrSessionNotFound
	}
	return s.active, nil
}

func (s *stubStore) SaveAnswer(sessionID, questionID, value string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	answers, ok := s.answers[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	answers[questionID] = value
	return nil
}

func (s *stubStore) Answers(sessionID string) (map[string]string, error) {
	answers, ok := s.answers[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return answers, nil
}

func (s *stubStore) MarkComplete(sessionID string) error {
	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.IsComplete = true
	return nil
}

func testCatalog() *Catalog {
	return NewCatalog(map[string][]Question{
		"uk": {
			{ID: "side", Type: QuestionSingleChoice, Text: "Яка сторона?", Options: []string{"Ліва", "Права"}},
			{ID: "duration", Type: QuestionTextInput, Text: "Як давно болить?", Placeholder: "2 тижні"},
			{ID: "trauma", Type: QuestionOptionalText, Text: "Чи була травма?", Options: []string{"Так", "Ні"}, FollowUpText: "Опишіть травму"},
		},
	})
}

func newTestEngine(store SessionStore) *QuizEngine {
	return NewQuizEngine(testCatalog(), store, config.RestartPolicyAbandon)
}

func TestStartBeginsAtFirstQuestion(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, err := engine.Start(1, "uk")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if turn.Position == nil {
		t.Fatal("expected a position")
	}
	if turn.Position.State != StateAnswering {
		t.Errorf("state = %q, want %q", turn.Position.State, StateAnswering)
	}
	if turn.Position.QuestionIndex != 0 || turn.Position.QuestionID != "side" {
		t.Errorf("position at %d/%s, want 0/side", turn.Position.QuestionIndex, turn.Position.QuestionID)
	}
	if len(turn.Replies) != 2 {
		t.Fatalf("got %d replies, want intro plus question", len(turn.Replies))
	}
	if turn.Replies[1].Keyboard != KeyboardOptions {
		t.Errorf("question keyboard = %v, want options", turn.Replies[1].Keyboard)
	}
}

func TestStartWithUnusableCatalog(t *testing.T) {
	engine := NewQuizEngine(NewCatalog(map[string][]Question{}), newStubStore(), config.RestartPolicyAbandon)

	turn, err := engine.Start(1, "uk")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if turn.Position != nil {
		t.Error("expected no position for an unusable catalog")
	}
	if len(turn.Replies) != 1 || turn.Replies[0].Text != i18n.T("uk", "quiz.unavailable") {
		t.Errorf("unexpected replies: %+v", turn.Replies)
	}
}

func TestFullFlowThroughConfirmationAndReport(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, _ := engine.Start(7, "uk")
	pos := *turn.Position

	turn = engine.Handle(pos, "Ліва")
	pos = *turn.Position
	if pos.QuestionIndex != 1 || pos.QuestionID != "duration" {
		t.Fatalf("after first answer at %d/%s, want 1/duration", pos.QuestionIndex, pos.QuestionID)
	}

	turn = engine.Handle(pos, "14 днів")
	pos = *turn.Position
	if pos.QuestionIndex != 2 || pos.QuestionID != "trauma" {
		t.Fatalf("after second answer at %d/%s, want 2/trauma", pos.QuestionIndex, pos.QuestionID)
	}

	turn = engine.Handle(pos, "Так")
	pos = *turn.Position
	if pos.State != StateAwaitingFollowUp {
		t.Fatalf("state = %q, want %q", pos.State, StateAwaitingFollowUp)
	}
	if turn.Replies[0].Text != "Опишіть травму" {
		t.Errorf("follow-up prompt = %q", turn.Replies[0].Text)
	}

	turn = engine.Handle(pos, "впав з велосипеда")
	pos = *turn.Position
	if pos.State != StateConfirming {
		t.Fatalf("state = %q, want %q", pos.State, StateConfirming)
	}
	summary := turn.Replies[0].Text
	if !strings.Contains(summary, "впав з велосипеда") {
		t.Error("follow-up text missing from summary, affirmative was not overwritten")
	}
	if !strings.Contains(summary, "Ліва") || !strings.Contains(summary, "14 днів") {
		t.Errorf("summary missing earlier answers: %q", summary)
	}

	turn = engine.Handle(pos, i18n.T("uk", i18n.TokenConfirmFinish))
	pos = *turn.Position
	if pos.State != StateGeneratingReport {
		t.Fatalf("state = %q, want %q", pos.State, StateGeneratingReport)
	}
	if !turn.GenerateReport {
		t.Error("expected GenerateReport to be requested")
	}
	if !store.sessions[pos.SessionID].IsComplete {
		t.Error("session not marked complete")
	}

	// Any input while generation is outstanding, cancel included, only
	// gets the wait notice.
	turn = engine.Handle(pos, i18n.T("uk", i18n.TokenCancel))
	if turn.Position == nil || turn.Position.State != StateGeneratingReport {
		t.Fatal("position left the generating state on input")
	}
	if turn.Replies[0].Text != i18n.T("uk", "report.wait") {
		t.Errorf("backpressure reply = %q", turn.Replies[0].Text)
	}

	turn = engine.FinishReport(pos, "Пацієнт скаржиться на біль.", nil)
	pos = *turn.Position
	if pos.State != StateViewingReport {
		t.Fatalf("state = %q, want %q", pos.State, StateViewingReport)
	}
	last := turn.Replies[len(turn.Replies)-1]
	if last.Keyboard != KeyboardReportActions {
		t.Errorf("final keyboard = %v, want report actions", last.Keyboard)
	}

	turn = engine.Handle(pos, "будь-що")
	if turn.Position == nil || turn.Position.State != StateViewingReport {
		t.Error("viewing state should persist on arbitrary input")
	}

	turn = engine.Handle(pos, i18n.T("uk", i18n.TokenCancel))
	if turn.Position != nil {
		t.Error("cancel from viewing should clear the position")
	}
}

func TestBackNavigation(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, _ := engine.Start(1, "uk")
	pos := *turn.Position
	turn = engine.Handle(pos, "Права")
	pos = *turn.Position

	turn = engine.Handle(pos, i18n.T("uk", i18n.TokenBack))
	pos = *turn.Position
	if pos.QuestionIndex != 0 || pos.QuestionID != "side" {
		t.Fatalf("back landed at %d/%s, want 0/side", pos.QuestionIndex, pos.QuestionID)
	}

	turn = engine.Handle(pos, i18n.T("uk", i18n.TokenBack))
	if turn.Position == nil || turn.Position.QuestionIndex != 0 {
		t.Fatal("back at the first question must not move")
	}
	if turn.Replies[0].Text != i18n.T("uk", "quiz.first_question") {
		t.Errorf("reply = %q, want first-question notice", turn.Replies[0].Text)
	}
}

func TestInvalidAnswerRejected(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, _ := engine.Start(1, "uk")
	pos := *turn.Position

	turn = engine.Handle(pos, "можливо")
	if turn.Position == nil || turn.Position.QuestionIndex != 0 {
		t.Fatal("rejected input must not advance")
	}
	if turn.Replies[0].Text != i18n.T("uk", "quiz.invalid_answer") {
		t.Errorf("reply = %q, want invalid-answer notice", turn.Replies[0].Text)
	}
	if len(store.answers["session-1"]) != 0 {
		t.Error("rejected input must not be stored")
	}
}

func TestReturnToQuestionsFromConfirmation(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, _ := engine.Start(1, "uk")
	pos := *turn.Position
	pos.State = StateConfirming

	turn = engine.Handle(pos, i18n.T("uk", i18n.TokenReturnToQuestions))
	pos = *turn.Position
	if pos.State != StateAnswering || pos.QuestionIndex != 2 || pos.QuestionID != "trauma" {
		t.Errorf("returned to %s %d/%s, want answering 2/trauma", pos.State, pos.QuestionIndex, pos.QuestionID)
	}
}

func TestConfirmationRepromptsOnUnknownInput(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, _ := engine.Start(1, "uk")
	pos := *turn.Position
	pos.State = StateConfirming

	turn = engine.Handle(pos, "га?")
	if turn.Position == nil || turn.Position.State != StateConfirming {
		t.Fatal("unknown input must keep the confirming state")
	}
	if turn.Replies[0].Text != i18n.T("uk", "quiz.confirm_footer") {
		t.Errorf("reply = %q, want confirmation reprompt", turn.Replies[0].Text)
	}
}

func TestStoreFailureResetsConversation(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	turn, _ := engine.Start(1, "uk")
	pos := *turn.Position
	store.saveErr = ErrSessionNotFound

	turn = engine.Handle(pos, "Ліва")
	if turn.Position != nil {
		t.Error("store anomaly must clear the position")
	}
	if turn.Replies[0].Text != i18n.T("uk", "quiz.session_missing") {
		t.Errorf("reply = %q, want session-missing notice", turn.Replies[0].Text)
	}
}

func TestResumePolicyPicksFirstUnanswered(t *testing.T) {
	store := newStubStore()
	active, _ := store.CreateSession(3, "uk")
	store.active = active
	store.answers[active.SessionID]["side"] = "Ліва"

	engine := NewQuizEngine(testCatalog(), store, config.RestartPolicyResume)
	turn, err := engine.Start(3, "uk")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if turn.Position.SessionID != active.SessionID {
		t.Error("resume must reuse the active session")
	}
	if turn.Position.QuestionIndex != 1 || turn.Position.QuestionID != "duration" {
		t.Errorf("resumed at %d/%s, want 1/duration", turn.Position.QuestionIndex, turn.Position.QuestionID)
	}
}

func TestAbandonPolicyStartsFresh(t *testing.T) {
	store := newStubStore()
	active, _ := store.CreateSession(3, "uk")
	store.active = active

	engine := newTestEngine(store)
	turn, err := engine.Start(3, "uk")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if turn.Position.SessionID == active.SessionID {
		t.Error("abandon policy must create a new session")
	}
}

func TestFinishReportFailureResets(t *testing.T) {
	store := newStubStore()
	engine := newTestEngine(store)

	pos := Position{State: StateGeneratingReport, SessionID: "session-1", Language: "uk"}
	turn := engine.FinishReport(pos, "", fmt.Errorf("model unavailable"))
	if turn.Position != nil {
		t.Error("failed generation must clear the position")
	}
	if turn.Replies[0].Text != i18n.T("uk", "report.failed") {
		t.Errorf("reply = %q, want failure notice", turn.Replies[0].Text)
	}
}
