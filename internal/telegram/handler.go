package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/services"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/ws"
)

// UpdateHandler routes Telegram updates into the quiz engine and the
// report flow. Each chat's updates are processed strictly one at a time
// via the state manager's chat locks.
type UpdateHandler struct {
	client        *Client
	state         *StateManager
	participants  *services.ParticipantService
	engine        *services.QuizEngine
	reports       *services.ReportService
	responses     *services.ResponseService
	hub           *ws.Hub
	reportTimeout time.Duration
}

func NewUpdateHandler(
	client *Client,
	state *StateManager,
	participants *services.ParticipantService,
	engine *services.QuizEngine,
	reports *services.ReportService,
	responses *services.ResponseService,
	hub *ws.Hub,
	reportTimeout time.Duration,
) *UpdateHandler {
	return &UpdateHandler{
		client:        client,
		state:         state,
		participants:  participants,
		engine:        engine,
		reports:       reports,
		responses:     responses,
		hub:           hub,
		reportTimeout: reportTimeout,
	}
}

func (h *UpdateHandler) Handle(upd Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(upd.CallbackQuery)
		return
	}
	if upd.Message != nil {
		h.handleMessage(upd.Message)
	}
}

func (h *UpdateHandler) handleMessage(msg *Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	participant, _, err := h.participants.GetOrCreate(services.TelegramProfile{
		TelegramID: msg.From.ID,
		Username:   msg.From.Username,
		FirstName:  msg.From.FirstName,
		LastName:   msg.From.LastName,
	})
	if err != nil {
		log.Printf("[Bot] get or create participant %d: %v", msg.From.ID, err)
		return
	}
	lang := participant.Language

	lock := h.state.ChatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	switch command(text) {
	case "/start":
		h.state.Clear(chatID)
		h.client.SendMessage(chatID,
			fmt.Sprintf(i18n.T(lang, "welcome"), participant.FullName()),
			MainMenuKeyboard(lang))
		return
	case "/help":
		h.client.SendMessage(chatID, i18n.T(lang, "help"), MainMenuKeyboard(lang))
		return
	case "/quiz":
		h.startQuiz(chatID, participant)
		return
	case "/reports":
		h.listReports(chatID, participant)
		return
	case "/cancel":
		h.cancel(chatID, lang)
		return
	}

	if matchesToken(text, i18n.TokenCancel) {
		h.cancel(chatID, lang)
		return
	}
	if matchesToken(text, i18n.TokenChangeLanguage) {
		st := h.state.Get(chatID)
		st.Mode = ModeSelectingLanguage
		st.Quiz = nil
		h.state.Set(chatID, st)
		h.client.SendMessage(chatID, i18n.T(lang, "language.prompt"), LanguageKeyboard())
		return
	}
	if matchesToken(text, i18n.TokenMainMenu) {
		h.state.Clear(chatID)
		h.client.SendMessage(chatID, i18n.T(lang, "menu.title"), MainMenuKeyboard(lang))
		return
	}

	st := h.state.Get(chatID)
	switch st.Mode {
	case ModeSelectingLanguage:
		h.onLanguageChoice(chatID, participant, text)
	case ModeQuiz:
		if st.Quiz == nil {
			h.state.Clear(chatID)
			h.client.SendMessage(chatID, i18n.T(lang, "quiz.session_missing"), MainMenuKeyboard(lang))
			return
		}
		turn := h.engine.Handle(*st.Quiz, text)
		h.applyTurn(chatID, lang, turn)
	default:
		h.client.SendMessage(chatID, i18n.T(lang, "menu.hint"), MainMenuKeyboard(lang))
	}
}

func (h *UpdateHandler) startQuiz(chatID int64, participant *models.Participant) {
	lang := participant.Language
	h.state.Clear(chatID)

	turn, err := h.engine.Start(participant.ID, lang)
	if err != nil {
		log.Printf("[Bot] start quiz for participant %d: %v", participant.ID, err)
		h.client.SendMessage(chatID, i18n.T(lang, "quiz.session_missing"), MainMenuKeyboard(lang))
		return
	}
	h.applyTurn(chatID, lang, turn)

	if turn.Position != nil {
		log.Printf("[Bot] participant %d started quiz session %s", participant.ID, turn.Position.SessionID)
	}
}

func (h *UpdateHandler) cancel(chatID int64, lang string) {
	st := h.state.Get(chatID)
	if st.Mode == ModeQuiz && st.Quiz != nil && st.Quiz.State == services.StateGeneratingReport {
		// Generation in flight; input stays blocked until it resolves.
		h.client.SendMessage(chatID, i18n.T(lang, "report.wait"), nil)
		return
	}
	if st.Mode == ModeIdle {
		h.client.SendMessage(chatID, i18n.T(lang, "cancel.nothing"), MainMenuKeyboard(lang))
		return
	}
	h.state.Clear(chatID)
	h.applyTurn(chatID, lang, h.engine.Cancel(lang))
}

func (h *UpdateHandler) onLanguageChoice(chatID int64, participant *models.Participant, text string) {
	var chosen string
	switch text {
	case "🇺🇦 Українська":
		chosen = models.LanguageUkrainian
	case "🇩🇪 Deutsch":
		chosen = models.LanguageGerman
	default:
		h.client.SendMessage(chatID, i18n.T(participant.Language, "language.prompt"), LanguageKeyboard())
		return
	}

	if _, err := h.participants.SetLanguage(participant.TelegramID, chosen); err != nil {
		log.Printf("[Bot] set language for %d: %v", participant.TelegramID, err)
	}
	h.state.Clear(chatID)
	h.client.SendMessage(chatID, i18n.T(chosen, "language.set"), MainMenuKeyboard(chosen))
}

func (h *UpdateHandler) listReports(chatID int64, participant *models.Participant) {
	lang := participant.Language
	h.state.Clear(chatID)

	sessions, err := h.responses.ListCompletedForParticipant(participant.ID)
	if err != nil {
		log.Printf("[Bot] list reports for participant %d: %v", participant.ID, err)
		sessions = nil
	}

	var refs []ReportRef
	for _, s := range sessions {
		if s.Report == "" {
			continue
		}
		refs = append(refs, ReportRef{SessionID: s.SessionID, CreatedAt: s.CreatedAt})
	}

	if len(refs) == 0 {
		h.client.SendMessage(chatID, i18n.T(lang, "reports.none"), MainMenuKeyboard(lang))
		return
	}

	h.state.Set(chatID, &ChatState{Mode: ModeReports, Reports: refs, Page: 1})
	h.client.SendMessage(chatID,
		fmt.Sprintf(i18n.T(lang, "reports.list"), len(refs)),
		ReportsKeyboard(lang, refs, 1))
}

// applyTurn persists the engine's next position, renders its replies and
// kicks off report generation when requested.
func (h *UpdateHandler) applyTurn(chatID int64, lang string, turn services.Turn) {
	if turn.Position == nil {
		h.state.Clear(chatID)
	} else {
		h.state.Set(chatID, &ChatState{Mode: ModeQuiz, Quiz: turn.Position})
	}

	for _, reply := range turn.Replies {
		if _, err := h.client.SendMessage(chatID, reply.Text, h.renderKeyboard(lang, reply)); err != nil {
			log.Printf("[Bot] send message to chat %d: %v", chatID, err)
		}
	}

	if turn.GenerateReport && turn.Position != nil {
		go h.generateReport(chatID, *turn.Position)
	}
}

func (h *UpdateHandler) renderKeyboard(lang string, reply services.Reply) interface{} {
	switch reply.Keyboard {
	case services.KeyboardOptions:
		return OptionsKeyboard(lang, reply.Options)
	case services.KeyboardCancel:
		return CancelKeyboard(lang)
	case services.KeyboardConfirm:
		return ConfirmationKeyboard(lang)
	case services.KeyboardMainMenu:
		return MainMenuKeyboard(lang)
	case services.KeyboardReportActions:
		return ReportActionsKeyboard(lang)
	}
	return nil
}

// generateReport runs the long-running collaborator call off the chat
// lock; the chat stays parked in the generating state meanwhile. The
// outcome is applied under the lock, back in the turn pipeline.
func (h *UpdateHandler) generateReport(chatID int64, pos services.Position) {
	ctx, cancel := context.WithTimeout(context.Background(), h.reportTimeout)
	defer cancel()

	var report string
	session, err := h.responses.GetBySessionID(pos.SessionID)
	if err == nil {
		report, err = h.reports.Generate(ctx, session, false)
	}

	lock := h.state.ChatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	turn := h.engine.FinishReport(pos, report, err)
	h.applyTurn(chatID, pos.Language, turn)

	if err == nil {
		h.hub.Broadcast(ws.Event{
			Type: "report_ready",
			Data: map[string]interface{}{"session_id": pos.SessionID},
		})
	}
}

func (h *UpdateHandler) handleCallback(cb *CallbackQuery) {
	if cb.Message == nil {
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		return
	}
	chatID := cb.Message.Chat.ID

	participant, err := h.participants.Get(cb.From.ID)
	if err != nil {
		h.client.AnswerCallbackQuery(cb.ID, "", false)
		return
	}
	lang := participant.Language

	lock := h.state.ChatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	switch {
	case strings.HasPrefix(cb.Data, "report:"):
		h.viewReport(chatID, lang, strings.TrimPrefix(cb.Data, "report:"))

	case strings.HasPrefix(cb.Data, "reports_page:"):
		page, _ := strconv.Atoi(strings.TrimPrefix(cb.Data, "reports_page:"))
		h.paginateReports(chatID, cb.Message.MessageID, lang, page)

	case cb.Data == "reports":
		h.listReports(chatID, participant)

	case cb.Data == "new_quiz":
		h.startQuiz(chatID, participant)

	case cb.Data == "back":
		h.state.Clear(chatID)
		h.client.SendMessage(chatID, i18n.T(lang, "menu.title"), MainMenuKeyboard(lang))
	}

	h.client.AnswerCallbackQuery(cb.ID, "", false)
}

func (h *UpdateHandler) viewReport(chatID int64, lang, sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.reportTimeout)
	defer cancel()

	report, err := h.reports.GetOrGenerate(ctx, sessionID)
	if err != nil {
		log.Printf("[Bot] view report %s: %v", sessionID, err)
		h.state.Clear(chatID)
		h.client.SendMessage(chatID, i18n.T(lang, "report.not_found"), MainMenuKeyboard(lang))
		return
	}

	for _, part := range services.FormatReportMessages(lang, report) {
		h.client.SendMessage(chatID, part, nil)
	}
	h.client.SendMessage(chatID, i18n.T(lang, "report.actions"), ReportActionsKeyboard(lang))
}

func (h *UpdateHandler) paginateReports(chatID, messageID int64, lang string, page int) {
	st := h.state.Get(chatID)
	if st.Mode != ModeReports || len(st.Reports) == 0 {
		h.client.SendMessage(chatID, i18n.T(lang, "reports.none"), MainMenuKeyboard(lang))
		return
	}

	st.Page = page
	h.state.Set(chatID, st)

	if err := h.client.EditMessageReplyMarkup(chatID, messageID, ReportsKeyboard(lang, st.Reports, page)); err != nil {
		log.Printf("[Bot] paginate reports in chat %d: %v", chatID, err)
	}
}

func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	return strings.Split(cmd, "@")[0]
}

// matchesToken checks text against a token's surface form in every
// supported language, so buttons from a stale keyboard keep working
// after a language switch.
func matchesToken(text, token string) bool {
	for _, lang := range i18n.Languages() {
		if text == i18n.T(lang, token) {
			return true
		}
	}
	return false
}
