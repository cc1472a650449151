package telegram

import (
	"sync"
	"time"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/services"
)

// ChatMode tags what the conversation outside (or around) the quiz
// engine is doing.
type ChatMode string

const (
	ModeIdle              ChatMode = ""
	ModeSelectingLanguage ChatMode = "selecting_language"
	ModeQuiz              ChatMode = "quiz"
	ModeReports           ChatMode = "reports"
)

// ReportRef is a pagination entry in the reports list. It is transient:
// a report deleted concurrently can leave a stale entry until the list
// is reopened.
type ReportRef struct {
	SessionID string
	CreatedAt time.Time
}

// ChatState is the per-chat conversation state: the transport mode plus,
// while a questionnaire runs, the engine's typed position.
type ChatState struct {
	Mode    ChatMode
	Quiz    *services.Position
	Reports []ReportRef
	Page    int
}

// StateManager owns chat states and the per-chat turn locks that keep
// one chat's updates strictly sequential while different chats proceed
// in parallel.
type StateManager struct {
	mu     sync.RWMutex
	states map[int64]*ChatState
	locks  map[int64]*sync.Mutex
}

func NewStateManager() *StateManager {
	return &StateManager{
		states: make(map[int64]*ChatState),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// ChatLock returns the serialization lock for one chat. A turn holds it
// from position read to position write.
func (m *StateManager) ChatLock(chatID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[chatID] = lock
	}
	return lock
}

func (m *StateManager) Get(chatID int64) *ChatState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[chatID]
	if !ok {
		return &ChatState{}
	}
	cp := *s
	return &cp
}

func (m *StateManager) Set(chatID int64, state *ChatState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = state
}

func (m *StateManager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
