package telegram

import (
	"testing"
	"time"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/services"
)

func TestStateManagerGetReturnsCopy(t *testing.T) {
	m := NewStateManager()
	m.Set(1, &ChatState{Mode: ModeQuiz, Quiz: &services.Position{SessionID: "s-1"}})

	st := m.Get(1)
	st.Mode = ModeReports

	if m.Get(1).Mode != ModeQuiz {
		t.Error("mutating a returned state leaked into the manager")
	}
}

func TestStateManagerUnknownChat(t *testing.T) {
	m := NewStateManager()
	st := m.Get(42)
	if st == nil || st.Mode != ModeIdle {
		t.Errorf("unknown chat state = %+v, want idle", st)
	}
}

func TestStateManagerClear(t *testing.T) {
	m := NewStateManager()
	m.Set(1, &ChatState{Mode: ModeReports, Page: 2})
	m.Clear(1)

	if m.Get(1).Mode != ModeIdle {
		t.Error("cleared chat should be idle")
	}
}

func TestChatLockIsStablePerChat(t *testing.T) {
	m := NewStateManager()
	if m.ChatLock(1) != m.ChatLock(1) {
		t.Error("same chat must get the same lock")
	}
	if m.ChatLock(1) == m.ChatLock(2) {
		t.Error("different chats must get different locks")
	}
}

func TestChatLockSerializesTurns(t *testing.T) {
	m := NewStateManager()
	lock := m.ChatLock(1)

	lock.Lock()
	done := make(chan struct{})
	go func() {
		m.ChatLock(1).Lock()
		m.ChatLock(1).Unlock()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second turn acquired the lock while the first held it")
	case <-time.After(20 * time.Millisecond):
	}

	lock.Unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second turn never acquired the lock")
	}
}
