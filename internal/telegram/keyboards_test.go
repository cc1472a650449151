package telegram

import (
	"fmt"
	"testing"
	"time"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
)

func TestOptionsKeyboardLayout(t *testing.T) {
	kb := OptionsKeyboard("uk", []string{"Так", "Ні", "Не знаю"})

	// Two options per row plus the navigation row.
	if len(kb.Keyboard) != 3 {
		t.Fatalf("got %d rows, want 3", len(kb.Keyboard))
	}
	if len(kb.Keyboard[0]) != 2 || len(kb.Keyboard[1]) != 1 {
		t.Errorf("option rows sized %d/%d, want 2/1", len(kb.Keyboard[0]), len(kb.Keyboard[1]))
	}

	nav := kb.Keyboard[2]
	if len(nav) != 2 {
		t.Fatalf("navigation row has %d buttons, want back and cancel", len(nav))
	}
	if nav[0].Text != i18n.T("uk", i18n.TokenBack) || nav[1].Text != i18n.T("uk", i18n.TokenCancel) {
		t.Errorf("navigation row = %q/%q", nav[0].Text, nav[1].Text)
	}
}

func testReports(n int) []ReportRef {
	refs := make([]ReportRef, n)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := range refs {
		refs[i] = ReportRef{
			SessionID: fmt.Sprintf("s-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return refs
}

func TestReportsKeyboardSinglePage(t *testing.T) {
	kb := ReportsKeyboard("uk", testReports(3), 1)

	// Three report rows plus the back row, no pagination row.
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("got %d rows, want 4", len(kb.InlineKeyboard))
	}
	if kb.InlineKeyboard[0][0].CallbackData != "report:s-0" {
		t.Errorf("first callback = %q", kb.InlineKeyboard[0][0].CallbackData)
	}
	back := kb.InlineKeyboard[3][0]
	if back.CallbackData != "back" {
		t.Errorf("last row callback = %q, want back", back.CallbackData)
	}
}

func TestReportsKeyboardPagination(t *testing.T) {
	refs := testReports(12)

	first := ReportsKeyboard("uk", refs, 1)
	// Five reports, pagination row, back row.
	if len(first.InlineKeyboard) != 7 {
		t.Fatalf("page 1 has %d rows, want 7", len(first.InlineKeyboard))
	}
	pagination := first.InlineKeyboard[5]
	if len(pagination) != 2 {
		t.Fatalf("page 1 pagination has %d buttons, want counter and next", len(pagination))
	}
	if pagination[1].CallbackData != "reports_page:2" {
		t.Errorf("next callback = %q", pagination[1].CallbackData)
	}

	middle := ReportsKeyboard("uk", refs, 2)
	pagination = middle.InlineKeyboard[5]
	if len(pagination) != 3 {
		t.Fatalf("page 2 pagination has %d buttons, want prev, counter and next", len(pagination))
	}
	if pagination[0].CallbackData != "reports_page:1" || pagination[2].CallbackData != "reports_page:3" {
		t.Errorf("page 2 pagination = %q/%q", pagination[0].CallbackData, pagination[2].CallbackData)
	}
	if pagination[1].CallbackData != "noop" {
		t.Errorf("counter callback = %q, want noop", pagination[1].CallbackData)
	}

	last := ReportsKeyboard("uk", refs, 3)
	// Two reports on the last page.
	if last.InlineKeyboard[0][0].CallbackData != "report:s-10" {
		t.Errorf("last page first callback = %q", last.InlineKeyboard[0][0].CallbackData)
	}
}

func TestReportsKeyboardClampsPage(t *testing.T) {
	refs := testReports(6)

	kb := ReportsKeyboard("uk", refs, 99)
	// Clamped to the last page, which holds one report.
	if kb.InlineKeyboard[0][0].CallbackData != "report:s-5" {
		t.Errorf("first callback = %q, want the sixth report", kb.InlineKeyboard[0][0].CallbackData)
	}

	kb = ReportsKeyboard("uk", refs, 0)
	if kb.InlineKeyboard[0][0].CallbackData != "report:s-0" {
		t.Errorf("first callback = %q, want the first report", kb.InlineKeyboard[0][0].CallbackData)
	}
}

func TestConfirmationKeyboardVocabulary(t *testing.T) {
	kb := ConfirmationKeyboard("de")
	want := []string{
		i18n.T("de", i18n.TokenConfirmFinish),
		i18n.T("de", i18n.TokenReturnToQuestions),
		i18n.T("de", i18n.TokenCancel),
	}
	if len(kb.Keyboard) != len(want) {
		t.Fatalf("got %d rows, want %d", len(kb.Keyboard), len(want))
	}
	for i, text := range want {
		if kb.Keyboard[i][0].Text != text {
			t.Errorf("row %d = %q, want %q", i, kb.Keyboard[i][0].Text, text)
		}
	}
}
