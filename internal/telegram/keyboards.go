package telegram

import (
	"fmt"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
)

const reportsPerPage = 5

func MainMenuKeyboard(lang string) *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: "/quiz"}},
			{{Text: "/reports"}, {Text: "/help"}},
			{{Text: i18n.T(lang, i18n.TokenChangeLanguage)}},
		},
		ResizeKeyboard: true,
	}
}

func LanguageKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: "🇺🇦 Українська"}},
			{{Text: "🇩🇪 Deutsch"}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// OptionsKeyboard lays out answer choices two per row with the
// navigation row at the bottom.
func OptionsKeyboard(lang string, options []string) *ReplyKeyboardMarkup {
	const rowWidth = 2

	var rows [][]KeyboardButton
	for i := 0; i < len(options); i += rowWidth {
		var row []KeyboardButton
		for _, opt := range options[i:min(i+rowWidth, len(options))] {
			row = append(row, KeyboardButton{Text: opt})
		}
		rows = append(rows, row)
	}

	rows = append(rows, []KeyboardButton{
		{Text: i18n.T(lang, i18n.TokenBack)},
		{Text: i18n.T(lang, i18n.TokenCancel)},
	})

	return &ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func CancelKeyboard(lang string) *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: i18n.T(lang, i18n.TokenCancel)}},
		},
		ResizeKeyboard: true,
	}
}

func ConfirmationKeyboard(lang string) *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: i18n.T(lang, i18n.TokenConfirmFinish)}},
			{{Text: i18n.T(lang, i18n.TokenReturnToQuestions)}},
			{{Text: i18n.T(lang, i18n.TokenCancel)}},
		},
		ResizeKeyboard: true,
	}
}

// ReportsKeyboard renders one page of the reports list with pagination
// and a back button.
func ReportsKeyboard(lang string, reports []ReportRef, page int) *InlineKeyboardMarkup {
	totalPages := (len(reports) + reportsPerPage - 1) / reportsPerPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * reportsPerPage
	end := min(start+reportsPerPage, len(reports))

	var rows [][]InlineKeyboardButton
	for _, ref := range reports[start:end] {
		label := fmt.Sprintf(i18n.T(lang, "reports.item"), ref.CreatedAt.Format("02.01.2006 15:04"))
		rows = append(rows, []InlineKeyboardButton{
			{Text: label, CallbackData: "report:" + ref.SessionID},
		})
	}

	if totalPages > 1 {
		var pagination []InlineKeyboardButton
		if page > 1 {
			pagination = append(pagination, InlineKeyboardButton{
				Text:         "⬅️",
				CallbackData: fmt.Sprintf("reports_page:%d", page-1),
			})
		}
		pagination = append(pagination, InlineKeyboardButton{
			Text:         fmt.Sprintf("%d/%d", page, totalPages),
			CallbackData: "noop",
		})
		if page < totalPages {
			pagination = append(pagination, InlineKeyboardButton{
				Text:         "➡️",
				CallbackData: fmt.Sprintf("reports_page:%d", page+1),
			})
		}
		rows = append(rows, pagination)
	}

	rows = append(rows, []InlineKeyboardButton{
		{Text: i18n.T(lang, "reports.back"), CallbackData: "back"},
	})

	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func ReportActionsKeyboard(lang string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: i18n.T(lang, "reports.new"), CallbackData: "new_quiz"}},
			{{Text: i18n.T(lang, "reports.back_to_list"), CallbackData: "reports"}},
		},
	}
}

func RemoveKeyboard() *ReplyKeyboardRemove {
	return &ReplyKeyboardRemove{RemoveKeyboard: true}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
