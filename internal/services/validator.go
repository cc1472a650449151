package services

import (
	"strings"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/i18n"
)

// InputClass is the validator's verdict on one raw message, checked in
// precedence order: navigation tokens first, then answer validity.
type InputClass int

const (
	InputAccepted InputClass = iota
	InputBack
	InputCancel
	InputRejected
)

// ClassifyInput recognizes the language-specific navigation vocabulary
// before validating, so an otherwise-invalid input can still navigate.
func ClassifyInput(q Question, lang, raw string) InputClass {
	switch raw {
	case i18n.T(lang, i18n.TokenBack):
		return InputBack
	case i18n.T(lang, i18n.TokenCancel):
		return InputCancel
	}
	if IsValidAnswer(q, raw) {
		return InputAccepted
	}
	return InputRejected
}

// IsValidAnswer reports whether raw is an acceptable answer for q.
func IsValidAnswer(q Question, raw string) bool {
	switch q.Type {
	case QuestionSingleChoice:
		return containsOption(q.Options, raw)
	case QuestionTextInput:
		return strings.TrimSpace(raw) != ""
	case QuestionOptionalText:
		// Either one of the fixed choices, or free text when the flow is
		// already collecting the follow-up.
		if containsOption(q.Options, raw) {
			return true
		}
		return strings.TrimSpace(raw) != ""
	}
	return false
}

// IsAffirmative reports whether raw is the choice that triggers the
// follow-up prompt of an optional_text question.
func IsAffirmative(lang, raw string) bool {
	return raw == i18n.T(lang, i18n.TokenAffirmative)
}

func containsOption(options []string, raw string) bool {
	for _, opt := range options {
		if opt == raw {
			return true
		}
	}
	return false
}
