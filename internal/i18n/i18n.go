// Package i18n carries the fixed uk/de string set the conversation flow
// needs. The server owns these strings because the bot renders them
// directly into Telegram messages and keyboards.
package i18n

const (
	DefaultLanguage = "uk"
)

// Reserved keyboard tokens the quiz engine matches literally,
// independent of question content.
const (
	TokenBack              = "token.back"
	TokenCancel            = "token.cancel"
	TokenConfirmFinish     = "token.confirm_finish"
	TokenReturnToQuestions = "token.return_to_questions"
	TokenAffirmative       = "token.affirmative"
	TokenMainMenu          = "token.main_menu"
	TokenChangeLanguage    = "token.change_language"
)

var translations = map[string]map[string]string{
	"uk": {
		TokenBack:              "⬅️ Назад",
		TokenCancel:            "❌ Скасувати",
		TokenConfirmFinish:     "✅ Так, завершити",
		TokenReturnToQuestions: "⬅️ Повернутися до питань",
		TokenAffirmative:       "Так",
		TokenMainMenu:          "🏠 Головне меню",
		TokenChangeLanguage:    "🌐 Змінити мову",

		"quiz.intro": "<b>Опитування про стан колінного суглоба</b>\n\n" +
			"Я задам вам серію запитань про стан колінного суглоба пацієнта.\n" +
			"На основі ваших відповідей буде згенеровано професійний медичний звіт.\n\n" +
			"Відповідайте на запитання, використовуючи кнопки або вводячи текст, де це потрібно.\n" +
			"Ви можете скасувати опитування в будь-який момент, натиснувши '❌ Скасувати'.\n\n" +
			"<b>Почнімо!</b>",
		"quiz.progress":         "Питання %d/%d",
		"quiz.format_hint":      "(Формат: %s)",
		"quiz.first_question":   "Це перше питання. Неможливо повернутися назад.",
		"quiz.invalid_answer":   "Будь ласка, виберіть або введіть правильну відповідь для цього питання.",
		"quiz.follow_up":        "Введіть додаткову інформацію:",
		"quiz.confirm_header":   "<b>Перевірте ваші відповіді</b>\n\n<i>Переконайтеся, що всі відповіді правильні, перш ніж продовжити.</i>",
		"quiz.confirm_footer":   "Бажаєте завершити опитування і згенерувати звіт?",
		"quiz.session_missing":  "Помилка: Сесію опитування не знайдено. Будь ласка, почніть опитування знову.",
		"quiz.unavailable":      "Опитування тимчасово недоступне цією мовою. Спробуйте пізніше.",
		"quiz.resumed":          "Продовжуємо незавершене опитування.",
		"report.generating":     "<b>Генерую звіт...</b>\n\nБудь ласка, зачекайте. Це може зайняти кілька секунд.",
		"report.wait":           "Звіт ще генерується. Будь ласка, зачекайте.",
		"report.failed":         "Помилка: Не вдалося згенерувати звіт. Будь ласка, спробуйте ще раз.",
		"report.header":         "📋 Медичний звіт",
		"report.part":           "(Частина %d/%d)",
		"report.part_continued": "(Продовження, частина %d/%d)",
		"report.actions":        "Що ви хочете зробити зі звітом?",
		"report.not_found":      "Помилка: Звіт не знайдено. Будь ласка, спробуйте ще раз.",
		"reports.none":          "<b>Ваші звіти</b>\n\nУ вас ще немає збережених звітів. Щоб створити звіт, почніть нове опитування командою /quiz.",
		"reports.list":          "<b>Ваші звіти</b>\n\nУ вас є %d збережених звітів. Виберіть звіт для перегляду:",
		"reports.item":          "Звіт від %s",
		"reports.back":          "🔙 Назад",
		"reports.back_to_list":  "🔙 Назад до списку",
		"reports.new":           "🔄 Новий звіт",
		"cancel.done":           "Операцію скасовано. Ви можете почати спочатку.",
		"cancel.nothing":        "Немає активної операції для скасування.",
		"menu.title":            "Головне меню",
		"menu.hint":             "Використайте /quiz щоб почати опитування, або кнопки меню.",
		"language.prompt":       "Оберіть мову / Sprache wählen:",
		"language.set":          "Мову встановлено: українська 🇺🇦",
		"welcome": "Вітаю, <b>%s</b>! 👋\n\n" +
			"Я - бот для проведення медичного опитування і генерації звітів обстеження колінного суглоба.\n\n" +
			"Щоб почати нове опитування, введіть команду /quiz\n" +
			"Для перегляду попередніх звітів, введіть /reports\n" +
			"Для отримання довідки, введіть /help",
		"help": "<b>Довідка по використанню бота</b>\n\n" +
			"<b>Основні команди:</b>\n" +
			"• /start - Запустити бота і отримати привітання\n" +
			"• /quiz - Почати нове опитування\n" +
			"• /reports - Переглянути попередні звіти\n" +
			"• /help - Показати цю довідку\n" +
			"• /cancel - Скасувати поточну операцію\n\n" +
			"<b>Підказки:</b>\n" +
			"• Ви можете скасувати опитування в будь-який момент, натиснувши '❌ Скасувати'\n" +
			"• На питання з форматом введення, вводьте дані точно в запропонованому форматі\n" +
			"• Звіти зберігаються і доступні для перегляду через команду /reports",
	},
	"de": {
		TokenBack:              "⬅️ Zurück",
		TokenCancel:            "❌ Abbrechen",
		TokenConfirmFinish:     "✅ Ja, abschließen",
		TokenReturnToQuestions: "⬅️ Zurück zu den Fragen",
		TokenAffirmative:       "Ja",
		TokenMainMenu:          "🏠 Hauptmenü",
		TokenChangeLanguage:    "🌐 Sprache ändern",

		"quiz.intro": "<b>Befragung zum Zustand des Kniegelenks</b>\n\n" +
			"Ich stelle Ihnen eine Reihe von Fragen zum Zustand des Kniegelenks des Patienten.\n" +
			"Auf Basis Ihrer Antworten wird ein professioneller medizinischer Bericht erstellt.\n\n" +
			"Beantworten Sie die Fragen über die Schaltflächen oder per Texteingabe.\n" +
			"Sie können die Befragung jederzeit mit '❌ Abbrechen' beenden.\n\n" +
			"<b>Fangen wir an!</b>",
		"quiz.progress":         "Frage %d/%d",
		"quiz.format_hint":      "(Format: %s)",
		"quiz.first_question":   "Das ist die erste Frage. Zurückgehen ist nicht möglich.",
		"quiz.invalid_answer":   "Bitte wählen oder geben Sie eine gültige Antwort auf diese Frage ein.",
		"quiz.follow_up":        "Geben Sie zusätzliche Informationen ein:",
		"quiz.confirm_header":   "<b>Überprüfen Sie Ihre Antworten</b>\n\n<i>Stellen Sie sicher, dass alle Antworten korrekt sind, bevor Sie fortfahren.</i>",
		"quiz.confirm_footer":   "Möchten Sie die Befragung abschließen und den Bericht erstellen?",
		"quiz.session_missing":  "Fehler: Befragungssitzung nicht gefunden. Bitte starten Sie die Befragung erneut.",
		"quiz.unavailable":      "Die Befragung ist in dieser Sprache derzeit nicht verfügbar. Versuchen Sie es später erneut.",
		"quiz.resumed":          "Wir setzen die unvollendete Befragung fort.",
		"report.generating":     "<b>Bericht wird erstellt...</b>\n\nBitte warten Sie. Das kann einige Sekunden dauern.",
		"report.wait":           "Der Bericht wird noch erstellt. Bitte warten Sie.",
		"report.failed":         "Fehler: Der Bericht konnte nicht erstellt werden. Bitte versuchen Sie es erneut.",
		"report.header":         "📋 Medizinischer Bericht",
		"report.part":           "(Teil %d/%d)",
		"report.part_continued": "(Fortsetzung, Teil %d/%d)",
		"report.actions":        "Was möchten Sie mit dem Bericht tun?",
		"report.not_found":      "Fehler: Bericht nicht gefunden. Bitte versuchen Sie es erneut.",
		"reports.none":          "<b>Ihre Berichte</b>\n\nSie haben noch keine gespeicherten Berichte. Starten Sie eine neue Befragung mit /quiz.",
		"reports.list":          "<b>Ihre Berichte</b>\n\nSie haben %d gespeicherte Berichte. Wählen Sie einen Bericht aus:",
		"reports.item":          "Bericht vom %s",
		"reports.back":          "🔙 Zurück",
		"reports.back_to_list":  "🔙 Zurück zur Liste",
		"reports.new":           "🔄 Neuer Bericht",
		"cancel.done":           "Vorgang abgebrochen. Sie können von vorne beginnen.",
		"cancel.nothing":        "Kein aktiver Vorgang zum Abbrechen.",
		"menu.title":            "Hauptmenü",
		"menu.hint":             "Verwenden Sie /quiz, um eine Befragung zu starten, oder die Menütasten.",
		"language.prompt":       "Оберіть мову / Sprache wählen:",
		"language.set":          "Sprache eingestellt: Deutsch 🇩🇪",
		"welcome": "Willkommen, <b>%s</b>! 👋\n\n" +
			"Ich bin ein Bot für medizinische Befragungen und die Erstellung von Kniegelenk-Untersuchungsberichten.\n\n" +
			"Für eine neue Befragung geben Sie /quiz ein\n" +
			"Für frühere Berichte geben Sie /reports ein\n" +
			"Für Hilfe geben Sie /help ein",
		"help": "<b>Hilfe zur Verwendung des Bots</b>\n\n" +
			"<b>Grundbefehle:</b>\n" +
			"• /start - Bot starten und Begrüßung erhalten\n" +
			"• /quiz - Neue Befragung starten\n" +
			"• /reports - Frühere Berichte ansehen\n" +
			"• /help - Diese Hilfe anzeigen\n" +
			"• /cancel - Aktuellen Vorgang abbrechen\n\n" +
			"<b>Hinweise:</b>\n" +
			"• Sie können die Befragung jederzeit mit '❌ Abbrechen' beenden\n" +
			"• Bei Fragen mit Eingabeformat geben Sie die Daten genau im vorgeschlagenen Format ein\n" +
			"• Berichte werden gespeichert und sind über /reports abrufbar",
	},
}

// T returns the translated string for key in lang; falls back to Ukrainian.
func T(lang, key string) string {
	if m, ok := translations[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations[DefaultLanguage][key]; ok {
		return v
	}
	return key
}

// Supported reports whether lang has its own string table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Languages lists the supported language tags, default first.
func Languages() []string {
	return []string{"uk", "de"}
}
