package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Option markers.
const (
	markSelected  = "🔸"
	markPulse     = "✨"
	markCorrect   = "✅"
	markIncorrect = "❌"
)

// buildQuestionKeyboard builds the option and confirm buttons of a question
// page. Frozen options and a disabled confirm button carry noop callbacks.
func buildQuestionKeyboard(v questionView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, o := range v.page.Options {
		label := o.Letter + ". " + o.Text
		switch o.ID {
		case v.correct:
			label = markCorrect + " " + label
		case v.incorrect:
			label = markIncorrect + " " + label
		case v.selected:
			label = markSelected + " " + label
		}
		if o.ID == v.pulsing {
			label += " " + markPulse
		}

		data := buildOptionCallback(o.ID)
		if v.frozen || v.closed {
			data = buildNoopCallback()
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}

	if v.closed {
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	confirm := buildNoopCallback()
	label := "⏳ " + v.confirmLabel
	if v.confirmEnabled {
		confirm = buildConfirmCallback()
		label = "🔒 " + v.confirmLabel
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(label, confirm),
	))

	if !v.frozen {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏳️ Walk away with "+formatMoney(v.page.CurrentWinnings), buildQuitCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildWelcomeKeyboard builds keyboard for the welcome screen.
func buildWelcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Play", buildPlayCallback()),
		),
	)
}

// buildResultKeyboard builds keyboard for the result screen.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildPlayCallback()),
		),
	)
}
