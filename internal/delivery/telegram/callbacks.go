package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionOption:
		h.handleOptionCallback(ctx, cb, chatID, messageID, data.param(0))

	case actionConfirm:
		h.handleConfirmCallback(ctx, cb, chatID, messageID)

	case actionPlay:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handlePlay)(ctx, chatID)

	case actionQuit:
		if _, ok := h.pages.GetByMessage(chatID, messageID); !ok {
			h.answerCallback(cb.ID, msgStalePage)
			return
		}
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleQuit)(ctx, chatID)

	default:
		// Remove the user's "clock".
		h.answerCallback(cb.ID, "")
	}
}

// handleOptionCallback selects an option on the active page.
func (h *Handler) handleOptionCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, messageID int, choice string) {
	page, ok := h.pages.GetByMessage(chatID, messageID)
	if !ok || choice == "" {
		h.answerCallback(cb.ID, msgStalePage)
		return
	}

	h.answerCallback(cb.ID, "")
	page.Page.Controller.SelectOption(ctx, choice)
}

// handleConfirmCallback starts the confirmation flow in the background so
// other chats keep being served during verification and animations.
func (h *Handler) handleConfirmCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, messageID int) {
	page, ok := h.pages.GetByMessage(chatID, messageID)
	if !ok {
		h.answerCallback(cb.ID, msgStalePage)
		return
	}

	if page.Page.Controller.State() == answer.StateIdle {
		h.answerCallback(cb.ID, msgSelectFirst)
		return
	}

	h.answerCallback(cb.ID, "")

	h.confirming.Add(1)
	go func() {
		defer h.confirming.Done()
		h.confirm(ctx, chatID, page.Page)
	}()
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
