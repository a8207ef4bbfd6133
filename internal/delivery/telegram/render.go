package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

var errQuestionWithoutPage = errors.New("question screen without page")

// showScreen sends the screen returned by the game server.
func (h *Handler) showScreen(ctx context.Context, chatID int64, client GameClient, screen *entities.Screen) error {
	switch screen.Kind {
	case entities.ScreenQuestion:
		if screen.Page == nil {
			return errQuestionWithoutPage
		}
		return h.showQuestion(ctx, chatID, client, screen.Page)

	case entities.ScreenResult:
		h.closePage(ctx, chatID)

		result := screen.Result
		if result == nil {
			result = &entities.ResultView{Status: entities.GameQuit}
		}

		msg := newMessage(chatID, resultMarkdownV2(result))
		msg.ReplyMarkup = buildResultKeyboard()
		return h.send(msg)

	default:
		h.closePage(ctx, chatID)

		msg := newMessage(chatID, welcomeMarkdownV2())
		msg.ReplyMarkup = buildWelcomeKeyboard()
		return h.send(msg)
	}
}

// showQuestion sends a question message and makes it the active page of the
// chat. The previous page, if any, is closed.
func (h *Handler) showQuestion(ctx context.Context, chatID int64, client GameClient, view *entities.PageView) error {
	logger := h.logger.With(zap.Int64("chat_id", chatID), zap.Int("level", view.Level))

	surface := NewSurface(h.bot, chatID, view, logger)
	opts := append([]answer.Option{answer.WithLogger(logger)}, h.options...)
	controller := answer.New(surface, client, h.submitter(chatID, client, surface), opts...)
	controller.Init(ctx)

	text, kb := surface.Render()
	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send question: %w", err)
	}
	surface.Attach(sent.MessageID)

	prev, hadPrev := h.pages.UpsertAndGetPrev(chatID, sent.MessageID, &Page{
		Surface:    surface,
		Controller: controller,
	})
	if hadPrev && prev.MessageID != sent.MessageID {
		prev.Page.Surface.Close(ctx)
	}

	return nil
}

// closePage closes and forgets the active page of the chat.
func (h *Handler) closePage(ctx context.Context, chatID int64) {
	if p, ok := h.pages.Get(chatID); ok {
		h.pages.Delete(chatID)
		p.Page.Surface.Close(ctx)
	}
}
