package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// handleStart shows the welcome screen.
func (h *Handler) handleStart(_ context.Context, chatID int64) error {
	msg := newMessage(chatID, welcomeMarkdownV2())
	msg.ReplyMarkup = buildWelcomeKeyboard()
	return h.send(msg)
}

func (h *Handler) handleHelp(_ context.Context, chatID int64) error {
	return h.send(newMessage(chatID, helpMarkdownV2()))
}

// handlePlay starts a new game and shows its first question.
func (h *Handler) handlePlay(ctx context.Context, chatID int64) error {
	client, err := h.client(chatID)
	if err != nil {
		return fmt.Errorf("create game client: %w", err)
	}

	screen, err := client.Start(ctx)
	if err != nil {
		h.logger.Warn("failed to start game",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgGameUnavailable)
		return nil
	}

	h.logger.Info("game started", zap.Int64("chat_id", chatID))

	return h.showScreen(ctx, chatID, client, screen)
}

// handleQuit ends the game in progress keeping the current winnings.
func (h *Handler) handleQuit(ctx context.Context, chatID int64) error {
	if _, ok := h.pages.Get(chatID); !ok {
		return h.send(newPlainMessage(chatID, msgNoGame))
	}

	client, err := h.client(chatID)
	if err != nil {
		return fmt.Errorf("create game client: %w", err)
	}

	screen, err := client.Quit(ctx)
	if err != nil {
		h.logger.Warn("failed to quit game",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgGameUnavailable)
		return nil
	}

	return h.showScreen(ctx, chatID, client, screen)
}
