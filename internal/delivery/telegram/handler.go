package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
	"github.com/aliskhannn/crorepati-bot/internal/storage"
)

type Handler struct {
	bot        BotAPI
	logger     *zap.Logger
	newClient  ClientFactory
	pages      *storage.PageStorage[*Page]
	options    []answer.Option
	mu         sync.Mutex
	sessions   map[int64]GameClient
	confirming sync.WaitGroup
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	newClient ClientFactory,
	pages *storage.PageStorage[*Page],
	options ...answer.Option,
) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		newClient: newClient,
		pages:     pages,
		options:   options,
		sessions:  make(map[int64]GameClient),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			h.confirming.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.confirming.Wait()
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart)(ctx, chatID)

	case "play":
		_ = h.withErrorHandling(h.handlePlay)(ctx, chatID)

	case "quit":
		_ = h.withErrorHandling(h.handleQuit)(ctx, chatID)

	case "help":
		_ = h.withErrorHandling(h.handleHelp)(ctx, chatID)

	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// client returns the game session of the chat, creating it on first use.
func (h *Handler) client(chatID int64) (GameClient, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.sessions[chatID]; ok {
		return c, nil
	}

	c, err := h.newClient()
	if err != nil {
		return nil, err
	}
	h.sessions[chatID] = c

	return c, nil
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
