package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

// Sender delivers requests to the Telegram Bot API.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// GameClient is one player's session on the game server.
type GameClient interface {
	Start(ctx context.Context) (*entities.Screen, error)
	Current(ctx context.Context) (*entities.Screen, error)
	Verify(ctx context.Context, choice string) (bool, error)
	Submit(ctx context.Context, choice string) (*entities.Screen, error)
	Quit(ctx context.Context) (*entities.Screen, error)
}

// ClientFactory creates a game session for a new chat.
type ClientFactory func() (GameClient, error)
