package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
	"github.com/aliskhannn/crorepati-bot/internal/client"
	"github.com/aliskhannn/crorepati-bot/internal/config"
	"github.com/aliskhannn/crorepati-bot/internal/delivery/telegram"
	"github.com/aliskhannn/crorepati-bot/internal/logger"
	"github.com/aliskhannn/crorepati-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Bot.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Show the welcome screen",
		},
		{
			Command:     "play",
			Description: "Start a new game",
		},
		{
			Command:     "quit",
			Description: "Walk away with your winnings",
		},
		{
			Command:     "help",
			Description: "How to play",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	newClient := func() (telegram.GameClient, error) {
		c, err := client.New(cfg.Bot.ServerURL, cfg.Bot.VerifyTimeout, lg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	timings := answer.Timings{
		Pulse:       cfg.Effects.Pulse,
		Celebration: cfg.Effects.Celebration,
		Flash:       cfg.Effects.Flash,
		Shake:       cfg.Effects.Shake,
		AfterShake:  cfg.Effects.AfterShake,
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		newClient,
		storage.NewPageStorage[*telegram.Page](),
		answer.WithTimings(timings),
	)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Fatal("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
