package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
)

// Page is a question message together with the controller that owns its
// selection.
type Page struct {
	Surface    *Surface
	Controller *answer.Controller
}

// confirm runs the confirmation flow of page. It blocks until the next
// screen has been shown.
func (h *Handler) confirm(ctx context.Context, chatID int64, page *Page) {
	outcome, err := page.Controller.Confirm(ctx)
	switch {
	case errors.Is(err, answer.ErrAlreadyConfirmed), errors.Is(err, answer.ErrNothingSelected):
		h.logger.Debug("confirm ignored",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	case err != nil:
		h.logger.Error("failed to submit answer",
			zap.Int64("chat_id", chatID),
			zap.String("choice", outcome.Choice),
			zap.Error(err),
		)
		h.sendError(chatID, msgGameUnavailable)
	default:
		h.logger.Info("answer confirmed",
			zap.Int64("chat_id", chatID),
			zap.String("choice", outcome.Choice),
			zap.Stringer("verdict", outcome.Verdict),
		)
	}
}

// submitter posts the final choice and shows the screen the server moved to.
func (h *Handler) submitter(chatID int64, client GameClient, surface *Surface) answer.Submitter {
	return answer.SubmitterFunc(func(ctx context.Context, choice string) error {
		surface.Close(ctx)

		next, err := client.Submit(ctx, choice)
		if err != nil {
			return err
		}

		return h.showScreen(ctx, chatID, client, next)
	})
}
