package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/effects"
)

// questionView is the rendering state of a question message.
type questionView struct {
	page *entities.PageView

	selected  string
	pulsing   string
	correct   string
	incorrect string

	confirmEnabled bool
	confirmLabel   string

	frozen  bool
	shaking bool
	closed  bool
}

// Surface renders one question page as a Telegram message. Every visual
// change re-renders the message and its keyboard. Confetti and the glow flash
// are temporary messages that are deleted when their effect ends.
type Surface struct {
	bot    Sender
	chatID int64
	logger *zap.Logger

	mu         sync.Mutex // serializes state changes with the requests that render them
	messageID  int
	view       questionView
	pulse      *time.Timer
	confettiID int
	flashID    int

	running sync.WaitGroup
}

// NewSurface creates a surface for page. Nothing is sent until the first
// message is attached.
func NewSurface(bot Sender, chatID int64, page *entities.PageView, logger *zap.Logger) *Surface {
	return &Surface{
		bot:    bot,
		chatID: chatID,
		logger: logger,
		view:   questionView{page: page},
	}
}

// Render returns the text and keyboard of the current state.
func (s *Surface) Render() (string, tgbotapi.InlineKeyboardMarkup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return questionMarkdownV2(s.view.page, s.view.shaking), buildQuestionKeyboard(s.view)
}

// Attach binds the surface to the sent question message.
func (s *Surface) Attach(messageID int) {
	s.mu.Lock()
	s.messageID = messageID
	s.mu.Unlock()
}

// Close waits for running effects and leaves the message with the final
// marks and no active buttons.
func (s *Surface) Close(ctx context.Context) {
	s.running.Wait()

	s.update(ctx, func(v *questionView) bool {
		if v.closed {
			return false
		}
		if s.pulse != nil {
			s.pulse.Stop()
		}
		v.pulsing = ""
		v.closed = true
		return true
	})
}

func (s *Surface) MarkSelected(ctx context.Context, choice string) {
	s.update(ctx, func(v *questionView) bool {
		v.selected = choice
		return true
	})
}

// Pulse marks choice until d has passed.
func (s *Surface) Pulse(ctx context.Context, choice string, d time.Duration) {
	s.update(ctx, func(v *questionView) bool {
		if s.pulse != nil {
			s.pulse.Stop()
		}
		v.pulsing = choice
		s.pulse = time.AfterFunc(d, func() {
			s.update(context.WithoutCancel(ctx), func(v *questionView) bool {
				if v.pulsing != choice {
					return false
				}
				v.pulsing = ""
				return true
			})
		})
		return true
	})
}

func (s *Surface) SetConfirm(ctx context.Context, enabled bool, label string) {
	s.update(ctx, func(v *questionView) bool {
		v.confirmEnabled = enabled
		v.confirmLabel = label
		return true
	})
}

func (s *Surface) Freeze(ctx context.Context) {
	s.update(ctx, func(v *questionView) bool {
		v.frozen = true
		return true
	})
}

func (s *Surface) MarkCorrect(ctx context.Context, choice string) {
	s.update(ctx, func(v *questionView) bool {
		v.correct = choice
		return true
	})
}

func (s *Surface) MarkIncorrect(ctx context.Context, choice string) {
	s.update(ctx, func(v *questionView) bool {
		v.incorrect = choice
		return true
	})
}

func (s *Surface) Shake(ctx context.Context) {
	s.update(ctx, func(v *questionView) bool {
		v.shaking = true
		return true
	})
}

func (s *Surface) Unshake(ctx context.Context) {
	s.update(ctx, func(v *questionView) bool {
		v.shaking = false
		return true
	})
}

// Flash starts the glow flash in the background.
func (s *Surface) Flash(ctx context.Context, d time.Duration, color string) {
	s.running.Add(1)
	go func() {
		defer s.running.Done()
		effects.Flash(ctx, s, effects.DefaultFlash(color, d))
	}()
}

// Celebrate starts the confetti in the background.
func (s *Surface) Celebrate(ctx context.Context, d time.Duration, colors []string) {
	opts := effects.DefaultCelebration(colors)
	opts.Duration = d

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		effects.Celebrate(ctx, s, opts)
	}()
}

// Emit shows a confetti burst, reusing the confetti message once it exists.
func (s *Surface) Emit(_ context.Context, b effects.Burst) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := confettiFrame(b)
	if s.confettiID == 0 {
		s.confettiID = s.sendTemporary(text)
		return
	}
	s.send(tgbotapi.NewEditMessageText(s.chatID, s.confettiID, text))
}

// Clear deletes the confetti message.
func (s *Surface) Clear(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteMessage(s.confettiID)
	s.confettiID = 0
}

// Show sends the glow flash message.
func (s *Surface) Show(context.Context, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flashID = s.sendTemporary(msgFlash)
}

// Fade dims the glow flash message.
func (s *Surface) Fade(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flashID != 0 {
		s.send(tgbotapi.NewEditMessageText(s.chatID, s.flashID, msgFlashFade))
	}
}

// Remove deletes the glow flash message.
func (s *Surface) Remove(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteMessage(s.flashID)
	s.flashID = 0
}

// update applies fn to the view and re-renders the message when fn reports
// a change and a message is attached.
func (s *Surface) update(_ context.Context, fn func(v *questionView) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.view) || s.messageID == 0 {
		return
	}

	edit := newEdit(s.chatID, s.messageID, questionMarkdownV2(s.view.page, s.view.shaking))
	kb := buildQuestionKeyboard(s.view)
	edit.ReplyMarkup = &kb
	s.send(edit)
}

func (s *Surface) sendTemporary(text string) int {
	msg, err := s.bot.Send(newPlainMessage(s.chatID, text))
	if err != nil {
		s.logger.Warn("failed to send effect message",
			zap.Int64("chat_id", s.chatID),
			zap.Error(err),
		)
		return 0
	}
	return msg.MessageID
}

func (s *Surface) deleteMessage(messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := s.bot.Request(tgbotapi.NewDeleteMessage(s.chatID, messageID)); err != nil {
		s.logger.Warn("failed to delete effect message",
			zap.Int64("chat_id", s.chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

func (s *Surface) send(c tgbotapi.Chattable) {
	if _, err := s.bot.Send(c); err != nil {
		s.logger.Warn("failed to render page",
			zap.Int64("chat_id", s.chatID),
			zap.Error(err),
		)
	}
}
