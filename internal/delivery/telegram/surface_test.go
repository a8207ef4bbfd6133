package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
	"github.com/aliskhannn/crorepati-bot/internal/effects"
)

func newAttachedSurface(bot *fakeBot) *Surface {
	s := NewSurface(bot, testChatID, questionScreen(0).Page, zap.NewNop())
	s.Attach(7)
	return s
}

func TestSurface_NothingSentBeforeAttach(t *testing.T) {
	bot := newFakeBot()
	s := NewSurface(bot, testChatID, questionScreen(0).Page, zap.NewNop())

	s.SetConfirm(context.Background(), false, "SELECT AN ANSWER")
	s.MarkSelected(context.Background(), "1")

	assert.Empty(t, bot.messages())
	_, ok := bot.lastEdit(0)
	assert.False(t, ok)

	_, kb := s.Render()
	assert.Contains(t, kb.InlineKeyboard[1][0].Text, markSelected)
}

func TestSurface_FreezeDisablesOptions(t *testing.T) {
	bot := newFakeBot()
	s := newAttachedSurface(bot)
	ctx := context.Background()

	s.MarkSelected(ctx, "2")
	s.SetConfirm(ctx, true, "LOCK IT IN")

	edit, ok := bot.lastEdit(7)
	require.True(t, ok)
	assert.Equal(t, "opt:0", *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "confirm", *edit.ReplyMarkup.InlineKeyboard[4][0].CallbackData)
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 6)

	s.SetConfirm(ctx, false, "CHECKING...")
	s.Freeze(ctx)

	edit, _ = bot.lastEdit(7)
	for _, row := range edit.ReplyMarkup.InlineKeyboard {
		assert.Equal(t, "noop", *row[0].CallbackData)
	}
	assert.Contains(t, edit.ReplyMarkup.InlineKeyboard[4][0].Text, "CHECKING...")
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 5)
}

func TestSurface_PulseClearsItself(t *testing.T) {
	bot := newFakeBot()
	s := newAttachedSurface(bot)

	s.Pulse(context.Background(), "3", 10*time.Millisecond)

	edit, ok := bot.lastEdit(7)
	require.True(t, ok)
	assert.Contains(t, edit.ReplyMarkup.InlineKeyboard[3][0].Text, markPulse)

	assert.Eventually(t, func() bool {
		edit, _ := bot.lastEdit(7)
		return !strings.Contains(edit.ReplyMarkup.InlineKeyboard[3][0].Text, markPulse)
	}, time.Second, 5*time.Millisecond)
}

func TestSurface_ShakeFramesQuestion(t *testing.T) {
	bot := newFakeBot()
	s := newAttachedSurface(bot)
	ctx := context.Background()

	s.MarkIncorrect(ctx, "0")
	s.Shake(ctx)

	edit, _ := bot.lastEdit(7)
	assert.Contains(t, edit.Text, "〰️")
	assert.Contains(t, edit.ReplyMarkup.InlineKeyboard[0][0].Text, markIncorrect)

	s.Unshake(ctx)

	edit, _ = bot.lastEdit(7)
	assert.NotContains(t, edit.Text, "〰️")
}

func TestSurface_EffectsCleanUpTemporaryMessages(t *testing.T) {
	bot := newFakeBot()
	s := newAttachedSurface(bot)
	ctx := context.Background()

	s.Celebrate(ctx, 600*time.Millisecond, answer.DefaultPalette)
	s.Flash(ctx, 50*time.Millisecond, answer.GlowColor)
	s.Close(ctx)

	msgs := bot.messages()
	require.Len(t, msgs, 2)

	var ids []int
	for i, m := range msgs {
		ids = append(ids, 101+i)
		assert.NotEmpty(t, m.Text)
	}
	assert.ElementsMatch(t, ids, bot.deleted())

	edit, ok := bot.lastEdit(7)
	require.True(t, ok)
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 4)
}

func TestSurface_EmitReusesConfettiMessage(t *testing.T) {
	bot := newFakeBot()
	s := newAttachedSurface(bot)
	ctx := context.Background()

	burst := effects.Burst{ParticleCount: 50, Origin: effects.Point{X: 0.5, Y: 0.5}, Colors: answer.DefaultPalette}
	s.Emit(ctx, burst)
	s.Emit(ctx, burst)

	require.Len(t, bot.messages(), 1)
	edit, ok := bot.lastEdit(101)
	require.True(t, ok)
	assert.NotEmpty(t, edit.Text)

	s.Clear(ctx)
	assert.Equal(t, []int{101}, bot.deleted())

	s.Clear(ctx)
	assert.Equal(t, []int{101}, bot.deleted())
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{320000, "₹3,20,000"},
		{10000000, "₹1,00,00,000"},
		{100000000, "₹10,00,00,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.amount))
	}
}

func TestDecodeCallback(t *testing.T) {
	cd := decodeCallback(buildOptionCallback("2"))
	assert.Equal(t, actionOption, cd.Action)
	assert.Equal(t, "2", cd.param(0))
	assert.Equal(t, "", cd.param(1))

	cd = decodeCallback(buildConfirmCallback())
	assert.Equal(t, actionConfirm, cd.Action)
	assert.Empty(t, cd.Params)
}

func TestConfettiFrame(t *testing.T) {
	frame := confettiFrame(effects.Burst{ParticleCount: 25, Origin: effects.Point{X: 0.5}, Colors: []string{"#FFD700"}})
	assert.Equal(t, "     "+strings.Repeat("🟡", 5), frame)

	frame = confettiFrame(effects.Burst{ParticleCount: 0, Colors: nil})
	assert.Equal(t, "🎉", frame)
}
