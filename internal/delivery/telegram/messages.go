// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/effects"
)

// Error and notice messages.
const (
	msgInternalError   = "Something went wrong. Please try again later."
	msgGameUnavailable = "The game server is not reachable right now. Please try again later."
	msgUnknownCommand  = "Unknown command. Available commands:\n\n/play - start a new game\n/quit - walk away with your winnings\n/help - how to play"
	msgStalePage       = "This question is no longer active."
	msgSelectFirst     = "Select an answer first."
	msgNoGame          = "You have no game in progress. Send /play to start one."
)

const (
	msgFlash     = "✨✨✨  CORRECT  ✨✨✨"
	msgFlashFade = "·   ✨   ·"
)

// welcomeMarkdownV2 builds the welcome message.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Who Wants to Be a Crorepati?"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf(
		"Answer %d questions in a row to win %s.",
		len(entities.PrizeLadder),
		formatMoney(entities.PrizeLadder[len(entities.PrizeLadder)-1]),
	)))
	sb.WriteString("\n")
	sb.WriteString(md("Safe levels: "))
	for i, s := range entities.SafeLevels {
		if i > 0 {
			sb.WriteString(md(", "))
		}
		sb.WriteString(bold(formatMoney(s)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md("Press Play or send /play to begin."))

	return sb.String()
}

// helpMarkdownV2 explains how a question is answered.
func helpMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("How to play"))
	sb.WriteString("\n\n")
	sb.WriteString(md("1. Tap an option to select it. Tap another one to change your mind."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Press LOCK IT IN to confirm. Your answer cannot be changed after that."))
	sb.WriteString("\n")
	sb.WriteString(md("3. A correct answer moves you up the ladder. A wrong one ends the game and you keep the last safe amount you reached."))
	sb.WriteString("\n")
	sb.WriteString(md("4. Send /quit at any time to walk away with what you have won."))

	return sb.String()
}

// questionMarkdownV2 builds the text of a question page. A shaking page
// frames the question with wave marks.
func questionMarkdownV2(p *entities.PageView, shaking bool) string {
	var sb strings.Builder

	levels := len(p.PrizeLadder)

	sb.WriteString(bold(fmt.Sprintf("Question %d of %d for %s", p.Level+1, levels, formatMoney(p.Prize))))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(p.Level, levels, 20)))
	sb.WriteString("\n")
	sb.WriteString(md("Winnings: "))
	sb.WriteString(bold(formatMoney(p.CurrentWinnings)))
	sb.WriteString("\n\n")

	question := bold(p.Question)
	if shaking {
		question = md("〰️ ") + question + md(" 〰️")
	}
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString(buildLadder(p, 2))

	return sb.String()
}

// resultMarkdownV2 builds the final screen of a game.
func resultMarkdownV2(r *entities.ResultView) string {
	var title string
	switch r.Status {
	case entities.GameWon:
		title = "🏆 You are a Crorepati!"
	case entities.GameLost:
		title = "💔 Wrong answer. Game over."
	default:
		title = "🏳️ You walked away."
	}

	return fmt.Sprintf("%s\n\n%s%s",
		bold(title),
		md("You take home "),
		bold(formatMoney(r.Winnings)),
	)
}

// colorEmoji maps palette colors to emoji used for confetti.
var colorEmoji = map[string]string{
	"#FFD700": "🟡",
	"#F5C518": "⭐",
	"#00FFB3": "🟢",
	"#00E5FF": "🔵",
	"#FF3D71": "🔴",
	"#9C27B0": "🟣",
	"#2196F3": "💎",
}

// confettiFrame renders one confetti burst as a line of emoji. The line is
// indented by the horizontal origin and its length follows the particle count.
func confettiFrame(b effects.Burst) string {
	count := max(1, b.ParticleCount/5)
	indent := int(b.Origin.X * 10)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", indent))
	for i := 0; i < count; i++ {
		sb.WriteString(confettiPiece(b.Colors))
	}
	return sb.String()
}

func confettiPiece(colors []string) string {
	if len(colors) == 0 {
		return "🎉"
	}
	if e, ok := colorEmoji[colors[rand.Intn(len(colors))]]; ok {
		return e
	}
	return "🎉"
}
