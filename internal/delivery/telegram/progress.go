package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

// buildLadder renders the prize ladder around the current level, highest
// prize first. Safe amounts are marked with a shield.
func buildLadder(p *entities.PageView, around int) string {
	if len(p.PrizeLadder) == 0 {
		return ""
	}

	lo := max(0, p.Level-around)
	hi := min(len(p.PrizeLadder)-1, p.Level+around)

	var sb strings.Builder
	for i := hi; i >= lo; i-- {
		amount := p.PrizeLadder[i]

		marker := "  "
		switch {
		case i == p.Level:
			marker = "▶"
		case i < p.Level:
			marker = "✓"
		}

		safe := ""
		if isSafe(p.SafeLevels, amount) {
			safe = " 🛡"
		}

		sb.WriteString(md(fmt.Sprintf("%s %2d  %s%s", marker, i+1, formatMoney(amount), safe)))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func isSafe(safe []int64, amount int64) bool {
	for _, s := range safe {
		if s == amount {
			return true
		}
	}
	return false
}
