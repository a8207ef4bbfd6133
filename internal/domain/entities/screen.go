package entities

import "strconv"

// Screen kinds.
const (
	ScreenWelcome  = "welcome"
	ScreenQuestion = "question"
	ScreenResult   = "result"
)

// Screen is what the game server renders for a page request.
type Screen struct {
	Kind   string      `json:"kind"`
	Page   *PageView   `json:"page,omitempty"`
	Result *ResultView `json:"result,omitempty"`
}

// PageView is the question page for the current level.
type PageView struct {
	Question        string       `json:"question"`
	Options         []OptionView `json:"options"`
	Level           int          `json:"level"`
	Prize           int64        `json:"prize"`
	PrizeLadder     []int64      `json:"prize_ladder"`
	CurrentWinnings int64        `json:"current_winnings"`
	SafeLevels      []int64      `json:"safe_levels"`
}

// OptionView is one selectable option. ID is the choice identifier sent back
// to the server.
type OptionView struct {
	ID     string `json:"id"`
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// ResultView is the final screen of a game.
type ResultView struct {
	Status   string `json:"status"`
	Winnings int64  `json:"winnings"`
}

// Verdict is the verification response for a checked answer.
type Verdict struct {
	Correct bool   `json:"correct"`
	Error   string `json:"error,omitempty"`
}

// NewPageView renders the current level of the game.
func NewPageView(g *Game) *PageView {
	q, ok := g.Current()
	if !ok {
		return nil
	}

	options := make([]OptionView, 0, len(q.Options))
	for i, text := range q.Options {
		options = append(options, OptionView{
			ID:     strconv.Itoa(i),
			Letter: OptionLetter(i),
			Text:   text,
		})
	}

	return &PageView{
		Question:        q.Text,
		Options:         options,
		Level:           g.Level,
		Prize:           g.Prize(),
		PrizeLadder:     PrizeLadder,
		CurrentWinnings: g.Winnings,
		SafeLevels:      SafeLevels,
	}
}

// OptionLetter returns the display letter for an option index.
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// Option returns the option with the given choice identifier.
func (p *PageView) Option(id string) (OptionView, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return OptionView{}, false
}
