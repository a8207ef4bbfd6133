package entities

// Question is a single multiple choice question of the game.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"` // multiple choice, shown as A-D
	Correct int      `json:"correct"` // index into Options
}

// IsCorrect reports whether the selected option index is the right one.
func (q *Question) IsCorrect(selected int) bool {
	return selected == q.Correct
}

// ValidOption reports whether selected points at one of the options.
func (q *Question) ValidOption(selected int) bool {
	return selected >= 0 && selected < len(q.Options)
}
