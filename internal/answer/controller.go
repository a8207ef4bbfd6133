// Package answer implements the interaction flow of a single question page:
// one option is picked, confirmed, verified and then submitted.
package answer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNothingSelected         = errors.New("no option selected")
	ErrAlreadyConfirmed        = errors.New("answer already confirmed")
	ErrVerificationUnavailable = errors.New("verification unavailable")
)

// State is the position of a page in its interaction flow.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateConfirming
	StateCelebrating
	StateShaking
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "option-selected"
	case StateConfirming:
		return "confirming"
	case StateCelebrating:
		return "celebrating"
	case StateShaking:
		return "shaking"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Verdict is the result of verification as seen by the controller.
type Verdict int

const (
	VerdictUnavailable Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "unavailable"
	}
}

// Outcome describes a finished confirmation.
type Outcome struct {
	Choice  string
	Verdict Verdict
}

// Timings holds the durations of every timed step.
type Timings struct {
	Pulse       time.Duration
	Celebration time.Duration
	Flash       time.Duration
	Shake       time.Duration
	AfterShake  time.Duration
}

// DefaultTimings returns the standard animation durations.
func DefaultTimings() Timings {
	return Timings{
		Pulse:       200 * time.Millisecond,
		Celebration: 2000 * time.Millisecond,
		Flash:       500 * time.Millisecond,
		Shake:       500 * time.Millisecond,
		AfterShake:  300 * time.Millisecond,
	}
}

// Labels are the texts shown on the confirm control.
type Labels struct {
	Idle     string
	Ready    string
	Checking string
}

// DefaultLabels returns the standard confirm control labels.
func DefaultLabels() Labels {
	return Labels{
		Idle:     "SELECT AN ANSWER",
		Ready:    "LOCK IT IN",
		Checking: "CHECKING...",
	}
}

// DefaultPalette is the confetti palette used for celebrations.
var DefaultPalette = []string{
	"#FFD700", // gold
	"#F5C518", // gold primary
	"#00FFB3", // success
	"#00E5FF", // electric accent
	"#FF3D71", // danger
	"#9C27B0", // purple
	"#2196F3", // blue
}

// GlowColor is the color of the success flash.
const GlowColor = "rgba(0, 255, 179, 0.2)"

// Option configures a Controller.
type Option func(*Controller)

// WithTimings overrides animation durations.
func WithTimings(t Timings) Option {
	return func(c *Controller) { c.timings = t }
}

// WithLabels overrides confirm control labels.
func WithLabels(l Labels) Option {
	return func(c *Controller) { c.labels = l }
}

// WithSleeper replaces the timer used between animation steps.
func WithSleeper(s Sleeper) Option {
	return func(c *Controller) { c.sleeper = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPalette overrides celebration colors.
func WithPalette(colors []string) Option {
	return func(c *Controller) { c.palette = colors }
}

// Controller owns the selection of one question page and runs its
// confirmation flow. A Controller is used for a single page view.
type Controller struct {
	effects   Effects
	verifier  Verifier
	submitter Submitter
	sleeper   Sleeper
	logger    *zap.Logger
	timings   Timings
	labels    Labels
	palette   []string

	mu       sync.Mutex
	state    State
	selected string
}

// New creates a controller in the idle state.
func New(effects Effects, verifier Verifier, submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		effects:   effects,
		verifier:  verifier,
		submitter: submitter,
		sleeper:   timerSleeper{},
		logger:    zap.NewNop(),
		timings:   DefaultTimings(),
		labels:    DefaultLabels(),
		palette:   DefaultPalette,
		state:     StateIdle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Init renders the page controls in their initial state.
func (c *Controller) Init(ctx context.Context) {
	c.effects.SetConfirm(ctx, false, c.labels.Idle)
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns the selected choice, if any.
func (c *Controller) Selected() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.state != StateIdle
}

// SelectOption marks choice as the only selected option. Selection is frozen
// once confirmation has started; clicks after that are ignored.
func (c *Controller) SelectOption(ctx context.Context, choice string) {
	c.mu.Lock()
	switch c.state {
	case StateIdle, StateSelected:
	default:
		state := c.state
		c.mu.Unlock()
		c.logger.Debug("selection ignored",
			zap.String("choice", choice),
			zap.Stringer("state", state),
		)
		return
	}

	same := c.state == StateSelected && c.selected == choice
	c.selected = choice
	c.state = StateSelected
	c.mu.Unlock()

	if !same {
		c.effects.MarkSelected(ctx, choice)
		c.effects.SetConfirm(ctx, true, c.labels.Ready)
	}
	c.effects.Pulse(ctx, choice, c.timings.Pulse)
}

// Confirm verifies the selected choice, plays the matching animation and
// submits the choice. The submission happens exactly once per controller and
// also when verification is unavailable. The flow is not cancelled by ctx.
func (c *Controller) Confirm(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.mu.Unlock()
		return Outcome{}, ErrNothingSelected
	case StateSelected:
	default:
		c.mu.Unlock()
		return Outcome{}, ErrAlreadyConfirmed
	}

	choice := c.selected
	c.state = StateConfirming
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	out := Outcome{Choice: choice, Verdict: VerdictUnavailable}

	c.effects.SetConfirm(ctx, false, c.labels.Checking)
	c.effects.Freeze(ctx)

	correct, err := c.verifier.Verify(ctx, choice)
	if err != nil {
		c.logger.Warn("answer verification unavailable, submitting without animation",
			zap.String("choice", choice),
			zap.Error(err),
		)
	} else if correct {
		out.Verdict = VerdictCorrect
		c.celebrate(ctx, choice)
	} else {
		out.Verdict = VerdictIncorrect
		c.shake(ctx, choice)
	}

	c.setState(StateSubmitted)

	if err := c.submitter.Submit(ctx, choice); err != nil {
		return out, fmt.Errorf("submit answer: %w", err)
	}

	c.logger.Debug("answer submitted",
		zap.String("choice", choice),
		zap.Stringer("verdict", out.Verdict),
	)

	return out, nil
}

func (c *Controller) celebrate(ctx context.Context, choice string) {
	c.setState(StateCelebrating)

	c.effects.MarkCorrect(ctx, choice)
	c.effects.Celebrate(ctx, c.timings.Celebration, c.palette)
	c.effects.Flash(ctx, c.timings.Flash, GlowColor)

	c.sleeper.Sleep(ctx, c.timings.Celebration)
}

func (c *Controller) shake(ctx context.Context, choice string) {
	c.setState(StateShaking)

	c.effects.MarkIncorrect(ctx, choice)
	c.effects.Shake(ctx)
	c.sleeper.Sleep(ctx, c.timings.Shake)
	c.effects.Unshake(ctx)

	c.sleeper.Sleep(ctx, c.timings.AfterShake)
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
