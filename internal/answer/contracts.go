package answer

import (
	"context"
	"time"
)

// Effects is the rendering surface the controller drives. Implementations
// own their visual state and clean up any temporary element they create.
type Effects interface {
	// MarkSelected marks choice as the only selected option.
	MarkSelected(ctx context.Context, choice string)
	// Pulse plays a short feedback pulse on choice.
	Pulse(ctx context.Context, choice string, d time.Duration)
	// SetConfirm enables or disables the confirm control and sets its label.
	SetConfirm(ctx context.Context, enabled bool, label string)
	// Freeze stops options from reacting to input.
	Freeze(ctx context.Context)
	MarkCorrect(ctx context.Context, choice string)
	MarkIncorrect(ctx context.Context, choice string)
	Shake(ctx context.Context)
	Unshake(ctx context.Context)
	// Flash starts a screen-wide glow and returns immediately.
	Flash(ctx context.Context, d time.Duration, color string)
	// Celebrate starts the particle celebration and returns immediately.
	Celebrate(ctx context.Context, d time.Duration, colors []string)
}

// Verifier judges whether a choice is correct.
type Verifier interface {
	Verify(ctx context.Context, choice string) (bool, error)
}

// Submitter hands the final choice over to the next step.
type Submitter interface {
	Submit(ctx context.Context, choice string) error
}

// Sleeper suspends the flow between animation steps.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, choice string) (bool, error)

func (f VerifierFunc) Verify(ctx context.Context, choice string) (bool, error) {
	return f(ctx, choice)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, choice string) error

func (f SubmitterFunc) Submit(ctx context.Context, choice string) error {
	return f(ctx, choice)
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
