package effects

import (
	"context"
	"time"
)

// Overlay is a temporary full-screen element.
type Overlay interface {
	Show(ctx context.Context, color string)
	Fade(ctx context.Context)
	Remove(ctx context.Context)
}

// FlashOptions configures a flash.
type FlashOptions struct {
	Color   string
	FadeIn  time.Duration // delay before the overlay shows
	Hold    time.Duration // time from start until fade out begins
	FadeOut time.Duration // fade out length before removal
}

// DefaultFlash returns the standard glow flash.
func DefaultFlash(color string, hold time.Duration) FlashOptions {
	return FlashOptions{
		Color:   color,
		FadeIn:  10 * time.Millisecond,
		Hold:    hold,
		FadeOut: 300 * time.Millisecond,
	}
}

// Flash shows the overlay, fades it out and removes it. Remove always runs,
// also when ctx is cancelled while the flash is visible.
func Flash(ctx context.Context, o Overlay, opts FlashOptions) {
	start := time.Now()

	if !wait(ctx, opts.FadeIn) {
		return
	}
	o.Show(ctx, opts.Color)
	defer o.Remove(context.WithoutCancel(ctx))

	if !wait(ctx, opts.Hold-time.Since(start)) {
		return
	}
	o.Fade(ctx)

	wait(ctx, opts.FadeOut)
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
