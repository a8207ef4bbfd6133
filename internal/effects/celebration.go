// Package effects runs timed visual effects on top of a rendering surface.
// Every helper removes what it created once its own timer fires.
package effects

import (
	"context"
	"math/rand"
	"time"
)

// Point is a position relative to the screen, both axes in [0, 1].
type Point struct {
	X float64
	Y float64
}

// Burst is a single emission of confetti particles.
type Burst struct {
	ParticleCount int
	Origin        Point
	StartVelocity int
	Spread        int
	Ticks         int
	Colors        []string
}

// Emitter renders confetti bursts.
type Emitter interface {
	Emit(ctx context.Context, b Burst)
	// Clear removes everything the emitter rendered.
	Clear(ctx context.Context)
}

// CelebrationOptions configures a celebration.
type CelebrationOptions struct {
	Duration      time.Duration
	Interval      time.Duration
	MaxParticles  int
	StartVelocity int
	Spread        int
	Ticks         int
	Colors        []string
}

// DefaultCelebration returns the standard two second celebration.
func DefaultCelebration(colors []string) CelebrationOptions {
	return CelebrationOptions{
		Duration:      2 * time.Second,
		Interval:      250 * time.Millisecond,
		MaxParticles:  50,
		StartVelocity: 30,
		Spread:        360,
		Ticks:         60,
		Colors:        colors,
	}
}

// Celebrate emits bursts at every interval until the duration ends. The
// particle count decays with the time left. Clear always runs at the end, also
// when ctx is cancelled early.
func Celebrate(ctx context.Context, e Emitter, opts CelebrationOptions) {
	defer e.Clear(context.WithoutCancel(ctx))

	if opts.Duration <= 0 || opts.Interval <= 0 {
		return
	}

	end := time.Now().Add(opts.Duration)
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			left := end.Sub(now)
			if left <= 0 {
				return
			}
			e.Emit(ctx, newBurst(opts, left))
		}
	}
}

func newBurst(opts CelebrationOptions, left time.Duration) Burst {
	count := int(float64(opts.MaxParticles) * float64(left) / float64(opts.Duration))

	return Burst{
		ParticleCount: count,
		Origin: Point{
			X: randomInRange(0.2, 0.8),
			Y: randomInRange(0.3, 0.7),
		},
		StartVelocity: opts.StartVelocity,
		Spread:        opts.Spread,
		Ticks:         opts.Ticks,
		Colors:        opts.Colors,
	}
}

func randomInRange(lo, hi float64) float64 {
	return rand.Float64()*(hi-lo) + lo
}
