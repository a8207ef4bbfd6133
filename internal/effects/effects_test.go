package effects

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmitter struct {
	mu      sync.Mutex
	bursts  []Burst
	cleared int
}

func (f *fakeEmitter) Emit(_ context.Context, b Burst) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bursts = append(f.bursts, b)
}

func (f *fakeEmitter) Clear(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

type fakeOverlay struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeOverlay) add(e string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeOverlay) Show(_ context.Context, color string) { f.add("show:" + color) }
func (f *fakeOverlay) Fade(context.Context)                 { f.add("fade") }
func (f *fakeOverlay) Remove(context.Context)               { f.add("remove") }

func TestCelebrate_DecayingBursts(t *testing.T) {
	e := &fakeEmitter{}
	opts := DefaultCelebration([]string{"#FFD700"})
	opts.Duration = 200 * time.Millisecond
	opts.Interval = 25 * time.Millisecond

	Celebrate(context.Background(), e, opts)

	require.NotEmpty(t, e.bursts)
	assert.Equal(t, 1, e.cleared)
	assert.LessOrEqual(t, len(e.bursts), 8)

	prev := opts.MaxParticles + 1
	for _, b := range e.bursts {
		assert.LessOrEqual(t, b.ParticleCount, prev)
		assert.GreaterOrEqual(t, b.Origin.X, 0.2)
		assert.Less(t, b.Origin.X, 0.8)
		assert.GreaterOrEqual(t, b.Origin.Y, 0.3)
		assert.Less(t, b.Origin.Y, 0.7)
		assert.Equal(t, 360, b.Spread)
		assert.Equal(t, []string{"#FFD700"}, b.Colors)
		prev = b.ParticleCount
	}
}

func TestCelebrate_ClearsOnCancel(t *testing.T) {
	e := &fakeEmitter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	Celebrate(ctx, e, DefaultCelebration(nil))

	assert.Empty(t, e.bursts)
	assert.Equal(t, 1, e.cleared)
}

func TestFlash_Timeline(t *testing.T) {
	o := &fakeOverlay{}
	opts := DefaultFlash("glow", 30*time.Millisecond)
	opts.FadeOut = 10 * time.Millisecond

	start := time.Now()
	Flash(context.Background(), o, opts)

	assert.Equal(t, []string{"show:glow", "fade", "remove"}, o.events)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFlash_RemovesWhenCancelledWhileVisible(t *testing.T) {
	o := &fakeOverlay{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Flash(ctx, o, DefaultFlash("glow", time.Hour))
	}()

	require.Eventually(t, func() bool {
		o.mu.Lock()
		defer o.mu.Unlock()
		return len(o.events) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, []string{"show:glow", "remove"}, o.events)
}
