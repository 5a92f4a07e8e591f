// Package loop runs the fixed-tick simulation and presents each frame.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fbroids/internal/alloc"
	"github.com/tomz197/fbroids/internal/display"
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/input"
	"github.com/tomz197/fbroids/internal/physics"
	"github.com/tomz197/fbroids/internal/rng"
)

// Options wires a run to its collaborators.
type Options struct {
	Display   display.Display
	Input     input.Source     // nil means no keyboard
	Allocator alloc.Allocator  // backs the back buffer; nil means the heap
	Logger    *log.Logger      // nil discards
	Settings  Settings
	Seed      uint64 // 0 seeds from the clock
	Splash    *Splash
	MaxTicks  uint64 // 0 runs until exit or cancellation
}

// Pacer holds each tick to a target duration.
type Pacer struct {
	frame time.Duration
	start time.Time
	now   func() time.Time
}

// NewPacer creates a pacer with the given per-tick target.
func NewPacer(frame time.Duration) *Pacer {
	return &Pacer{frame: frame, now: time.Now}
}

// Start marks the beginning of a tick.
func (p *Pacer) Start() {
	p.start = p.now()
}

// Wait blocks for the remainder of the tick. It returns the context error
// if ctx is cancelled first.
func (p *Pacer) Wait(ctx context.Context) error {
	remaining := p.frame - p.now().Sub(p.start)
	if remaining <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run executes the frame loop until the exit intent, MaxTicks, or ctx
// cancellation. Every tick: gather intent, step the simulation, draw,
// flush to the display, present, pace.
func Run(ctx context.Context, opts Options) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	src := opts.Input
	if src == nil {
		src = input.None{}
	}

	mode := opts.Display.Mode()
	canvas, err := draw.NewCanvas(mode.Width, mode.Height, mode.Format, opts.Allocator)
	if err != nil {
		return Stats{}, fmt.Errorf("create back buffer for %v: %w", mode, err)
	}
	defer canvas.Release()

	fb := opts.Display.Framebuffer()
	if fb == nil || fb.Width() != mode.Width || fb.Height() != mode.Height {
		return Stats{}, fmt.Errorf("%w: display framebuffer does not match mode %v", draw.ErrFramebufferTooSmall, mode)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rng.TimeSeed()
	}
	r := rng.New(seed)

	s := opts.Settings
	game := NewGame(physics.NewBounds(mode.Width, mode.Height), s, r)
	pacer := NewPacer(s.FrameTime)
	poll := uint64(max(s.InputPollInterval, 1))

	logger.Info("simulation started",
		"mode", mode.String(),
		"seed", seed,
		"asteroids", len(game.State().Asteroids),
	)

	waves := game.Stats().Waves
	for opts.MaxTicks == 0 || game.State().Tick < opts.MaxTicks {
		pacer.Start()
		tick := game.State().Tick

		var in input.Intent
		if tick%poll == 0 {
			in = src.Poll()
		}
		if in.Exit {
			logger.Info("exit requested", "tick", tick)
			break
		}

		game.Step(in)
		if st := game.Stats(); st.Waves != waves {
			waves = st.Waves
			logger.Debug("new wave", "wave", waves, "tick", tick)
		}

		game.Draw(canvas)
		if opts.Splash.Active(tick) {
			opts.Splash.Draw(canvas)
		}
		if err := canvas.Flush(fb); err != nil {
			return game.Stats(), fmt.Errorf("flush tick %d: %w", tick, err)
		}
		if err := opts.Display.Present(); err != nil {
			return game.Stats(), fmt.Errorf("present tick %d: %w", tick, err)
		}

		if err := pacer.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info("simulation cancelled", "tick", tick)
				break
			}
			return game.Stats(), err
		}
	}

	st := game.Stats()
	logger.Info("simulation stopped",
		"ticks", st.Ticks,
		"shots", st.Shots,
		"hits", st.Hits,
		"waves", st.Waves,
	)
	return st, nil
}
