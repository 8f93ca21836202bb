package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/coreman2200/panelfx/internal/audio"
)

var (
	ErrInvalidLayout = errors.New("invalid layout")
	ErrNoEffect      = errors.New("effect is nil")
)

// Engine runs the active effect once per tick, applies post-processing and
// hands the frames to the sink. It is driven synchronously by the caller.
type Engine struct {
	Ctx    *Context
	Active Effect
	Sink   Sink

	buf  []Frame
	post PostPipeline

	ticks uint64

	// metrics of the last tick (durations in ms)
	Last struct {
		RenderMS float64
		PostMS   float64
		TotalMS  float64
		Frames   int
	}
}

// PostPipeline groups post stages; all are optional.
type PostPipeline struct {
	Clamp   func([]Frame)
	Limiter func([]Frame, *Uniforms)
}

// NewEngine initialises e against ctx and returns an Engine with the
// default post stages wired. sink may be nil.
func NewEngine(ctx *Context, e Effect, sink Sink) (*Engine, error) {
	if ctx == nil || ctx.Layout == nil || ctx.Layout.Count() == 0 {
		return nil, ErrInvalidLayout
	}
	if e == nil {
		return nil, ErrNoEffect
	}
	if ctx.Uniforms == nil {
		ctx.Uniforms = NewUniforms()
	}
	if err := e.Init(ctx); err != nil {
		return nil, fmt.Errorf("init %s: %w", e.Name(), err)
	}
	return &Engine{
		Ctx:    ctx,
		Active: e,
		Sink:   sink,
		buf:    make([]Frame, ctx.Layout.Count()),
		post: PostPipeline{
			Clamp:   ClampFrames,
			Limiter: DefaultLimiter,
		},
	}, nil
}

func (e *Engine) SetPost(p PostPipeline) { e.post = p }

// Ticks is the number of completed ticks.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Frames returns the frames of the last tick. The slice is reused.
func (e *Engine) Frames() []Frame { return e.buf[:e.Last.Frames] }

// Tick renders one frame. in may be nil when no sound is available. It
// returns the number of records written.
func (e *Engine) Tick(in *audio.Features) (int, error) {
	start := time.Now()

	n := e.Active.Render(e.buf, e.Ctx, in)
	if n > len(e.buf) {
		n = len(e.buf)
	}
	if n < 0 {
		n = 0
	}
	out := e.buf[:n]

	postStart := time.Now()
	if e.post.Clamp != nil {
		e.post.Clamp(out)
	}
	if e.post.Limiter != nil {
		e.post.Limiter(out, e.Ctx.Uniforms)
	}
	e.Last.PostMS = float64(time.Since(postStart).Microseconds()) / 1000.0

	if e.Sink != nil {
		if err := e.Sink.Write(out); err != nil {
			return 0, fmt.Errorf("sink write: %w", err)
		}
	}

	e.Last.Frames = n
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.Last.TotalMS = e.Last.RenderMS
	e.ticks++
	return n, nil
}

// SetEffect makes the named effect active and initialises it. If preset is
// not empty it is applied first.
func (e *Engine) SetEffect(name, preset string, reg *Registry) error {
	if reg == nil {
		return errors.New("registry is nil")
	}
	eff, ok := reg.Get(name)
	if !ok {
		return errors.New("effect not found: " + name)
	}
	if preset != "" {
		eff.ApplyPreset(preset, e.Ctx.Uniforms)
	}
	if err := eff.Init(e.Ctx); err != nil {
		return fmt.Errorf("init %s: %w", name, err)
	}
	e.Active = eff
	return nil
}

// Rotate turns the layout by deg (snapped to 30 degrees) and reinitialises
// the active effect so it rebuilds anything derived from panel positions.
func (e *Engine) Rotate(deg float64) (int, error) {
	applied, err := e.Ctx.Layout.RotateBy(deg)
	if err != nil {
		return 0, err
	}
	if applied == 0 {
		return 0, nil
	}
	if err := e.Active.Init(e.Ctx); err != nil {
		return applied, fmt.Errorf("init %s: %w", e.Active.Name(), err)
	}
	return applied, nil
}

// SetParam updates the shared uniforms.
func (e *Engine) SetParam(name string, v float64) {
	e.Ctx.Uniforms.Assign(map[string]float64{name: v})
}

// SetBool updates the shared uniforms. Effects read flags on Init, so call
// SetEffect afterwards for the change to take hold.
func (e *Engine) SetBool(name string, b bool) {
	if e.Ctx.Uniforms.Bools == nil {
		e.Ctx.Uniforms.Bools = map[string]bool{}
	}
	e.Ctx.Uniforms.Bools[name] = b
}

// Close closes the sink.
func (e *Engine) Close() error {
	if e.Sink == nil {
		return nil
	}
	return e.Sink.Close()
}
