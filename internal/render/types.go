package render

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// DefaultTransTime is the panel transition time in units of 100ms.
const DefaultTransTime = 1

// Frame is the colour record sent to one panel for one tick.
type Frame struct {
	PanelID   int
	R, G, B   int
	TransTime int
}

func (f Frame) Color() rgb.RGB { return rgb.RGB{R: f.R, G: f.G, B: f.B} }

// SetColor stores c clamped into the frame.
func (f *Frame) SetColor(c rgb.RGB) {
	c = c.Clamp()
	f.R, f.G, f.B = c.R, c.G, c.B
}

type Uniforms struct {
	GlobalBrightness float64
	Params           map[string]float64
	Bools            map[string]bool
}

func NewUniforms() *Uniforms {
	return &Uniforms{GlobalBrightness: 1, Params: map[string]float64{}, Bools: map[string]bool{}}
}

// Param returns the named parameter or def. A nil receiver is allowed.
func (u *Uniforms) Param(key string, def float64) float64 {
	if u == nil || u.Params == nil {
		return def
	}
	if v, ok := u.Params[key]; ok {
		return v
	}
	return def
}

func (u *Uniforms) Bool(key string, def bool) bool {
	if u == nil || u.Bools == nil {
		return def
	}
	if v, ok := u.Bools[key]; ok {
		return v
	}
	return def
}

// Ensure sets each key that is not already present.
func (u *Uniforms) Ensure(kv map[string]float64) {
	if u == nil {
		return
	}
	if u.Params == nil {
		u.Params = map[string]float64{}
	}
	for k, v := range kv {
		if _, ok := u.Params[k]; !ok {
			u.Params[k] = v
		}
	}
}

// Assign overwrites each key.
func (u *Uniforms) Assign(kv map[string]float64) {
	if u == nil {
		return
	}
	if u.Params == nil {
		u.Params = map[string]float64{}
	}
	for k, v := range kv {
		u.Params[k] = v
	}
}

// Clone deep copies the uniforms.
func (u *Uniforms) Clone() *Uniforms {
	out := NewUniforms()
	if u == nil {
		return out
	}
	out.GlobalBrightness = u.GlobalBrightness
	for k, v := range u.Params {
		out.Params[k] = v
	}
	for k, v := range u.Bools {
		out.Bools[k] = v
	}
	return out
}

// Context is everything an effect may read while rendering. One is built
// per session and shared by the engine and the active effect.
type Context struct {
	Layout   *layout.Layout
	Palette  rgb.Palette
	Rand     *rand.Rand
	Uniforms *Uniforms
	Log      zerolog.Logger
}

func NewContext(l *layout.Layout, p rgb.Palette, seed int64) *Context {
	return &Context{
		Layout:   l,
		Palette:  p,
		Rand:     rand.New(rand.NewSource(seed)),
		Uniforms: NewUniforms(),
		Log:      zerolog.Nop(),
	}
}

// TransTime is the configured transition time, DefaultTransTime when unset.
func (c *Context) TransTime() int {
	if c == nil {
		return DefaultTransTime
	}
	return int(c.Uniforms.Param("TransTime", DefaultTransTime))
}

// Effect produces one frame per panel per tick. Init is called once before
// the first Render and again whenever the layout changes shape or
// orientation; it must reset all per-session state. in is nil for effects
// that run without sound.
type Effect interface {
	Name() string
	Presets() []string
	ApplyPreset(name string, u *Uniforms)
	Init(c *Context) error
	Render(dst []Frame, c *Context, in *audio.Features) int
}

// Sink receives finished frames.
type Sink interface {
	Write([]Frame) error
	Close() error
}

type Registry struct{ m map[string]Effect }

func NewRegistry() *Registry { return &Registry{m: map[string]Effect{}} }

func (r *Registry) Register(e Effect) {
	if e == nil {
		return
	}
	r.m[e.Name()] = e
}

func (r *Registry) Get(name string) (Effect, bool) { e, ok := r.m[name]; return e, ok }

// List returns the registered names in ascending order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
