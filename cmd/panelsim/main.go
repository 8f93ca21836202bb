package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/config"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/render/scenes"
	"github.com/coreman2200/panelfx/internal/rgb"
)

const (
	rotateStep = 30
	// ticks spent crossfading from the previous effect
	fadeTicks  = 10
	brightStep = 0.1
	minBright  = 0.1
)

type sim struct {
	screen tcell.Screen
	eng    *render.Engine
	reg    *render.Registry
	names  []string
	cur    int
	an     *audio.Analyzer
	src    beep.Streamer
	tick   time.Duration
	view   *view

	prev   []render.Frame
	mixed  []render.Frame
	fade   int
	bright float64
}

func main() {
	var (
		configPath = flag.String("config", "", "optional config.yaml for layout and palette")
		effect     = flag.String("effect", scenes.DefaultEffect, "starting effect")
		panels     = flag.Int("panels", 12, "triangle count when no layout is configured")
		fps        = flag.Int("fps", 15, "frames per second")
		bpm        = flag.Float64("bpm", 110, "tempo of the synthetic audio feed")
		logPath    = flag.String("log", "panelsim.log", "log file, the terminal is busy")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	lf, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lf.Close()
	log.Logger = zerolog.New(lf).With().Timestamp().Logger()

	l := layout.Triangles(*panels, 1, 0)
	palette := rgb.Palette{rgb.Red, {R: 255, G: 160}, rgb.Blue, {G: 200, B: 200}}
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config")
		}
		if cl, err := cfg.Layout.Build(); err != nil {
			log.Fatal().Err(err).Msg("layout")
		} else if cl != nil {
			l = cl
		}
		if len(cfg.Palette) > 0 {
			if palette, err = cfg.BuildPalette(); err != nil {
				log.Fatal().Err(err).Msg("palette")
			}
		}
	}

	ctx := render.NewContext(l, palette, time.Now().UnixNano())
	ctx.Log = log.Logger
	ctx.Uniforms.Assign(map[string]float64{"FPS": float64(*fps)})

	s := &sim{reg: scenes.Registry(), tick: time.Second / time.Duration(max(1, *fps)), bright: 1}
	s.names = s.reg.List()
	for i, n := range s.names {
		if n == *effect {
			s.cur = i
		}
	}
	eff, _ := s.reg.Get(s.names[s.cur])
	if s.eng, err = render.NewEngine(ctx, eff, nil); err != nil {
		log.Fatal().Err(err).Msg("engine")
	}
	s.mixed = make([]render.Frame, l.Count())
	sr := beep.SampleRate(audio.DefaultWindow * max(1, *fps))
	if s.src, err = audio.NewSynth(sr, *bpm, 60, 220, 880); err != nil {
		log.Fatal().Err(err).Msg("synth")
	}
	s.resetAnalyzer()

	if s.screen, err = tcell.NewScreen(); err != nil {
		log.Fatal().Err(err).Msg("screen")
	}
	if err := s.screen.Init(); err != nil {
		log.Fatal().Err(err).Msg("screen init")
	}
	defer s.screen.Fini()
	s.resize()
	s.run()
}

// resetAnalyzer matches the FFT resolution to the active effect.
func (s *sim) resetAnalyzer() {
	s.an = audio.NewAnalyzer(s.src, audio.DefaultWindow, scenes.Bins(s.eng.Active), s.tick)
}

// resize rebuilds the view; the bottom row is the status line.
func (s *sim) resize() {
	w, h := s.screen.Size()
	s.view = newView(s.eng.Ctx.Layout, w, h-1)
}

func (s *sim) run() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			events <- s.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if !s.handle(ev) {
				return
			}
		case <-ticker.C:
			in, err := s.an.Next()
			if err != nil {
				log.Error().Err(err).Msg("audio")
				return
			}
			if _, err := s.eng.Tick(&in); err != nil {
				log.Error().Err(err).Msg("tick")
				return
			}
			s.view.update(s.frames())
			s.draw()
		}
	}
}

// frames returns the engine output, blended with the last frames of the
// previous effect while a switch is fading in.
func (s *sim) frames() []render.Frame {
	out := s.eng.Frames()
	if s.fade == 0 {
		return out
	}
	s.fade--
	n := render.Mix(s.mixed, s.prev, out, 1-float64(s.fade)/fadeTicks)
	return s.mixed[:n]
}

func (s *sim) switchEffect(name string) bool {
	last := s.eng.Frames()
	if err := s.eng.SetEffect(name, "", s.reg); err != nil {
		log.Warn().Err(err).Str("effect", name).Msg("switch")
		return false
	}
	s.prev = append(s.prev[:0], last...)
	s.fade = fadeTicks
	return true
}

func (s *sim) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'n':
			s.cur = (s.cur + 1) % len(s.names)
			if !s.switchEffect(s.names[s.cur]) {
				return true
			}
			s.resetAnalyzer()
			// effects may turn the layout on Init
			s.resize()
		case 'r':
			if _, err := s.eng.Rotate(rotateStep); err != nil {
				log.Warn().Err(err).Msg("rotate")
			}
			s.resize()
		case 'l':
			s.eng.SetBool("Loop", !s.eng.Ctx.Uniforms.Bool("Loop", true))
			s.switchEffect(s.names[s.cur])
		case '+', '-':
			if ev.Rune() == '+' {
				s.bright = min(s.bright+brightStep, 1)
			} else {
				s.bright = max(s.bright-brightStep, minBright)
			}
			s.eng.SetParam("Brightness", s.bright)
		}
	case *tcell.EventResize:
		s.screen.Sync()
		s.resize()
	}
	return true
}

func (s *sim) draw() {
	s.screen.Clear()
	for y := 0; y < s.view.h; y++ {
		for x := 0; x < s.view.w; x++ {
			c, ok := s.view.at(x, y)
			if !ok {
				continue
			}
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	status := fmt.Sprintf(" %s  rot %d  bright %.1f  loop %t  tick %d  [n]ext [r]otate [l]oop [+/-] [esc] ",
		s.eng.Active.Name(), s.eng.Ctx.Layout.GlobalOrientation, s.bright,
		s.eng.Ctx.Uniforms.Bool("Loop", true), s.eng.Ticks())
	for i, r := range status {
		s.screen.SetContent(i, s.view.h, r, nil, tcell.StyleDefault.Reverse(true))
	}
	s.screen.Show()
}
