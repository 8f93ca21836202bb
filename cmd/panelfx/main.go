package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/config"
	"github.com/coreman2200/panelfx/internal/diagnostics"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/led"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/render/scenes"
	"github.com/coreman2200/panelfx/internal/rgb"
)

var defaultPalette = rgb.Palette{{R: 255, G: 40}, {R: 255, G: 160}, {G: 200, B: 255}, {R: 140, B: 255}}

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		effect     = flag.String("effect", scenes.DefaultEffect, "effect name")
		preset     = flag.String("preset", "", "effect preset")
		fps        = flag.Int("fps", 10, "target frames per second")
		seed       = flag.Int64("seed", 1, "random seed")
		brightness = flag.Float64("brightness", 0.8, "global brightness 0..1")
		driver     = flag.String("driver", "sim", "driver: sim | spi | screen")
		spiDev     = flag.String("spi-dev", "", "SPI port name, empty picks the first")
		panels     = flag.Int("panels", 9, "triangle count when the config has no layout")
		bpm        = flag.Float64("bpm", 120, "tempo of the synthetic audio feed")
		debug      = flag.Bool("debug", false, "debug logging")
		list       = flag.Bool("list", false, "list effects and presets, then exit")
		optsJSON   = flag.Bool("options-json", false, "print the option declarations as JSON, then exit")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	reg := scenes.Registry()
	if *list {
		for _, name := range reg.List() {
			e, _ := reg.Get(name)
			fmt.Printf("%-10s %v\n", name, e.Presets())
		}
		return
	}

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		cfg = &config.Config{}
	} else {
		cfg = c
	}

	opts, err := config.NewOptions(optionDecl, cfg.Options)
	if err != nil {
		log.Fatal().Err(err).Int("code", config.Code(err)).Msg("bad options")
	}
	if *optsJSON {
		b, err := opts.JSON()
		if err != nil {
			log.Fatal().Err(err).Msg("options json")
		}
		fmt.Println(string(b))
		return
	}

	// ---- Effective params (config overrides flags where available) ----
	eEffect, ePreset, eFPS, eSeed, eBright, eBPM := *effect, *preset, *fps, *seed, *brightness, *bpm
	if cfg.Effect != "" {
		eEffect = cfg.Effect
	}
	if cfg.Preset != "" {
		ePreset = cfg.Preset
	}
	if cfg.FPS > 0 {
		eFPS = cfg.FPS
	}
	if cfg.Seed != 0 {
		eSeed = cfg.Seed
	}
	if cfg.Brightness > 0 {
		eBright = cfg.Brightness
	}
	if cfg.BPM > 0 {
		eBPM = cfg.BPM
	}

	// ---- Build layout and palette ----
	l, err := cfg.Layout.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("layout")
	}
	if l == nil {
		l = layout.Triangles(*panels, 1, 0)
	}
	palette, err := cfg.BuildPalette()
	if err != nil {
		log.Fatal().Err(err).Msg("palette")
	}
	if len(cfg.Palette) == 0 {
		palette = defaultPalette
	}

	ds := diagnostics.Check(l, palette)
	diagnostics.Log(log.Logger, ds)
	if diagnostics.Fatal(ds) {
		os.Exit(1)
	}

	// ---- Context and effect ----
	ctx := render.NewContext(l, palette, eSeed)
	ctx.Log = log.Logger
	ctx.Uniforms.GlobalBrightness = eBright
	tt, _ := opts.Int("transTime")
	loop, _ := opts.Bool("loop")
	ctx.Uniforms.Assign(map[string]float64{"TransTime": float64(tt), "FPS": float64(eFPS)})
	ctx.Uniforms.Bools["Loop"] = loop

	eff, ok := reg.Get(eEffect)
	if !ok {
		log.Fatal().Str("effect", eEffect).Strs("known", reg.List()).Msg("unknown effect")
	}
	if ePreset != "" {
		eff.ApplyPreset(ePreset, ctx.Uniforms)
	}
	ctx.Uniforms.Assign(cfg.Params)

	// ---- Driver selection: config.driver then -driver ----
	selected := *driver
	if cfg.Driver != "" {
		selected = cfg.Driver
	}
	dev := *spiDev
	if cfg.SPI.Dev != "" {
		dev = cfg.SPI.Dev
	}
	sink := openDriver(selected, dev, cfg.SPI.FreqKHz, l, eFPS)

	eng, err := render.NewEngine(ctx, eff, sink)
	if err != nil {
		log.Fatal().Err(err).Str("effect", eEffect).Msg("engine")
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Warn().Err(err).Msg("driver close")
		}
	}()

	// ---- Audio ----
	tick := time.Second / time.Duration(max(1, eFPS))
	sr := beep.SampleRate(audio.DefaultWindow * max(1, eFPS))
	src, err := audio.NewSynth(sr, eBPM, 60, 220, 880)
	if err != nil {
		log.Fatal().Err(err).Msg("synth")
	}
	an := audio.NewAnalyzer(src, audio.DefaultWindow, scenes.Bins(eff), tick)

	log.Info().
		Str("effect", eEffect).
		Str("preset", ePreset).
		Str("driver", selected).
		Int("panels", l.Count()).
		Int("fps", eFPS).
		Msg("running")

	// ---- Run until SIGINT/SIGTERM ----
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(runCtx, eng, an, tick); err != nil {
		log.Error().Err(err).Msg("render loop")
	}
	log.Info().Uint64("ticks", eng.Ticks()).Msg("shutting down")
}

var optionDecl = []config.Option{
	config.TransTime(render.DefaultTransTime),
	config.Loop(true),
}

func openDriver(name, dev string, freqKHz int, l *layout.Layout, fps int) led.Driver {
	ids := make([]int, 0, l.Count())
	for _, p := range l.Panels {
		ids = append(ids, p.ID)
	}

	switch name {
	case "sim":
		return led.NewSim(log.Logger)

	case "spi":
		s, err := led.OpenStrip(dev, freqKHz, ids, log.Logger)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("dev", dev).
				Int("freq_khz", freqKHz).
				Msg("SPI init failed; falling back to SIM")
			return led.NewSim(log.Logger)
		}
		return led.NewFader(s, fps)

	case "screen":
		s, err := led.NewStrip(screen.New(len(ids)), ids)
		if err != nil {
			log.Warn().Err(err).Msg("screen init failed; falling back to SIM")
			return led.NewSim(log.Logger)
		}
		return led.NewFader(s, fps)

	default:
		log.Warn().Str("driver", name).Msg("unknown driver; using SIM")
		return led.NewSim(log.Logger)
	}
}

// run ticks the engine at a fixed rate until ctx is cancelled or the audio
// feed runs dry.
func run(ctx context.Context, eng *render.Engine, an *audio.Analyzer, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			in, err := an.Next()
			if errors.Is(err, audio.ErrStreamEnded) {
				return nil
			}
			if err != nil {
				return err
			}
			if _, err := eng.Tick(&in); err != nil {
				return err
			}
			if eng.Last.TotalMS > float64(tick.Milliseconds()) {
				log.Debug().Float64("ms", eng.Last.TotalMS).Msg("tick overran")
			}
		}
	}
}
