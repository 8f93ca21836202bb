// Package scenes registers every effect under its default name.
package scenes

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/render/scenes/calib"
	"github.com/coreman2200/panelfx/internal/render/scenes/diffuse"
	"github.com/coreman2200/panelfx/internal/render/scenes/fireworks"
	"github.com/coreman2200/panelfx/internal/render/scenes/freqstars"
	"github.com/coreman2200/panelfx/internal/render/scenes/gradient"
	"github.com/coreman2200/panelfx/internal/render/scenes/northern"
	"github.com/coreman2200/panelfx/internal/render/scenes/soda"
	"github.com/coreman2200/panelfx/internal/render/scenes/solid"
	"github.com/coreman2200/panelfx/internal/render/scenes/soundbar"
	"github.com/coreman2200/panelfx/internal/render/scenes/stars"
	"github.com/coreman2200/panelfx/internal/render/scenes/wheel"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// DefaultEffect is selected when nothing else is configured.
const DefaultEffect = "northern"

// Registry returns a registry with a fresh instance of every effect.
func Registry() *render.Registry {
	reg := render.NewRegistry()
	for _, e := range []render.Effect{
		calib.New("calib"),
		diffuse.New("diffuse"),
		fireworks.New("fireworks"),
		freqstars.New("freqstars"),
		gradient.New("gradient"),
		northern.New("northern"),
		soda.New("soda"),
		solid.New("solid", rgb.White),
		soundbar.New("soundbar"),
		stars.New("stars"),
		wheel.New("wheel"),
	} {
		reg.Register(e)
	}
	return reg
}

// Bins is the FFT resolution e wants from the analyser. Effects that do not
// ask get audio.DefaultBins. Call it after Init.
func Bins(e render.Effect) int {
	if b, ok := e.(interface{ Bins() int }); ok && b.Bins() > 0 {
		return b.Bins()
	}
	return audio.DefaultBins
}
