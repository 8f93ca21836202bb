package led

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// DefaultFreqKHz is the NRZ bit clock used when none is configured.
const DefaultFreqKHz = 2500

var ErrNoPanels = errors.New("strip needs at least one panel")

// Strip drives one pixel per panel. Pixels are assigned to panels in
// ascending id order.
type Strip struct {
	drawer        display.Drawer
	port          spi.PortCloser
	img           *image.NRGBA
	pixel         map[int]int
	MaxBrightness uint8
	SPI           bool
}

// NewStrip wraps an already opened drawer.
func NewStrip(d display.Drawer, ids []int) (*Strip, error) {
	if len(ids) == 0 {
		return nil, ErrNoPanels
	}
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	s := &Strip{
		drawer:        d,
		img:           image.NewNRGBA(image.Rect(0, 0, len(sorted), 1)),
		pixel:         make(map[int]int, len(sorted)),
		MaxBrightness: 255,
	}
	for i, id := range sorted {
		s.pixel[id] = i
		s.img.SetNRGBA(i, 0, color.NRGBA{A: 255})
	}
	return s, nil
}

// OpenStrip opens the SPI port dev (empty picks the first one) and drives
// an NRZ strip over it. Without a usable port it prints to the console
// instead and reports SPI false.
func OpenStrip(dev string, freqKHz int, ids []int, log zerolog.Logger) (*Strip, error) {
	if len(ids) == 0 {
		return nil, ErrNoPanels
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		log.Warn().Err(err).Str("dev", dev).Msg("failed to find a SPI port; printing at the console")
		return NewStrip(screen.New(len(ids)), ids)
	}
	if freqKHz <= 0 {
		freqKHz = DefaultFreqKHz
	}
	d, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: len(ids),
		Channels:  3,
		Freq:      physic.Frequency(freqKHz) * physic.KiloHertz,
	})
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	_ = d.Halt()
	s, err := NewStrip(d, ids)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	s.port, s.SPI = port, true
	return s, nil
}

// Pixel returns the strip position of the panel, or -1.
func (s *Strip) Pixel(id int) int {
	if i, ok := s.pixel[id]; ok {
		return i
	}
	return -1
}

// Write updates the pixels of the panels in frames and pushes the whole
// strip. Records for unknown panels are ignored.
func (s *Strip) Write(frames []render.Frame) error {
	for _, f := range frames {
		i, ok := s.pixel[f.PanelID]
		if !ok {
			continue
		}
		s.img.SetNRGBA(i, 0, rgb.NRGBA(f.Color(), s.MaxBrightness))
	}
	if err := s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{}); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

func (s *Strip) Close() error {
	err := s.drawer.Halt()
	if s.port != nil {
		if cerr := s.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
