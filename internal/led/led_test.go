package led

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

type fakeDrawer struct {
	n      int
	last   *image.NRGBA
	draws  int
	halted bool
	err    error
}

func (d *fakeDrawer) String() string          { return "fake" }
func (d *fakeDrawer) Halt() error             { d.halted = true; return nil }
func (d *fakeDrawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *fakeDrawer) Bounds() image.Rectangle { return image.Rect(0, 0, d.n, 1) }
func (d *fakeDrawer) Draw(_ image.Rectangle, src image.Image, _ image.Point) error {
	if d.err != nil {
		return d.err
	}
	d.draws++
	d.last = image.NewNRGBA(src.Bounds())
	for x := 0; x < src.Bounds().Dx(); x++ {
		d.last.Set(x, 0, src.At(x, 0))
	}
	return nil
}

// recorder collects whatever reaches it.
type recorder struct {
	writes [][]render.Frame
	closed bool
}

func (r *recorder) Write(f []render.Frame) error {
	r.writes = append(r.writes, append([]render.Frame(nil), f...))
	return nil
}

func (r *recorder) Close() error { r.closed = true; return nil }

func TestSimKeepsLastFrame(t *testing.T) {
	var logs bytes.Buffer
	s := NewSim(zerolog.New(&logs).Level(zerolog.DebugLevel))
	in := []render.Frame{{PanelID: 3, R: 30, G: 60, B: 90}, {PanelID: 4, R: 10}}
	require.NoError(t, s.Write(in))
	require.NoError(t, s.Write(nil))
	require.NoError(t, s.Write(in))

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, in, s.Last())
	assert.Contains(t, logs.String(), `"avg":[20,30,45]`)
	assert.NoError(t, s.Close())
}

func TestStripMapsPanelsByID(t *testing.T) {
	d := &fakeDrawer{n: 3}
	s, err := NewStrip(d, []int{42, 7, 19})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Pixel(7))
	assert.Equal(t, 1, s.Pixel(19))
	assert.Equal(t, 2, s.Pixel(42))
	assert.Equal(t, -1, s.Pixel(1))

	require.NoError(t, s.Write([]render.Frame{
		{PanelID: 42, R: 255},
		{PanelID: 7, B: 255},
		{PanelID: 99, G: 255},
	}))
	require.Equal(t, 1, d.draws)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, d.last.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{A: 255}, d.last.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, d.last.NRGBAAt(2, 0))

	s.MaxBrightness = 128
	require.NoError(t, s.Write([]render.Frame{{PanelID: 19, G: 255}}))
	assert.Equal(t, color.NRGBA{G: 128, A: 255}, d.last.NRGBAAt(1, 0))
	// untouched panels keep their colour
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, d.last.NRGBAAt(2, 0))

	require.NoError(t, s.Close())
	assert.True(t, d.halted)
}

func TestStripErrors(t *testing.T) {
	_, err := NewStrip(&fakeDrawer{}, nil)
	assert.ErrorIs(t, err, ErrNoPanels)

	boom := errors.New("boom")
	s, err := NewStrip(&fakeDrawer{n: 1, err: boom}, []int{1})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Write([]render.Frame{{PanelID: 1}}), boom)
}

func TestStripOverSPI(t *testing.T) {
	var wire bytes.Buffer
	port := spitest.NewRecordRaw(&wire)
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{NumPixels: 2, Channels: 3, Freq: DefaultFreqKHz * physic.KiloHertz})
	require.NoError(t, err)

	s, err := NewStrip(dev, []int{1, 2})
	require.NoError(t, err)
	require.NoError(t, s.Write([]render.Frame{{PanelID: 1, R: 255}, {PanelID: 2, G: 255}}))
	first := wire.Len()
	assert.Greater(t, first, 0)

	require.NoError(t, s.Write([]render.Frame{{PanelID: 2, B: 255}}))
	assert.Greater(t, wire.Len(), first)
}

func TestFaderInterpolates(t *testing.T) {
	out := &recorder{}
	f := NewFader(out, 20)
	assert.Equal(t, 4, f.Steps(2))
	assert.Equal(t, 1, f.Steps(0))

	require.NoError(t, f.Write([]render.Frame{{PanelID: 1, R: 200, TransTime: 2}}))
	require.NoError(t, f.Write(nil))
	require.NoError(t, f.Write(nil))
	require.NoError(t, f.Write(nil))
	require.NoError(t, f.Write(nil))

	var reds []int
	for _, w := range out.writes {
		require.Len(t, w, 1)
		assert.Equal(t, 0, w[0].TransTime)
		reds = append(reds, w[0].R)
	}
	assert.Equal(t, []int{50, 100, 150, 200, 200}, reds)
}

func TestFaderRetargetsFromCurrentColour(t *testing.T) {
	out := &recorder{}
	f := NewFader(out, 10)
	require.NoError(t, f.Write([]render.Frame{{PanelID: 5, R: 255}, {PanelID: 6, B: 100, TransTime: 0}}))
	assert.Equal(t, rgb.Red, out.writes[0][0].Color())
	assert.Equal(t, rgb.RGB{B: 100}, out.writes[0][1].Color())

	// halfway to black, then a new target starts from the halfway colour
	require.NoError(t, f.Write([]render.Frame{{PanelID: 5, TransTime: 2}}))
	assert.Equal(t, rgb.RGB{R: 127}, out.writes[1][0].Color())
	require.NoError(t, f.Write([]render.Frame{{PanelID: 5, G: 254, TransTime: 1}}))
	assert.Equal(t, rgb.RGB{G: 254}, out.writes[2][0].Color())
	assert.Equal(t, rgb.RGB{B: 100}, out.writes[2][1].Color())

	require.NoError(t, f.Close())
	assert.True(t, out.closed)
}
