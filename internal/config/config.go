package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/rgb"
)

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0, empty picks the first port
	FreqKHz int    `yaml:"freq_khz"` // e.g. 2500
}

type Panel struct {
	ID          int `yaml:"id"`
	X           int `yaml:"x"`
	Y           int `yaml:"y"`
	Orientation int `yaml:"orientation"`
	Shape       int `yaml:"shape"` // 0 triangle, 2 square, 3 rhombus
}

type Layout struct {
	SideLength        float64 `yaml:"side_length"`
	GlobalOrientation int     `yaml:"global_orientation"`
	Panels            []Panel `yaml:"panels"`
}

type Config struct {
	Effect     string  `yaml:"effect"`
	Preset     string  `yaml:"preset"`
	FPS        int     `yaml:"fps"`
	Seed       int64   `yaml:"seed"`
	Brightness float64 `yaml:"brightness"`
	Driver     string  `yaml:"driver"` // "sim" | "spi" | "screen"
	BPM        float64 `yaml:"bpm"`

	SPI     SPI                `yaml:"spi,omitempty"`
	Layout  Layout             `yaml:"layout"`
	Palette []string           `yaml:"palette"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Options map[string]any     `yaml:"options,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Stream flattens the panels into the id, x, y, orientation, shape stream
// the layout parser reads.
func (l Layout) Stream() []int {
	out := make([]int, 0, len(l.Panels)*layout.StreamStride)
	for _, p := range l.Panels {
		out = append(out, p.ID, p.X, p.Y, p.Orientation, p.Shape)
	}
	return out
}

// Build parses the configured panels and turns them by the global
// orientation, so GlobalOrientation on the result is always the rotation
// already applied to the coordinates. An empty panel list yields a nil
// layout and no error so callers can fall back to a generated one.
func (l Layout) Build() (*layout.Layout, error) {
	if len(l.Panels) == 0 {
		return nil, nil
	}
	out, err := layout.Parse(l.Stream(), l.SideLength)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	angle := float64(l.GlobalOrientation)
	if _, err := layout.Rotate(out, &angle); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return out, nil
}

// BuildPalette parses the hex palette. An empty list is a valid, empty
// palette.
func (c *Config) BuildPalette() (rgb.Palette, error) {
	p, err := rgb.ParseHex(c.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return p, nil
}
