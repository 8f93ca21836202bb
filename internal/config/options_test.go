package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decl = []Option{TransTime(15), Loop(true), RotDirection("cw"), {Name: "gain", Type: Double, Default: 0.5, Min: 0, Max: 2}}

var badValues = []struct {
	values map[string]any
	want   error
}{
	{map[string]any{"transTime": 0}, ErrOptionRange},
	{map[string]any{"transTime": 601}, ErrOptionRange},
	{map[string]any{"transTime": 1.5}, ErrOptionType},
	{map[string]any{"transTime": "fast"}, ErrOptionType},
	{map[string]any{"loop": 1}, ErrOptionType},
	{map[string]any{"rotDirection": "up"}, ErrOptionRange},
	{map[string]any{"speed": 3}, ErrOptionMissing},
}

func TestOptionDefaults(t *testing.T) {
	o, err := NewOptions(decl, nil)
	require.NoError(t, err)

	tt, err := o.Int("transTime")
	require.NoError(t, err)
	assert.Equal(t, 15, tt)

	loop, err := o.Bool("loop")
	require.NoError(t, err)
	assert.True(t, loop)

	dir, err := o.Text("rotDirection")
	require.NoError(t, err)
	assert.Equal(t, "cw", dir)

	g, err := o.Double("gain")
	require.NoError(t, err)
	assert.Equal(t, 0.5, g)
}

func TestOptionValues(t *testing.T) {
	o, err := NewOptions(decl, map[string]any{"transTime": 600, "gain": 2, "rotDirection": "ccw"})
	require.NoError(t, err)
	tt, _ := o.Int("transTime")
	assert.Equal(t, 600, tt)
	g, _ := o.Double("gain")
	assert.Equal(t, 2.0, g)
	dir, _ := o.Text("rotDirection")
	assert.Equal(t, "ccw", dir)
}

func TestOptionValidation(t *testing.T) {
	for _, c := range badValues {
		_, err := NewOptions(decl, c.values)
		assert.ErrorIs(t, err, c.want, "values %v", c.values)
	}
}

func TestOptionLookupCodes(t *testing.T) {
	o, err := NewOptions(decl, nil)
	require.NoError(t, err)

	_, err = o.Int("delayTime")
	assert.ErrorIs(t, err, ErrOptionMissing)
	assert.Equal(t, -10, Code(err))

	_, err = o.Bool("transTime")
	assert.ErrorIs(t, err, ErrOptionType)
	assert.Equal(t, -11, Code(err))

	assert.Equal(t, 0, Code(nil))
	assert.Equal(t, -1, Code(ErrOptionRange))
}

func TestOptionJSON(t *testing.T) {
	o, err := NewOptions([]Option{TransTime(15)}, nil)
	require.NoError(t, err)
	b, err := o.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"options": [{"defaultValue": 15, "minValue": 1, "type": "int", "name": "transTime", "maxValue": 600}]}`, string(b))

	o, _ = NewOptions([]Option{Loop(false), DelayTime(0)}, nil)
	b, err = o.JSON()
	require.NoError(t, err)
	var got struct {
		Options []map[string]any `json:"options"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Options, 2)
	assert.NotContains(t, got.Options[0], "minValue")
	assert.Equal(t, 0.0, got.Options[1]["minValue"])
}
