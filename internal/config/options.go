package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Lookup failures. Code maps them onto the numeric codes hosts expect.
var (
	ErrOptionMissing = errors.New("option does not exist")
	ErrOptionType    = errors.New("wrong option type")
	ErrOptionRange   = errors.New("option out of range")
)

const (
	CodeOptionMissing = -10
	CodeOptionType    = -11
)

// Code returns 0 for nil, the host code for a lookup failure and -1 for
// anything else.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrOptionMissing):
		return CodeOptionMissing
	case errors.Is(err, ErrOptionType):
		return CodeOptionType
	}
	return -1
}

type OptionType string

const (
	Int    OptionType = "int"
	Double OptionType = "double"
	Bool   OptionType = "bool"
	String OptionType = "string"
)

// Option declares one user tunable an effect understands. Min and Max apply
// to numeric options, Strings lists the accepted values of a string option.
type Option struct {
	Name    string
	Type    OptionType
	Default any
	Min     float64
	Max     float64
	Strings []string
}

// Well known declarations.

func TransTime(def int) Option {
	return Option{Name: "transTime", Type: Int, Default: def, Min: 1, Max: 600}
}

func DelayTime(def int) Option {
	return Option{Name: "delayTime", Type: Int, Default: def, Min: 0, Max: 600}
}

func ColorsPerFrame(def int) Option {
	return Option{Name: "nColorsPerFrame", Type: Int, Default: def, Min: 0, Max: 50}
}

func Loop(def bool) Option {
	return Option{Name: "loop", Type: Bool, Default: def}
}

func LinDirection(def string, enabled ...string) Option {
	if len(enabled) == 0 {
		enabled = []string{"left", "right", "up", "down"}
	}
	return Option{Name: "linDirection", Type: String, Default: def, Strings: enabled}
}

func RadDirection(def string) Option {
	return Option{Name: "radDirection", Type: String, Default: def, Strings: []string{"in", "out"}}
}

func RotDirection(def string) Option {
	return Option{Name: "rotDirection", Type: String, Default: def, Strings: []string{"cw", "ccw"}}
}

// Options resolves values against their declarations. Unset options read
// as their default.
type Options struct {
	decl   []Option
	values map[string]any
}

// NewOptions validates values against decl. Values for undeclared names are
// rejected with ErrOptionMissing.
func NewOptions(decl []Option, values map[string]any) (*Options, error) {
	o := &Options{decl: decl, values: map[string]any{}}
	for name, v := range values {
		d, ok := o.find(name)
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, ErrOptionMissing)
		}
		if err := d.check(v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		o.values[name] = v
	}
	return o, nil
}

func (o *Options) Declarations() []Option { return o.decl }

func (o *Options) find(name string) (Option, bool) {
	for _, d := range o.decl {
		if d.Name == name {
			return d, true
		}
	}
	return Option{}, false
}

func (o *Options) value(name string, t OptionType) (any, error) {
	d, ok := o.find(name)
	if !ok {
		return nil, ErrOptionMissing
	}
	if d.Type != t {
		return nil, ErrOptionType
	}
	if v, ok := o.values[name]; ok {
		return v, nil
	}
	return d.Default, nil
}

func (o *Options) Int(name string) (int, error) {
	v, err := o.value(name, Int)
	if err != nil {
		return 0, err
	}
	f, _ := number(v)
	return int(f), nil
}

func (o *Options) Double(name string) (float64, error) {
	v, err := o.value(name, Double)
	if err != nil {
		return 0, err
	}
	f, _ := number(v)
	return f, nil
}

func (o *Options) Bool(name string) (bool, error) {
	v, err := o.value(name, Bool)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// Text reads a string option.
func (o *Options) Text(name string) (string, error) {
	v, err := o.value(name, String)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

func (d Option) check(v any) error {
	switch d.Type {
	case Int, Double:
		f, ok := number(v)
		if !ok || (d.Type == Int && f != math.Trunc(f)) {
			return ErrOptionType
		}
		if f < d.Min || f > d.Max {
			return ErrOptionRange
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			return ErrOptionType
		}
	case String:
		s, ok := v.(string)
		if !ok {
			return ErrOptionType
		}
		for _, allowed := range d.Strings {
			if s == allowed {
				return nil
			}
		}
		return ErrOptionRange
	default:
		return ErrOptionType
	}
	return nil
}

// number accepts the numeric types yaml and json decode into.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// JSON renders the declarations in the {"options": [...]} form plugin
// hosts read.
func (o *Options) JSON() ([]byte, error) {
	type entry struct {
		Name         string     `json:"name"`
		Type         OptionType `json:"type"`
		DefaultValue any        `json:"defaultValue"`
		MinValue     *float64   `json:"minValue,omitempty"`
		MaxValue     *float64   `json:"maxValue,omitempty"`
		Strings      []string   `json:"strings,omitempty"`
	}
	out := struct {
		Options []entry `json:"options"`
	}{Options: make([]entry, 0, len(o.decl))}
	for _, d := range o.decl {
		e := entry{Name: d.Name, Type: d.Type, DefaultValue: d.Default, Strings: d.Strings}
		if d.Type == Int || d.Type == Double {
			lo, hi := d.Min, d.Max
			e.MinValue, e.MaxValue = &lo, &hi
		}
		out.Options = append(out.Options, e)
	}
	return json.Marshal(out)
}
