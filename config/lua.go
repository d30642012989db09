// Package config loads renderer settings from Lua files and watches them for
// changes.
//
// A settings file assigns fields of the global lcdtext table:
//
//	lcdtext = {
//	    font_face = 2,
//	    gamma = 1.4,
//	    channel_order = "bgr",
//	}
//
// Fields that are not set keep their base values. Numeric controls are
// clamped to their ranges after parsing.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/lcdtext"
	"github.com/gogpu/lcdtext/lcd"
)

// GlobalName is the Lua global holding the settings table.
const GlobalName = "lcdtext"

// Resource limits of one settings file execution.
const (
	cpuLimit    = 10_000_000
	memoryLimit = 50 * 1024 * 1024
)

// ErrInvalidValue is returned for settings of the wrong type or with an
// unknown value.
var ErrInvalidValue = errors.New("config: invalid value")

// Settings is everything a settings file can change.
type Settings struct {
	Controls lcdtext.Controls

	// ChannelOrder is the subpixel layout of the panel.
	ChannelOrder lcd.ChannelOrder

	// NormalizeKernel rescales filter kernels that do not sum to one.
	NormalizeKernel bool

	// FontDir overrides the font directory when not empty.
	FontDir string
}

// Default returns the default settings.
func Default() Settings {
	return Settings{Controls: lcdtext.DefaultControls(), ChannelOrder: lcd.RGB}
}

// ParseError reports a settings file that failed to compile, run or
// convert.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads and parses the settings file at path over base.
func ParseFile(path string, base Settings) (Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return base, &ParseError{File: path, Err: err}
	}
	return Parse(path, content, base)
}

// Parse executes content as Lua and applies the lcdtext table over base.
// name identifies the chunk in error messages. On error base is returned
// unchanged.
func Parse(name string, content []byte, base Settings) (Settings, error) {
	runtime := rt.New(io.Discard)
	cleanup := lib.LoadAll(runtime)
	defer cleanup()

	runtime.GlobalEnv().Set(rt.StringValue(GlobalName), rt.TableValue(rt.NewTable()))

	closure, err := runtime.CompileAndLoadLuaChunk(name, content, rt.TableValue(runtime.GlobalEnv()))
	if err != nil {
		return base, &ParseError{File: name, Err: fmt.Errorf("compile: %w", err)}
	}

	runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    cpuLimit,
			Memory: memoryLimit,
		},
	})
	defer runtime.PopContext()

	if _, err := rt.Call1(runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return base, &ParseError{File: name, Err: fmt.Errorf("execute: %w", err)}
	}

	v := runtime.GlobalEnv().Get(rt.StringValue(GlobalName))
	if v == rt.NilValue {
		return base, nil
	}
	table, ok := v.TryTable()
	if !ok {
		return base, &ParseError{File: name, Err: fmt.Errorf("%w: %s is not a table", ErrInvalidValue, GlobalName)}
	}
	s, err := apply(base, table)
	if err != nil {
		return base, &ParseError{File: name, Err: err}
	}
	return s, nil
}

// apply copies the fields of table over s.
func apply(s Settings, table *rt.Table) (Settings, error) {
	c := &s.Controls
	ints := []struct {
		key string
		dst *int
	}{
		{"font_face", &c.FontFace},
		{"color_scheme", &c.ColorScheme},
	}
	for _, f := range ints {
		if err := getInt(table, f.key, f.dst); err != nil {
			return s, err
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"font_scale", &c.FontScale},
		{"faux_italic", &c.FauxItalic},
		{"faux_weight", &c.FauxWeight},
		{"letter_spacing", &c.LetterSpacing},
		{"width_scale", &c.WidthScale},
		{"gamma", &c.Gamma},
		{"primary_weight", &c.PrimaryWeight},
	}
	for _, f := range floats {
		if err := getFloat(table, f.key, f.dst); err != nil {
			return s, err
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"grayscale", &c.Grayscale},
		{"hinting", &c.Hinting},
		{"kerning", &c.Kerning},
		{"invert", &c.Invert},
		{"normalize_kernel", &s.NormalizeKernel},
	}
	for _, f := range bools {
		if err := getBool(table, f.key, f.dst); err != nil {
			return s, err
		}
	}

	if err := getString(table, "font_dir", &s.FontDir); err != nil {
		return s, err
	}
	var order string
	if err := getString(table, "channel_order", &order); err != nil {
		return s, err
	}
	if order != "" {
		o, ok := lcd.ParseChannelOrder(order)
		if !ok {
			return s, fmt.Errorf("%w: channel_order %q", ErrInvalidValue, order)
		}
		s.ChannelOrder = o
	}

	s.Controls = s.Controls.Clamp()
	return s, nil
}

// getInt stores an integer field in dst. Floats are truncated.
func getInt(table *rt.Table, key string, dst *int) error {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryInt(); ok {
		*dst = int(n)
		return nil
	}
	if f, ok := val.TryFloat(); ok {
		*dst = int(f)
		return nil
	}
	return fmt.Errorf("%w: %s must be a number", ErrInvalidValue, key)
}

// getFloat stores a numeric field in dst.
func getFloat(table *rt.Table, key string, dst *float64) error {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if f, ok := val.TryFloat(); ok {
		*dst = f
		return nil
	}
	if n, ok := val.TryInt(); ok {
		*dst = float64(n)
		return nil
	}
	return fmt.Errorf("%w: %s must be a number", ErrInvalidValue, key)
}

// getBool stores a boolean field in dst.
func getBool(table *rt.Table, key string, dst *bool) error {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if b, ok := val.TryBool(); ok {
		*dst = b
		return nil
	}
	return fmt.Errorf("%w: %s must be a boolean", ErrInvalidValue, key)
}

// getString stores a string field in dst.
func getString(table *rt.Table, key string, dst *string) error {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if str, ok := val.TryString(); ok {
		*dst = str
		return nil
	}
	return fmt.Errorf("%w: %s must be a string", ErrInvalidValue, key)
}
