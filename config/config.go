// Package config reads the tvx settings file.
//
// The file is TOML:
//
//	driver = "tcell"
//	max_width = 200
//	trimming_marker = "..."
//	theme = "light"
//
// Environment variables override the file: TVX_DRIVER, TVX_LOG,
// TVX_MAX_WIDTH, TVX_MAX_HEIGHT and TVX_THEME.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"tvx"
	"tvx/geom"
	"tvx/screen"
)

// Config holds the settings of a tvx program.
type Config struct {
	// Driver is "ansi" or "tcell".
	Driver string `toml:"driver"`
	// MaxWidth and MaxHeight cap the screen buffer; 0 leaves an axis
	// uncapped.
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
	// TrimmingMarker is shown at the end of trimmed text.
	TrimmingMarker string `toml:"trimming_marker"`
	Mouse          bool   `toml:"mouse"`
	// LogFile receives debug logs. Empty disables logging.
	LogFile string `toml:"log_file"`
	// Background is a color name or #rrggbb filled behind the root view.
	Background string `toml:"background"`
	Theme      string `toml:"theme"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Driver:         "ansi",
		TrimmingMarker: "…",
		Background:     "default",
		Theme:          "dark",
	}
}

// Load reads the file at path over the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read %s: %w", path, err)
	}
	if err := Parse(data, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes TOML into c, leaving fields the data does not set, and
// validates the result.
func Parse(data []byte, c *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("unknown key: %s", sme.String())
		}
		return fmt.Errorf("parse: %w", err)
	}
	return c.Validate()
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TVX_DRIVER"); ok {
		c.Driver = v
	}
	if v, ok := lookup("TVX_LOG"); ok {
		c.LogFile = v
	}
	if v, ok := lookup("TVX_THEME"); ok {
		c.Theme = v
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{"TVX_MAX_WIDTH", &c.MaxWidth},
		{"TVX_MAX_HEIGHT", &c.MaxHeight},
	} {
		v, ok := lookup(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	return c.Validate()
}

// Validate checks every setting. The error names the offending key.
func (c *Config) Validate() error {
	switch c.Driver {
	case "ansi", "tcell":
	default:
		return fmt.Errorf("driver: unknown driver %q", c.Driver)
	}
	if c.MaxWidth < 0 || c.MaxWidth > 1<<15-1 {
		return fmt.Errorf("max_width: %d out of range", c.MaxWidth)
	}
	if c.MaxHeight < 0 || c.MaxHeight > 1<<15-1 {
		return fmt.Errorf("max_height: %d out of range", c.MaxHeight)
	}
	if _, ok := screen.ParseColor(c.Background); !ok {
		return fmt.Errorf("background: unknown color %q", c.Background)
	}
	if _, ok := tvx.ThemeByName(c.Theme); !ok {
		return fmt.Errorf("theme: unknown theme %q", c.Theme)
	}
	return nil
}

// MaxSize returns the screen cap in the form screen.MaxSize takes.
func (c Config) MaxSize() geom.Vector {
	return geom.Vector{X: int16(c.MaxWidth), Y: int16(c.MaxHeight)}
}

// BackgroundStyle returns the style filled behind the root view.
func (c Config) BackgroundStyle() screen.Style {
	bg, _ := screen.ParseColor(c.Background)
	return screen.DefaultStyle().Background(bg)
}

// ThemeValue returns the selected theme.
func (c Config) ThemeValue() tvx.Theme {
	th, _ := tvx.ThemeByName(c.Theme)
	return th
}
