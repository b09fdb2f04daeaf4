// Package config reads and writes the TraceBoard TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"TraceBoard/internal/export"
	"TraceBoard/internal/logging"
	"TraceBoard/internal/render"
	"TraceBoard/internal/surface"
)

const (
	configDirName = "traceboard"
	configFile    = "config.toml"
)

// Pen size and grid cell size limits offered by the controls.
const (
	MinPenSize  = 1
	MaxPenSize  = 100
	MinCellSize = 10
	MaxCellSize = 100
)

type Pen struct {
	Size  float64 `toml:"size"`
	Color string  `toml:"color"`
}

type Grid struct {
	Visible   bool    `toml:"visible"`
	CellSize  float64 `toml:"cell_size"`
	LineWidth float64 `toml:"line_width"`
	Color     string  `toml:"color"`
}

type Overlay struct {
	Visible   bool    `toml:"visible"`
	Opacity   float64 `toml:"opacity"`
	Reference string  `toml:"reference"`
}

type Surface struct {
	Mapping    string `toml:"mapping"`
	Background string `toml:"background"`
	MaxWidth   int    `toml:"max_width"`
	MaxHeight  int    `toml:"max_height"`
}

type Export struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the whole configuration file.
type Config struct {
	Pen     Pen     `toml:"pen"`
	Grid    Grid    `toml:"grid"`
	Overlay Overlay `toml:"overlay"`
	Surface Surface `toml:"surface"`
	Export  Export  `toml:"export"`
	Log     Log     `toml:"log"`
}

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		Pen:     Pen{Size: 2, Color: "#000000"},
		Grid:    Grid{Visible: false, CellSize: 20, LineWidth: 1, Color: "#000000"},
		Overlay: Overlay{Visible: false, Opacity: render.DefaultOverlayOpacity},
		Surface: Surface{Mapping: "scaled", Background: "#ffffff", MaxWidth: 3840, MaxHeight: 2160},
		Export:  Export{Format: "png"},
		Log:     Log{Level: "info"},
	}
}

// DefaultPath is config.toml inside the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, configDirName, configFile), nil
}

// Load decodes path on top of the defaults and validates the result, so a
// file only needs the keys it changes.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logging.For("config").Warn("unknown config keys ignored", "path", path, "keys", fmt.Sprint(undecoded))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save encodes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadOrInit loads path, writing the defaults there first if the file does
// not exist yet.
func LoadOrInit(path string) (Config, error) {
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logging.For("config").Info("initializing config", "path", path)
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	return Load(path)
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Pen.Size < MinPenSize || c.Pen.Size > MaxPenSize {
		errs = append(errs, fmt.Errorf("pen.size %v: must be within %d..%d", c.Pen.Size, MinPenSize, MaxPenSize))
	}
	if _, err := render.ParseColor(c.Pen.Color); err != nil {
		errs = append(errs, fmt.Errorf("pen.color: %w", err))
	}
	if c.Grid.CellSize < MinCellSize || c.Grid.CellSize > MaxCellSize {
		errs = append(errs, fmt.Errorf("grid.cell_size %v: must be within %d..%d", c.Grid.CellSize, MinCellSize, MaxCellSize))
	}
	if err := c.RenderGrid().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Overlay.Opacity <= 0 || c.Overlay.Opacity > 1 {
		errs = append(errs, fmt.Errorf("overlay.opacity %v: must be within (0, 1]", c.Overlay.Opacity))
	}
	if _, err := surface.ParseMode(c.Surface.Mapping); err != nil {
		errs = append(errs, fmt.Errorf("surface.mapping: %w", err))
	}
	if _, err := render.ParseColor(c.Surface.Background); err != nil {
		errs = append(errs, fmt.Errorf("surface.background: %w", err))
	}
	if c.Surface.MaxWidth < 0 || c.Surface.MaxHeight < 0 {
		errs = append(errs, errors.New("surface.max_width and max_height must not be negative"))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// RenderGrid converts the grid section for the render engine.
func (c Config) RenderGrid() render.Grid {
	return render.Grid{
		Visible:   c.Grid.Visible,
		CellSize:  c.Grid.CellSize,
		LineWidth: c.Grid.LineWidth,
		Color:     c.Grid.Color,
	}
}

// ClampPenSize limits s to the supported pen sizes.
func ClampPenSize(s float64) float64 {
	return min(max(s, MinPenSize), MaxPenSize)
}

// ClampCellSize limits s to the supported grid cell sizes.
func ClampCellSize(s float64) float64 {
	return min(max(s, MinCellSize), MaxCellSize)
}
