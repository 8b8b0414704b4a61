// Package config loads chart settings from TOML or YAML files.
//
// Every field has a named default, so a file only needs the keys it
// changes:
//
//	[axis]
//	lower_margin = 0.1
//	auto_range_includes_zero = true
//
//	[layout]
//	max_iterations = 8
//
//	[render]
//	width = 1024
//	formats = ["svg", "png"]
//
// The same document in YAML:
//
//	axis:
//	  lower_margin: 0.1
//	  auto_range_includes_zero: true
//	render:
//	  width: 1024
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/simplecharts/simplecharts/pkg/axis"
	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/layout"
)

// Default render settings.
const (
	DefaultWidth          = 800.0
	DefaultHeight         = 600.0
	DefaultScale          = 2.0
	DefaultMeasurer       = "opentype"
	DefaultContainerInset = 5
	DefaultBackground     = "#ffffff"
)

// DefaultPalette is the series colour cycle.
var DefaultPalette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd", "#8c564b"}

// Config is the complete chart configuration.
type Config struct {
	Axis   axis.Config  `toml:"axis" yaml:"axis"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Render RenderConfig `toml:"render" yaml:"render"`
}

// LayoutConfig holds resolver settings.
type LayoutConfig struct {
	MaxIterations int         `toml:"max_iterations" yaml:"max_iterations"`
	PlotInsets    geom.Insets `toml:"plot_insets" yaml:"plot_insets"`
	// ContainerInsets surround the whole chart.
	ContainerInsets geom.Insets `toml:"container_insets" yaml:"container_insets"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Width   float64  `toml:"width" yaml:"width"`
	Height  float64  `toml:"height" yaml:"height"`
	Formats []string `toml:"formats" yaml:"formats"`
	// Scale multiplies the SVG size when converting to PNG.
	Scale float64 `toml:"scale" yaml:"scale"`
	// Measurer selects the text measurer: opentype, basic or approx.
	Measurer   string     `toml:"measurer" yaml:"measurer"`
	TitleFont  fonts.Face `toml:"title_font" yaml:"title_font"`
	LegendFont fonts.Face `toml:"legend_font" yaml:"legend_font"`
	Background string     `toml:"background" yaml:"background"`
	Palette    []string   `toml:"palette" yaml:"palette"`
	ShowPoints bool       `toml:"show_points" yaml:"show_points"`
	LineWidth  float64    `toml:"line_width" yaml:"line_width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Axis: axis.DefaultConfig(),
		Layout: LayoutConfig{
			MaxIterations:   layout.DefaultMaxIterations,
			PlotInsets:      geom.Uniform(layout.DefaultPlotInset),
			ContainerInsets: geom.Uniform(DefaultContainerInset),
		},
		Render: RenderConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Formats:    []string{"svg"},
			Scale:      DefaultScale,
			Measurer:   DefaultMeasurer,
			TitleFont:  fonts.DefaultTitleFace,
			LegendFont: fonts.DefaultTickLabelFace,
			Background: DefaultBackground,
			Palette:    append([]string(nil), DefaultPalette...),
			LineWidth:  1.5,
		},
	}
}

// Load reads a configuration file, choosing the decoder from its
// extension (.toml, .yaml or .yml). Keys absent from the file keep their
// defaults. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported config extension %q (want .toml, .yaml or .yml)", ext)
	}
}

// ParseTOML decodes a TOML document over the defaults.
func ParseTOML(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// ParseYAML decodes a YAML document over the defaults.
func ParseYAML(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Axis.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "axis")
	}
	if err := c.LayoutConfig().Validate(); err != nil {
		return err
	}
	if !c.Layout.ContainerInsets.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "container insets must be finite and non-negative")
	}
	if err := errors.ValidateDimensions(c.Render.Width, c.Render.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render")
	}
	for _, f := range c.Render.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render")
		}
	}
	if !(c.Render.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive, got %v", c.Render.Scale)
	}
	if !fonts.ValidName(c.Render.Measurer) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown measurer %q", c.Render.Measurer)
	}
	if c.Render.LineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "line width must be non-negative, got %v", c.Render.LineWidth)
	}
	return nil
}

// LayoutConfig returns the resolver settings for plots.
func (c Config) LayoutConfig() layout.Config {
	return layout.Config{
		MaxIterations: c.Layout.MaxIterations,
		PlotInsets:    c.Layout.PlotInsets,
	}
}

// ChartLayoutConfig returns the resolver settings for the outer chart,
// which has no plot insets of its own.
func (c Config) ChartLayoutConfig() layout.Config {
	return layout.Config{MaxIterations: c.Layout.MaxIterations}
}

// Color returns the palette colour for series i.
func (c Config) Color(i int) string {
	p := c.Render.Palette
	if len(p) == 0 {
		p = DefaultPalette
	}
	return p[i%len(p)]
}
