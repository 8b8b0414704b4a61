package axis

import (
	"math"

	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
)

// Default axis settings.
const (
	DefaultLowerMargin            = 0.05
	DefaultUpperMargin            = 0.05
	DefaultAutoRangeMinimumExtent = 1e-8
	DefaultTickMarkLength         = 6
	DefaultLabelSpacing           = 1
	DefaultLabelMarginEm          = 0.5
)

// Config holds the styling and auto-range settings an axis is built with.
type Config struct {
	AxisLabelFace fonts.Face `toml:"axis_label_font" yaml:"axis_label_font"`
	TickLabelFace fonts.Face `toml:"tick_label_font" yaml:"tick_label_font"`

	LowerMargin            float64 `toml:"lower_margin" yaml:"lower_margin"`
	UpperMargin            float64 `toml:"upper_margin" yaml:"upper_margin"`
	AutoRangeMinimumExtent float64 `toml:"auto_range_minimum_extent" yaml:"auto_range_minimum_extent"`
	AutoRangeIncludesZero  bool    `toml:"auto_range_includes_zero" yaml:"auto_range_includes_zero"`
	MinimumTickSize        float64 `toml:"minimum_tick_size" yaml:"minimum_tick_size"`

	// TickMarkLength is in pixels.
	TickMarkLength float64 `toml:"tick_mark_length" yaml:"tick_mark_length"`
	// LabelSpacing scales the space reserved per label when counting how
	// many ticks fit.
	LabelSpacing float64 `toml:"label_spacing" yaml:"label_spacing"`
	// LabelMarginEm is the gap around labels as a fraction of the width of
	// "M" in the tick label face.
	LabelMarginEm float64 `toml:"label_margin_em" yaml:"label_margin_em"`
}

// DefaultConfig returns the default axis settings.
func DefaultConfig() Config {
	return Config{
		AxisLabelFace:          fonts.DefaultAxisLabelFace,
		TickLabelFace:          fonts.DefaultTickLabelFace,
		LowerMargin:            DefaultLowerMargin,
		UpperMargin:            DefaultUpperMargin,
		AutoRangeMinimumExtent: DefaultAutoRangeMinimumExtent,
		TickMarkLength:         DefaultTickMarkLength,
		LabelSpacing:           DefaultLabelSpacing,
		LabelMarginEm:          DefaultLabelMarginEm,
	}
}

// Validate checks the numeric settings.
func (c Config) Validate() error {
	if err := errors.ValidateMargin("lower margin", c.LowerMargin); err != nil {
		return err
	}
	if err := errors.ValidateMargin("upper margin", c.UpperMargin); err != nil {
		return err
	}
	if !nonNegative(c.AutoRangeMinimumExtent) {
		return errors.New(errors.ErrCodeInvalidArgument, "auto-range minimum extent must be non-negative, got %v", c.AutoRangeMinimumExtent)
	}
	if !nonNegative(c.MinimumTickSize) {
		return errors.New(errors.ErrCodeInvalidArgument, "minimum tick size must be non-negative, got %v", c.MinimumTickSize)
	}
	if !nonNegative(c.TickMarkLength) {
		return errors.New(errors.ErrCodeInvalidArgument, "tick mark length must be non-negative, got %v", c.TickMarkLength)
	}
	if !(c.LabelSpacing > 0) || math.IsInf(c.LabelSpacing, 0) {
		return errors.New(errors.ErrCodeInvalidArgument, "label spacing must be positive, got %v", c.LabelSpacing)
	}
	if !nonNegative(c.LabelMarginEm) {
		return errors.New(errors.ErrCodeInvalidArgument, "label margin must be non-negative, got %v", c.LabelMarginEm)
	}
	if c.TickLabelFace.Size < 0 || c.AxisLabelFace.Size < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "font sizes must be non-negative")
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
