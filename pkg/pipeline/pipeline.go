// Package pipeline provides the load → layout → render pipeline behind the
// simplecharts CLI.
//
// By centralizing this logic, every entry point reads data, resolves chart
// geometry and produces artifacts the same way, with the same defaults and
// the same cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read XY series from a CSV, JSON or XLSX file (or the built-in
//     demo data when no input is given)
//  2. Layout: Build a chart (title, legend, line plot with two value axes)
//     and resolve its geometry for the requested canvas size
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "latency.csv",
//	    Title:   "Request latency",
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	series, hash, err := runner.Load(ctx, opts)
//	geometry, err := runner.Layout(ctx, series, hash, opts)
//	artifacts, err := runner.Render(ctx, geometry, series, hash, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/cache"
	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/config"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/geom"
)

// =============================================================================
// Default Values
// =============================================================================

// Legend placement values accepted by Options.Legend.
const (
	// LegendAuto shows a bottom legend when there is more than one series.
	LegendAuto = "auto"
	// LegendNone hides the legend.
	LegendNone = "none"
)

// DefaultLegend is the default legend placement.
const DefaultLegend = LegendAuto

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = errors.ValidFormats

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. Zero values
// take their defaults from Config.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"` // data file; empty means demo data
	Sheet string `json:"sheet,omitempty"` // worksheet for .xlsx input

	// Layout options
	Title       string  `json:"title,omitempty"`
	DomainLabel string  `json:"domain_label,omitempty"`
	RangeLabel  string  `json:"range_label,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	DateDomain  bool    `json:"date_domain,omitempty"` // calendar ticks on the domain axis
	Legend      string  `json:"legend,omitempty"`      // auto, none, or an edge name

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	ShowPoints bool     `json:"show_points,omitempty"`
	Grid       bool     `json:"grid,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"` // ignore cached layout and artifacts

	// Runtime options (not serialized)
	Config   *config.Config `json:"-"` // nil means config.Default()
	Location *time.Location `json:"-"` // calendar label zone; nil means UTC
	Logger   *log.Logger    `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the loaded series collection.
	Data *data.Collection

	// DataHash is the content hash of the input.
	DataHash string

	// Geometry is the resolved chart layout.
	Geometry chart.Geometry

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	PointCount  int
	Iterations  int
	Converged   bool
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the geometry came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLegend checks that a legend placement is valid.
func ValidateLegend(legend string) error {
	_, _, err := legendPosition(legend)
	return err
}

// legendPosition resolves a legend setting to an edge. auto reports ok
// with geom.Bottom and auto set.
func legendPosition(legend string) (pos geom.Position, auto bool, err error) {
	switch legend {
	case "", LegendAuto:
		return geom.Bottom, true, nil
	case LegendNone:
		return 0, false, nil
	}
	pos, err = geom.ParsePosition(legend)
	if err != nil || pos == geom.Center {
		return 0, false, errors.New(errors.ErrCodeInvalidPosition,
			"invalid legend: %q (must be auto, none, top, bottom, left or right)", legend)
	}
	return pos, false, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input path.
func (o *Options) ValidateForLoad() error {
	o.setCommonDefaults()
	if o.Input == "" {
		return nil
	}
	return errors.ValidatePath(o.Input)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.setCommonDefaults()
	if o.Width == 0 {
		o.Width = o.Config.Render.Width
	}
	if o.Height == 0 {
		o.Height = o.Config.Render.Height
	}
	if o.Legend == "" {
		o.Legend = DefaultLegend
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	return ValidateLegend(o.Legend)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.setCommonDefaults()
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), o.Config.Render.Formats...)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = o.Config.Render.Scale
	}
	if o.Config.Render.ShowPoints {
		o.ShowPoints = true
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setCommonDefaults() {
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Labels:     []string{o.Title, o.DomainLabel, o.RangeLabel},
		DateDomain: o.DateDomain,
		Zone:       o.zone(),
		Legend:     o.Legend,
		ConfigHash: o.configHash(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		ShowPoints: o.ShowPoints,
		Grid:       o.Grid,
		ConfigHash: o.configHash(),
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func (o *Options) zone() string {
	if o.Location == nil {
		return ""
	}
	return o.Location.String()
}

func (o *Options) configHash() string {
	if o.Config == nil {
		return ""
	}
	return cache.HashJSON(o.Config)
}
