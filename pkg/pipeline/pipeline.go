// Package pipeline provides the load → layout → render pipeline for dialog
// forms.
//
// This package is shared by the CLI and the HTTP service so both apply the
// same defaults, cache keys and output formats.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a forms document (JSON, TOML or YAML)
//  2. Layout: Build the container tree for each form
//  3. Render: Produce outputs (JSON, DOT, SVG, PNG, text)
//
// Forms are independent, so the layout and render stages run one form per
// goroutine, bounded by [Options.Concurrency].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "dialogs.json",
//	    Formats: []string{"json", "svg"},
//	})
//	for _, fr := range result.Forms {
//	    os.WriteFile(fr.Form+".svg", fr.Artifacts["svg"], 0644)
//	}
//
// Run individual stages:
//
//	doc, err := pipeline.Load(ctx, "dialogs.json")
//	l, err := runner.Layout(ctx, doc.Forms[0], opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rclayout/pkg/cache"
	"github.com/matzehuels/rclayout/pkg/form"
)

// =============================================================================
// Default Values
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatText = "text"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatText: true,
}

// FormatExt maps a format to the file extension used for its artifacts.
var FormatExt = map[string]string{
	FormatJSON: ".layout.json",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
	FormatText: ".txt",
}

// DefaultConcurrency bounds the number of forms processed at once.
func DefaultConcurrency() int {
	return runtime.GOMAXPROCS(0)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input string   `json:"input,omitempty"`
	Forms []string `json:"forms,omitempty"` // Form ids to process; empty means all

	// Layout options
	NoStdButtons bool `json:"no_std_buttons,omitempty"` // Keep OK/Cancel buttons in the general flow
	Raw          bool `json:"raw,omitempty"`            // Skip id mapping and control fixups
	Refresh      bool `json:"refresh,omitempty"`        // Ignore cached layouts

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Add control rects to diagrams

	// Runtime options (not serialized)
	Concurrency int         `json:"-"`
	Logger      *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded forms document.
	Document *form.Document

	// Forms holds one result per processed form, in document order.
	Forms []FormResult

	// Stats contains timing information for the whole run.
	Stats Stats
}

// FormResult contains the outputs for one form.
type FormResult struct {
	Form string

	// Layout is the serialized container tree.
	Layout form.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     FormStats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FormCount int
	LoadTime  time.Duration
	TotalTime time.Duration
}

// FormStats contains per-form statistics.
type FormStats struct {
	ControlCount   int
	ContainerCount int
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png, text)", format)
	}
	return nil
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Selected reports whether the form id should be processed.
func (o *Options) Selected(id string) bool {
	return len(o.Forms) == 0 || slices.Contains(o.Forms, id)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NoStdButtons: o.NoStdButtons,
		Raw:          o.Raw,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
