// Package pipeline provides the core diagram pipeline for umldraw.
//
// This package implements the complete extract → layout → render pipeline
// behind the CLI commands. By centralizing this logic, every entry point
// applies the same defaults, logging and error codes.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Extract: Parse a Python file and build the class model
//  2. Layout: Size and place one box per class and resolve relations
//  3. Render: Serialize the diagram (draw.io, JSON model, DOT or SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Source: "models.py",
//	    Docs:   true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(opts.Output, result.Artifact, 0o644)
//
// Run individual stages:
//
//	model, err := runner.Extract(ctx, opts)
//	plan := runner.Layout(ctx, model, opts)
//	data, err := runner.Render(ctx, model, plan, opts)
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/umldraw/pkg/errors"
	"github.com/matzehuels/umldraw/pkg/render/drawio"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "output.drawio"

// Format constants for output formats.
const (
	FormatDrawio = "drawio"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatDrawio

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDrawio: true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatSVG:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// The Layout and Document tables can be loaded from a TOML file with
// [LoadConfig].
type Options struct {
	// Extract options
	Source    string `toml:"-"`
	Docs      bool   `toml:"docs"`
	StableIDs bool   `toml:"stable_ids"`

	// Render options
	Format   string                 `toml:"format"`
	Output   string                 `toml:"output"`
	Layout   drawio.Options         `toml:"layout"`
	Document drawio.DocumentOptions `toml:"document"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with every default applied and no source.
func DefaultOptions() Options {
	return Options{
		Format:   DefaultFormat,
		Layout:   drawio.DefaultOptions(),
		Document: drawio.DefaultDocumentOptions(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the extracted class model.
	Model *uml.Model

	// Plan is the computed layout with its resolved edges.
	Plan Plan

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ClassCount    int
	RelationCount int
	EdgeCount     int
	DroppedCount  int
	ExtractTime   time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: drawio, json, dot, svg)", format)
	}
	return nil
}

// ValidateLayout checks that layout metrics can produce a drawable box.
func ValidateLayout(o drawio.Options) error {
	switch {
	case o.CellHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.cell_height must be positive")
	case o.SeparatorHeight < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.separator_height must not be negative")
	case o.LetterSize <= 0 || o.LetterFactor <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.letter_size and layout.letter_factor must be positive")
	case o.MinWidth < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.min_width must not be negative")
	case o.Gap < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.gap must not be negative")
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
	if err := o.ValidateForExtract(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForExtract checks the source path.
func (o *Options) ValidateForExtract() error {
	return errors.ValidateSourcePath(o.Source)
}

// SetRenderDefaults sets default values for layout and rendering.
// An unset Layout or Document takes the stock values as a whole; a set one is
// kept exactly, zero fields included, so a configured gap or origin of 0
// survives. Callers tuning single metrics start from [DefaultOptions].
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Output == "" {
		o.Output = DefaultOutputFor(o.Format)
	}
	setDefault(&o.Layout, drawio.DefaultOptions())
	setDefault(&o.Document, drawio.DefaultDocumentOptions())
}

// ValidateForRender validates and sets defaults for layout and rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	return ValidateLayout(o.Layout)
}

// IDGenerator returns the id source selected by StableIDs.
func (o *Options) IDGenerator() uml.IDGenerator {
	if o.StableIDs {
		return uml.NewSequenceGenerator()
	}
	return uml.UUIDGenerator{}
}

// IsModelInput reports whether Source is a JSON model export rather than
// Python source.
func (o *Options) IsModelInput() bool {
	return strings.EqualFold(filepath.Ext(o.Source), ".json")
}

// DefaultOutputFor returns the default output file for a format: the fixed
// draw.io name, or "output.<format>" for the others.
func DefaultOutputFor(format string) string {
	if format == "" || format == FormatDrawio {
		return DefaultOutput
	}
	return fmt.Sprintf("output.%s", format)
}

func setDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}
