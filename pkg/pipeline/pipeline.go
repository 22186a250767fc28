// Package pipeline runs the genogram pipeline used by the CLI and the HTTP
// server.
//
// This package implements the complete normalize → generations → layout →
// render flow so both entry points behave identically.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Normalize: Canonicalize ids, heal dangling references, drop invalid
//     relationships ([family.Normalize])
//  2. Generations: Index relationships and assign every person a
//     generation ([generation.Assign])
//  3. Layout: Compute icon positions ([layout.Build])
//  4. Render: Produce the document in the requested format
//
// # Usage
//
// Create a Runner and render to a file:
//
//	runner := pipeline.NewRunner(cache.NewIconsDir("icons"), logger)
//	path, err := runner.RenderFile(ctx, fam, "out/genogram", pipeline.Options{})
//
// Or keep the document in memory:
//
//	res, err := runner.Execute(ctx, fam, pipeline.Options{Format: pipeline.FormatSVG})
//	svg := res.Document
//
// A Runner owns its icon cache and is not safe for concurrent use; the
// HTTP server creates one per request.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
	"github.com/matzehuels/genogram/pkg/render/genogram/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultFormat is the interactive HTML page.
	DefaultFormat = FormatHTML

	// DefaultStyle is the default visual style.
	DefaultStyle = "classic"

	// DefaultTitle is the HTML page title.
	DefaultTitle = "Genogram"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatHTML     = "html"
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatHTML, FormatSVG, FormatJSON, FormatDOT, FormatNodelink, FormatPDF, FormatPNG}

// Extension returns the file extension written for format.
func Extension(format string) string {
	switch format {
	case FormatNodelink:
		return ".svg"
	case FormatDOT:
		return ".dot"
	default:
		return "." + format
	}
}

// ContentType returns the media type of documents in format.
func ContentType(format string) string {
	switch format {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatSVG, FormatNodelink:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON serialization for
// server requests.
type Options struct {
	// Generation options
	Focal string `json:"focal,omitempty"` // Person id to mark as identified patient

	// Layout options
	Layout  layout.Strategy `json:"layout,omitempty"` // "", "general" or "compact"
	Metrics *layout.Metrics `json:"metrics,omitempty"`

	// Render options
	Format   string  `json:"format,omitempty"`
	Style    string  `json:"style,omitempty"`
	Title    string  `json:"title,omitempty"`
	Detailed bool    `json:"detailed,omitempty"` // Detailed labels in dot and nodelink output
	Scale    float64 `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	switch o.Layout {
	case layout.StrategyAuto, layout.StrategyGeneral, layout.StrategyCompact:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (valid: general, compact)", o.Layout)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	if o.Focal != "" {
		if err := errors.ValidatePersonID(o.Focal); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats)
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (valid: %v)", style, styles.Names())
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result holds every intermediate of a pipeline run.
type Result struct {
	// Family is the normalized family that was drawn.
	Family family.Family

	// Repairs summarizes what normalization changed.
	Repairs family.NormalizeResult

	// Index is the relationship index of Family.
	Index *family.Index

	// Generations is the generation assignment.
	Generations generation.Result

	// Layout holds the computed positions.
	Layout layout.Layout

	// Format and Document hold the rendered output.
	Format   string
	Document []byte

	// Missing lists icons that were wanted but not found.
	Missing []string

	// Hash is the content hash of Document.
	Hash string

	// Path is the absolute path Document was written to, if any.
	Path string

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Persons       int
	Relationships int
	Generations   int
	LayoutTime    time.Duration
	RenderTime    time.Duration
}
