package storycards

import (
	"io"

	"github.com/alnah/go-storycards/internal/pipeline"
)

// Checklist parser names accepted by WithChecklistParser.
const (
	ChecklistPattern  = pipeline.ChecklistPattern
	ChecklistMarkdown = pipeline.ChecklistMarkdown
)

// Issue is one row of the issue export.
type Issue struct {
	Line        int // 1-based CSV line, 0 when built by hand
	ID          string
	Title       string
	Description string // raw, multi-line
	Milestone   string
}

// Header holds the numeric values from the description header block.
// Absent keys are empty.
type Header struct {
	Points   string // "Storypoints"
	Risk     string // "Risiko"
	Priority string // "Priorisierung"
}

// ChecklistItem is one acceptance criterion.
type ChecklistItem struct {
	Done bool
	Text string
}

// Card is a rendered story card.
type Card struct {
	Issue     Issue
	Header    Header
	Checklist []ChecklistItem
	Body      string // code spans already rewritten to \lstj{}
	Rendered  string
}

// Skipped is an issue that produced no card.
type Skipped struct {
	Issue  Issue
	Reason error // ErrMissingBody or ErrInvalidIssueID
}

// Result is the outcome of a Generate call.
type Result struct {
	Cards   []Card
	Skipped []Skipped
	Output  string // all rendered cards concatenated in input order
}

// Columns maps issue fields to zero-based CSV column indices.
type Columns struct {
	ID          int
	Title       int
	Description int
	Milestone   int
}

// DefaultColumns is the GitLab "Export as CSV" layout.
var DefaultColumns = Columns{ID: 0, Title: 2, Description: 4, Milestone: 15}

// Markers delimit the free-form body inside a description. The body starts
// after the first Open marker (plus an optional space and digits) and ends
// at the last Close marker.
type Markers struct {
	Open  string
	Close string
}

// DefaultMarkers match the German story template
// ("**Risiko**: N" ... "**Abgeschlossen wenn**").
var DefaultMarkers = Markers{
	Open:  pipeline.DefaultMarkers.Open,
	Close: pipeline.DefaultMarkers.Close,
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	templateName    string
	templateSource  string
	assetPath       string
	checklistParser string
	markers         Markers
	progress        io.Writer
}

// WithTemplateName selects a template by name from the asset loader.
func WithTemplateName(name string) Option {
	return func(g *Generator) {
		g.cfg.templateName = name
	}
}

// WithTemplate uses src as the card template, bypassing the asset loader.
func WithTemplate(src string) Option {
	return func(g *Generator) {
		g.cfg.templateSource = src
	}
}

// WithAssetPath sets a custom template directory with fallback to the
// embedded templates.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *Generator) {
		g.assetLoader = loader
	}
}

// WithChecklistParser selects the checklist parser ("pattern" or "markdown").
func WithChecklistParser(name string) Option {
	return func(g *Generator) {
		g.cfg.checklistParser = name
	}
}

// WithMarkers overrides the body markers. Empty fields keep their default.
func WithMarkers(m Markers) Option {
	return func(g *Generator) {
		if m.Open != "" {
			g.cfg.markers.Open = m.Open
		}
		if m.Close != "" {
			g.cfg.markers.Close = m.Close
		}
	}
}

// WithProgress sets the writer receiving one line per processed or skipped
// issue. Nil disables progress output.
func WithProgress(w io.Writer) Option {
	return func(g *Generator) {
		g.cfg.progress = w
	}
}
