package storycards

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-storycards/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.DescriptionPreprocessor = (*pipeline.LineEndingPreprocessor)(nil)
	_ pipeline.ChecklistParser         = (*pipeline.PatternChecklist)(nil)
	_ pipeline.ChecklistParser         = (*pipeline.MarkdownChecklist)(nil)
	_ AssetLoader                      = (*assetLoaderAdapter)(nil)
)

// issueIDPattern restricts IDs since they are inserted into LaTeX unescaped.
var issueIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Generator renders issues into story cards.
// Create with NewGenerator() and call Generate() for each export.
type Generator struct {
	cfg         generatorConfig
	assetLoader AssetLoader
	template    *pipeline.CardTemplate
	extractor   *pipeline.Extractor
}

// NewGenerator creates a Generator with default configuration: the embedded
// "storycard" template, the line pattern checklist parser and the default
// body markers. Returns error if the template cannot be loaded or an option
// value is invalid.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			templateName:    DefaultTemplate,
			checklistParser: ChecklistPattern,
			markers:         DefaultMarkers,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.assetLoader == nil {
		loader, err := NewAssetLoader(g.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		g.assetLoader = loader
	}

	if err := g.loadTemplate(); err != nil {
		return nil, err
	}

	checklist, ok := pipeline.NewChecklistParser(g.cfg.checklistParser)
	if !ok {
		return nil, fmt.Errorf("%w: %q (must be %s or %s)",
			ErrInvalidChecklist, g.cfg.checklistParser, ChecklistPattern, ChecklistMarkdown)
	}

	extractor, err := pipeline.NewExtractor(pipeline.Markers(g.cfg.markers), checklist)
	if err != nil {
		return nil, wrapError(ErrInvalidMarkers, err)
	}
	g.extractor = extractor

	return g, nil
}

// loadTemplate resolves the template source (inline or by name).
func (g *Generator) loadTemplate() error {
	src := g.cfg.templateSource
	if src == "" {
		var err error
		src, err = g.assetLoader.LoadTemplate(g.cfg.templateName)
		if err != nil {
			return fmt.Errorf("loading template %q: %w", g.cfg.templateName, err)
		}
	}

	tmpl, err := pipeline.NewCardTemplate(src)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyTemplate) {
			return wrapError(ErrEmptyTemplate, err)
		}
		return err
	}
	g.template = tmpl
	return nil
}

// MissingPlaceholders returns the placeholders the loaded template never
// uses. Such a template still renders; the values are simply dropped.
func (g *Generator) MissingPlaceholders() []string {
	return g.template.MissingPlaceholders()
}

// TemplateNames lists the templates available to the generator.
func (g *Generator) TemplateNames() []string {
	return g.assetLoader.TemplateNames()
}

// Generate renders one card per issue in input order. Issues without a body
// or with an invalid ID are reported in Result.Skipped and do not stop the
// run. The context is checked between issues.
func (g *Generator) Generate(ctx context.Context, issues []Issue) (*Result, error) {
	result := &Result{}
	var out strings.Builder

	for _, issue := range issues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := g.render(ctx, issue)
		if err != nil {
			g.reportSkip(issue, err)
			result.Skipped = append(result.Skipped, Skipped{Issue: issue, Reason: err})
			continue
		}

		g.progressf("%s: %s (%s) +%d\n", issue.ID, issue.Title, issue.Milestone, utf8.RuneCountInString(issue.Description))
		out.WriteString(card.Rendered)
		result.Cards = append(result.Cards, card)
	}

	result.Output = out.String()
	return result, nil
}

// render extracts the fields of one issue and fills the template.
func (g *Generator) render(ctx context.Context, issue Issue) (Card, error) {
	if !issueIDPattern.MatchString(issue.ID) {
		return Card{}, ErrInvalidIssueID
	}

	fields := g.extractor.Extract(ctx, issue.Description)
	if !fields.HasBody {
		return Card{}, ErrMissingBody
	}

	rendered := g.template.Render(pipeline.CardValues{
		ID:          issue.ID,
		Title:       issue.Title,
		Milestone:   issue.Milestone,
		Priority:    fields.Header.Priority,
		Points:      fields.Header.Points,
		Risk:        fields.Header.Risk,
		Description: fields.Body,
		Checklist:   pipeline.RenderChecklist(fields.Checklist),
	})

	return Card{
		Issue:     issue,
		Header:    Header(fields.Header),
		Checklist: toChecklist(fields.Checklist),
		Body:      fields.Body,
		Rendered:  rendered,
	}, nil
}

func (g *Generator) reportSkip(issue Issue, reason error) {
	if errors.Is(reason, ErrInvalidIssueID) {
		g.progressf("FAILED: # %s %s (%v)\n", issue.ID, issue.Title, reason)
		return
	}
	g.progressf("FAILED: # %s %s\n", issue.ID, issue.Title)
}

func (g *Generator) progressf(format string, args ...any) {
	if g.cfg.progress == nil {
		return
	}
	_, _ = fmt.Fprintf(g.cfg.progress, format, args...)
}

func toChecklist(items []pipeline.ChecklistItem) []ChecklistItem {
	if items == nil {
		return nil
	}
	out := make([]ChecklistItem, len(items))
	for i, it := range items {
		out[i] = ChecklistItem(it)
	}
	return out
}

// Render generates the cards of issues and writes the concatenated output to w.
func (g *Generator) Render(ctx context.Context, w io.Writer, issues []Issue) (*Result, error) {
	result, err := g.Generate(ctx, issues)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, result.Output); err != nil {
		return nil, fmt.Errorf("writing cards: %w", err)
	}
	return result, nil
}
