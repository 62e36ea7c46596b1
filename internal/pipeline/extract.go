package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidMarkers indicates empty body markers.
var ErrInvalidMarkers = errors.New("invalid description markers")

var (
	// - **Storypoints**: 5
	headerPattern = regexp.MustCompile(`- \*\*(\w+)\*\*: (\d+)`)

	// ``code`` spans inside the description body
	codeSpanPattern = regexp.MustCompile("(?s)``(.*?)``")
)

// Markers delimit the free-form description body. The body starts after the
// first Open marker (plus an optional space and digits) and runs to the last
// Close marker behind it.
type Markers struct {
	Open  string
	Close string
}

// DefaultMarkers match the issue template: the body follows the
// "**Risiko**: N" line and ends at "**Abgeschlossen wenn**".
var DefaultMarkers = Markers{Open: "ko**:", Close: "**Abgeschlossen"}

// ExtractHeader collects header values from description. Later occurrences
// of a key win.
func ExtractHeader(description string) Header {
	var h Header
	for _, m := range headerPattern.FindAllStringSubmatch(description, -1) {
		h.set(m[1], m[2])
	}
	return h
}

// BodyExtractor locates the description body between two markers.
type BodyExtractor struct {
	open  *regexp.Regexp
	close string
}

// NewBodyExtractor compiles the open marker. Both markers must be non-empty.
func NewBodyExtractor(m Markers) (*BodyExtractor, error) {
	if m.Open == "" || m.Close == "" {
		return nil, fmt.Errorf("%w: open and close must be set", ErrInvalidMarkers)
	}
	return &BodyExtractor{
		open:  regexp.MustCompile(regexp.QuoteMeta(m.Open) + ` ?\d*`),
		close: m.Close,
	}, nil
}

// ExtractBody returns the trimmed body with code spans rewritten.
// The second result is false when no non-empty body exists.
func (b *BodyExtractor) ExtractBody(description string) (string, bool) {
	loc := b.open.FindStringIndex(description)
	if loc == nil {
		return "", false
	}

	rest := description[loc[1]:]
	end := strings.LastIndex(rest, b.close)
	if end < 0 {
		return "", false
	}

	body := strings.TrimSpace(rest[:end])
	if body == "" {
		return "", false
	}
	return RewriteCodeSpans(body), true
}

// RewriteCodeSpans turns every ``code`` pair into \lstj{code}.
// A trailing unpaired `` is left untouched.
func RewriteCodeSpans(s string) string {
	return codeSpanPattern.ReplaceAllString(s, `\lstj{$1}`)
}

// Extractor runs all field extractions over one description.
type Extractor struct {
	preprocessor DescriptionPreprocessor
	checklist    ChecklistParser
	body         *BodyExtractor
}

// NewExtractor creates an Extractor. A nil checklist parser selects the
// line pattern parser.
func NewExtractor(markers Markers, checklist ChecklistParser) (*Extractor, error) {
	body, err := NewBodyExtractor(markers)
	if err != nil {
		return nil, err
	}
	if checklist == nil {
		checklist = &PatternChecklist{}
	}
	return &Extractor{
		preprocessor: &LineEndingPreprocessor{},
		checklist:    checklist,
		body:         body,
	}, nil
}

// Extract returns the fields of description. Fields.HasBody reports whether
// the record can be rendered.
func (e *Extractor) Extract(ctx context.Context, description string) Fields {
	description = e.preprocessor.PreprocessDescription(ctx, description)

	body, ok := e.body.ExtractBody(description)
	return Fields{
		Header:    ExtractHeader(description),
		Checklist: e.checklist.ParseChecklist(description),
		Body:      body,
		HasBody:   ok,
	}
}
