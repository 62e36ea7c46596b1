package pipeline

import (
	"context"
	"regexp"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// DescriptionPreprocessor prepares a raw description for extraction.
type DescriptionPreprocessor interface {
	PreprocessDescription(ctx context.Context, content string) string
}

// LineEndingPreprocessor normalizes line endings so line-anchored patterns
// behave the same for exports produced on any platform.
type LineEndingPreprocessor struct{}

// PreprocessDescription converts \r\n and \r to \n.
func (p *LineEndingPreprocessor) PreprocessDescription(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
