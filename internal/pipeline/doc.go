// Package pipeline implements the description-to-card stages:
//   - description preprocessing (line ending normalization)
//   - header block extraction (story points, risk, priority)
//   - checklist extraction, by line pattern or by markdown task lists
//   - description body extraction with inline code rewriting
//   - LaTeX escaping
//   - placeholder substitution into a card template
//
// CSV reading lives in internal/issuecsv and output writing in the root
// storycards package. Every stage here is a pure string transformation.
package pipeline
