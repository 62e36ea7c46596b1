package storycards

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyTemplate    = errors.New("card template cannot be empty")
	ErrInvalidMarkers   = errors.New("invalid description markers")
	ErrInvalidChecklist = errors.New("invalid checklist parser")

	// Record errors. Reported through Skipped.Reason, never returned.
	ErrMissingBody    = errors.New("description body not found")
	ErrInvalidIssueID = errors.New("invalid issue id")

	// CSV errors.
	ErrShortRow       = errors.New("row has too few columns")
	ErrInvalidColumns = errors.New("invalid column layout")
	ErrCSVParse       = errors.New("failed to parse CSV")

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
