package main

import (
	"errors"
	"os"

	storycards "github.com/alnah/go-storycards"
	"github.com/alnah/go-storycards/internal/config"
)

// Exit codes for the storycards CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Cards written
	ExitGeneral = 1 // General/unexpected error, malformed CSV
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, storycards.ErrTemplateNotFound) ||
		errors.Is(err, storycards.ErrEmptyTemplate) ||
		errors.Is(err, storycards.ErrInvalidAssetPath) ||
		errors.Is(err, storycards.ErrInvalidChecklist) ||
		errors.Is(err, storycards.ErrInvalidMarkers) ||
		errors.Is(err, storycards.ErrInvalidColumns) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadTmpl) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
