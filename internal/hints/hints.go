// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// InputEnvVar is mentioned when the input path came from the environment.
const InputEnvVar = "STORYCARDS_INPUT"

// ForInputNotFound returns hints for a missing issue export.
// Explains how to obtain the GitLab CSV export and where to put it.
func ForInputNotFound(path string) string {
	hints := []string{
		"export issues from GitLab (Issues > Export as CSV), then save the mailed file as " + path,
	}
	if os.Getenv(InputEnvVar) != "" {
		hints = append(hints, InputEnvVar+" is set and overrides the config file")
	} else {
		hints = append(hints, "or pass --input /path/to/issues.csv")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-storycards/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-storycards") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingPlaceholders lists placeholders a template lacks.
func ForMissingPlaceholders(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return format("template never uses " + strings.Join(missing, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
