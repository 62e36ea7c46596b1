package main

import (
	"errors"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-storycards/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseGenerateFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseGenerateFlags(t *testing.T) {
	t.Parallel()

	t.Run("short and long forms", func(t *testing.T) {
		t.Parallel()

		f, rest, err := parseGenerateFlags([]string{
			"-i", "in.csv", "--output", "out.tex", "-t", "compact",
			"--asset-path", "/assets", "--checklist-parser", "markdown",
			"-c", "cards", "-q", "-v",
		})
		if err != nil {
			t.Fatalf("parseGenerateFlags() error = %v", err)
		}
		if len(rest) != 0 {
			t.Errorf("positional = %v, want none", rest)
		}
		if f.input != "in.csv" || f.output != "out.tex" || f.template != "compact" {
			t.Errorf("I/O flags = %q %q %q", f.input, f.output, f.template)
		}
		if f.assetPath != "/assets" || f.checklistParser != "markdown" {
			t.Errorf("asset/checklist = %q %q", f.assetPath, f.checklistParser)
		}
		if f.common.config != "cards" || !f.common.quiet || !f.common.verbose {
			t.Errorf("common = %+v", f.common)
		}
	})

	t.Run("positional arguments returned", func(t *testing.T) {
		t.Parallel()

		_, rest, err := parseGenerateFlags([]string{"extra"})
		if err != nil {
			t.Fatalf("parseGenerateFlags() error = %v", err)
		}
		if len(rest) != 1 || rest[0] != "extra" {
			t.Errorf("positional = %v", rest)
		}
	})

	t.Run("help flag", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseGenerateFlags([]string{"--help"})
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("parseGenerateFlags(--help) error = %v, want ErrHelp", err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		if _, _, err := parseGenerateFlags([]string{"--workers", "4"}); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI precedence
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Input:     config.InputConfig{CSV: "file.csv"},
		Output:    config.OutputConfig{File: "file.tex"},
		Template:  config.TemplateConfig{Path: "./file.tex"},
		Checklist: config.ChecklistConfig{Parser: "pattern"},
	}
	mergeFlags(&generateFlags{input: "flag.csv", template: "compact", checklistParser: "markdown"}, cfg)

	if cfg.Input.CSV != "flag.csv" {
		t.Errorf("Input.CSV = %q, want flag.csv", cfg.Input.CSV)
	}
	if cfg.Output.File != "file.tex" {
		t.Errorf("Output.File = %q, want file.tex (unset flag)", cfg.Output.File)
	}
	if cfg.Template.Name != "compact" || cfg.Template.Path != "" {
		t.Errorf("Template = %+v, want name only", cfg.Template)
	}
	if cfg.Checklist.Parser != "markdown" {
		t.Errorf("Checklist.Parser = %q", cfg.Checklist.Parser)
	}
}

func TestSetTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref      string
		wantName string
		wantPath string
	}{
		{"storycard", "storycard", ""},
		{"card.tex", "", "card.tex"},
		{"./card", "", "./card"},
		{`tex\card`, "", `tex\card`},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{}
			setTemplate(cfg, tt.ref)
			if cfg.Template.Name != tt.wantName || cfg.Template.Path != tt.wantPath {
				t.Errorf("setTemplate(%q) = %+v", tt.ref, cfg.Template)
			}
		})
	}
}
