package main

// Notes:
// - loadEnvConfig and warnUnknownEnvVars take injected lookups, so they run
//   in parallel.
// - loadDotEnv mutates the process environment through godotenv and cannot
//   run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-storycards/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		envConfigPath:      "/etc/cards.yaml",
		envInput:           "export.csv",
		envOutput:          "-",
		envTemplate:        "compact",
		envAssetPath:       "/assets",
		envChecklistParser: "markdown",
	}

	got := loadEnvConfig(func(k string) string { return vars[k] })
	want := &envConfig{
		ConfigPath:      "/etc/cards.yaml",
		Input:           "export.csv",
		Output:          "-",
		Template:        "compact",
		AssetPath:       "/assets",
		ChecklistParser: "markdown",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		environ  []string
		wantWarn []string
		noWarn   []string
	}{
		{
			name:     "typo is reported",
			environ:  []string{"STORYCARDS_IMPUT=x", "PATH=/bin"},
			wantWarn: []string{"STORYCARDS_IMPUT"},
			noWarn:   []string{"PATH"},
		},
		{
			name:    "known variables are silent",
			environ: []string{"STORYCARDS_INPUT=a.csv", "STORYCARDS_OUTPUT=-"},
			noWarn:  []string{"STORYCARDS_INPUT", "STORYCARDS_OUTPUT"},
		},
		{
			name:     "value with equals sign",
			environ:  []string{"STORYCARDS_FOO=a=b"},
			wantWarn: []string{"STORYCARDS_FOO (typo?)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			warnUnknownEnvVars(&buf, tt.environ)

			for _, w := range tt.wantWarn {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("expected warning for %q, got %q", w, buf.String())
				}
			}
			for _, w := range tt.noWarn {
				if strings.Contains(buf.String(), w) {
					t.Errorf("unexpected warning for %q: %q", w, buf.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("env overrides file values", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Input:    config.InputConfig{CSV: "file.csv"},
			Template: config.TemplateConfig{Name: "storycard"},
		}
		applyEnvConfig(&envConfig{Input: "env.csv", Template: "./cards/mine.tex"}, cfg)

		if cfg.Input.CSV != "env.csv" {
			t.Errorf("Input.CSV = %q, want env.csv", cfg.Input.CSV)
		}
		if cfg.Template.Path != "./cards/mine.tex" || cfg.Template.Name != "" {
			t.Errorf("Template = %+v, want path only", cfg.Template)
		}
	})

	t.Run("unset env keeps file values", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Output: config.OutputConfig{File: "file.tex"}}
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Output.File != "file.tex" {
			t.Errorf("Output.File = %q, want file.tex", cfg.Output.File)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadDotEnv - .env file loading
// ---------------------------------------------------------------------------

func TestLoadDotEnv(t *testing.T) {
	const key = "STORYCARDS_DOTENV_TEST_VALUE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	loadDotEnv(path, &buf)

	if got := os.Getenv(key); got != "from-dotenv" {
		t.Errorf("%s = %q, want from-dotenv", key, got)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warning: %q", buf.String())
	}
}

func TestLoadDotEnv_MissingFileIsSilent(t *testing.T) {
	var buf bytes.Buffer
	loadDotEnv(filepath.Join(t.TempDir(), ".env"), &buf)

	if buf.Len() != 0 {
		t.Errorf("missing .env should not warn, got %q", buf.String())
	}
}

func TestLoadDotEnv_ExistingVariableWins(t *testing.T) {
	const key = "STORYCARDS_DOTENV_TEST_KEEP"
	t.Setenv(key, "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loadDotEnv(path, &bytes.Buffer{})

	if got := os.Getenv(key); got != "from-process" {
		t.Errorf("%s = %q, want from-process", key, got)
	}
}
