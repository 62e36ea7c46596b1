package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-storycards/internal/config"
)

// dotEnvFile is loaded from the working directory at startup. Variables
// already set in the process environment are not overridden.
const dotEnvFile = ".env"

// envPrefix marks the variables read by storycards.
const envPrefix = "STORYCARDS_"

// Recognized environment variables.
const (
	envConfigPath      = envPrefix + "CONFIG"
	envInput           = envPrefix + "INPUT"
	envOutput          = envPrefix + "OUTPUT"
	envTemplate        = envPrefix + "TEMPLATE"
	envAssetPath       = envPrefix + "ASSET_PATH"
	envChecklistParser = envPrefix + "CHECKLIST_PARSER"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath      string // STORYCARDS_CONFIG: config file name or path
	Input           string // STORYCARDS_INPUT: issue export CSV
	Output          string // STORYCARDS_OUTPUT: output file or "-"
	Template        string // STORYCARDS_TEMPLATE: template name or path
	AssetPath       string // STORYCARDS_ASSET_PATH: custom template directory
	ChecklistParser string // STORYCARDS_CHECKLIST_PARSER: pattern or markdown
}

// knownEnvVars lists valid STORYCARDS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:      true,
	envInput:           true,
	envOutput:          true,
	envTemplate:        true,
	envAssetPath:       true,
	envChecklistParser: true,
}

// loadDotEnv loads KEY=value pairs from path into the process environment.
// A missing file is not an error.
func loadDotEnv(path string, w io.Writer) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "warning: reading %s: %v\n", path, err)
	}
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:      getenv(envConfigPath),
		Input:           getenv(envInput),
		Output:          getenv(envOutput),
		Template:        getenv(envTemplate),
		AssetPath:       getenv(envAssetPath),
		ChecklistParser: getenv(envChecklistParser),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized STORYCARDS_* variables.
// Helps catch typos like STORYCARDS_IMPUT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// CLI flags are applied afterwards by mergeFlags, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.CSV = env.Input
	}
	if env.Output != "" {
		cfg.Output.File = env.Output
	}
	if env.Template != "" {
		setTemplate(cfg, env.Template)
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.ChecklistParser != "" {
		cfg.Checklist.Parser = env.ChecklistParser
	}
}
