package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-storycards/internal/assets"
	"github.com/alnah/go-storycards/internal/fileutil"
	"github.com/alnah/go-storycards/internal/issuecsv"
	"github.com/alnah/go-storycards/internal/pipeline"
	"github.com/alnah/go-storycards/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxNameLength   = 100
	MaxMarkerLength = 100
)

// Defaults used when a field is left empty.
const (
	DefaultInputCSV   = "target/issues-export/issues.csv"
	DefaultOutputFile = "storycards.tex"
	DefaultTemplate   = "storycard"
)

// configDirName is the directory under os.UserConfigDir searched for configs.
const configDirName = "go-storycards"

// Config holds all configuration for card generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Template  TemplateConfig  `yaml:"template"`
	Assets    AssetsConfig    `yaml:"assets"`
	Columns   ColumnsConfig   `yaml:"columns"`
	Checklist ChecklistConfig `yaml:"checklist"`
	Markers   MarkersConfig   `yaml:"markers"`
}

// InputConfig defines the issue export location.
type InputConfig struct {
	CSV string `yaml:"csv"`
}

// OutputConfig defines where cards are written ("-" = stdout).
type OutputConfig struct {
	File string `yaml:"file"`
}

// TemplateConfig selects the card template by name or by file path.
type TemplateConfig struct {
	Name string `yaml:"name"` // looked up in assets
	Path string `yaml:"path"` // direct file, exclusive with name
}

// AssetsConfig defines the custom template directory.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded templates only
}

// ColumnsConfig maps record fields to zero-based CSV columns.
type ColumnsConfig struct {
	ID          *int `yaml:"id"`
	Title       *int `yaml:"title"`
	Description *int `yaml:"description"`
	Milestone   *int `yaml:"milestone"`
}

// ChecklistConfig selects the checklist parser.
type ChecklistConfig struct {
	Parser string `yaml:"parser"` // "pattern" (default) or "markdown"
}

// MarkersConfig delimits the description body.
type MarkersConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// IssueColumns returns the column layout with defaults for unset indices.
func (c ColumnsConfig) IssueColumns() issuecsv.Columns {
	cols := issuecsv.DefaultColumns
	if c.ID != nil {
		cols.ID = *c.ID
	}
	if c.Title != nil {
		cols.Title = *c.Title
	}
	if c.Description != nil {
		cols.Description = *c.Description
	}
	if c.Milestone != nil {
		cols.Milestone = *c.Milestone
	}
	return cols
}

// BodyMarkers returns the markers with defaults for empty values.
func (m MarkersConfig) BodyMarkers() pipeline.Markers {
	markers := pipeline.DefaultMarkers
	if m.Open != "" {
		markers.Open = m.Open
	}
	if m.Close != "" {
		markers.Close = m.Close
	}
	return markers
}

// Validate checks lengths and enumerated values. Called by LoadConfig and
// after CLI flags are merged.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"input.csv", c.Input.CSV, MaxPathLength},
		{"output.file", c.Output.File, MaxPathLength},
		{"template.name", c.Template.Name, MaxNameLength},
		{"template.path", c.Template.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"markers.open", c.Markers.Open, MaxMarkerLength},
		{"markers.close", c.Markers.Close, MaxMarkerLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Template.Name != "" && c.Template.Path != "" {
		return fmt.Errorf("%w: template.name and template.path are mutually exclusive", ErrInvalidValue)
	}
	if c.Template.Name != "" {
		if err := assets.ValidateAssetName(c.Template.Name); err != nil {
			return fmt.Errorf("%w: template.name: %v", ErrInvalidValue, err)
		}
	}

	if _, ok := pipeline.NewChecklistParser(c.Checklist.Parser); !ok {
		return fmt.Errorf("%w: checklist.parser %q (must be %s or %s)",
			ErrInvalidValue, c.Checklist.Parser, pipeline.ChecklistPattern, pipeline.ChecklistMarkdown)
	}

	if err := c.Columns.IssueColumns().Validate(); err != nil {
		return fmt.Errorf("%w: columns: %v", ErrInvalidValue, err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Input:     InputConfig{CSV: DefaultInputCSV},
		Output:    OutputConfig{File: DefaultOutputFile},
		Template:  TemplateConfig{Name: DefaultTemplate},
		Checklist: ChecklistConfig{Parser: pipeline.ChecklistPattern},
	}
}

// ApplyDefaults fills empty fields with DefaultConfig values and resolves
// column and marker defaults. A template path suppresses the default
// template name.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Input.CSV == "" {
		c.Input.CSV = def.Input.CSV
	}
	if c.Output.File == "" {
		c.Output.File = def.Output.File
	}
	if c.Template.Name == "" && c.Template.Path == "" {
		c.Template.Name = def.Template.Name
	}
	if c.Checklist.Parser == "" {
		c.Checklist.Parser = def.Checklist.Parser
	}

	cols := c.Columns.IssueColumns()
	c.Columns = ColumnsConfig{
		ID:          &cols.ID,
		Title:       &cols.Title,
		Description: &cols.Description,
		Milestone:   &cols.Milestone,
	}

	markers := c.Markers.BodyMarkers()
	c.Markers = MarkersConfig{Open: markers.Open, Close: markers.Close}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as <name>.yaml or <name>.yml in the working
// directory, then in the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, configDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}
