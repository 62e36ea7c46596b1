package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	storycards "github.com/alnah/go-storycards"
	"github.com/alnah/go-storycards/internal/config"
	"github.com/alnah/go-storycards/internal/fileutil"
	"github.com/alnah/go-storycards/internal/hints"
)

// CLI errors.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadInput   = errors.New("failed to read issue export")
	ErrReadTmpl    = errors.New("failed to read template file")
	ErrWriteOutput = errors.New("failed to write output")
)

// stdoutTarget selects standard output as the output file.
const stdoutTarget = "-"

// outputPerm is the file mode of the written card file.
const outputPerm = 0o644

// runGenerate reads the issue export, renders all cards and writes them.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printGenerateUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q (use --input)", ErrUsage, positional[0])
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	toStdout := cfg.Output.File == stdoutTarget

	// Progress goes to stderr when stdout carries the cards.
	var progress io.Writer
	if !flags.common.quiet {
		progress = env.Stdout
		if toStdout {
			progress = env.Stderr
		}
	}

	log := newLogger(env.Stderr, flags.common)
	defer func() { _ = log.Sync() }()

	start := env.Now()

	issues, err := readIssues(cfg)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, progress)
	if err != nil {
		return err
	}
	if missing := gen.MissingPlaceholders(); len(missing) > 0 {
		log.Warn("incomplete template", zap.Strings("unused", missing))
	}
	log.Debug("issues loaded", zap.String("input", cfg.Input.CSV), zap.Int("issues", len(issues)))

	result, err := gen.Generate(ctx, issues)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg.Output.File, result.Output, env.Stdout); err != nil {
		return err
	}

	log.Info("cards written",
		zap.Int("cards", len(result.Cards)),
		zap.Int("skipped", len(result.Skipped)),
		zap.String("output", cfg.Output.File),
		zap.Duration("elapsed", env.Now().Sub(start).Round(time.Millisecond)))
	return nil
}

// resolveConfig builds the effective configuration:
// CLI flags > env vars > config file > defaults.
func resolveConfig(flags *generateFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := &config.Config{}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newGenerator creates a generator from the effective configuration.
func newGenerator(cfg *config.Config, progress io.Writer) (*storycards.Generator, error) {
	markers := cfg.Markers.BodyMarkers()
	opts := []storycards.Option{
		storycards.WithAssetPath(cfg.Assets.BasePath),
		storycards.WithChecklistParser(cfg.Checklist.Parser),
		storycards.WithMarkers(storycards.Markers{Open: markers.Open, Close: markers.Close}),
		storycards.WithProgress(progress),
	}

	if cfg.Template.Path != "" {
		src, err := os.ReadFile(cfg.Template.Path) // #nosec G304 -- template path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadTmpl, err)
		}
		opts = append(opts, storycards.WithTemplate(string(src)))
	} else {
		opts = append(opts, storycards.WithTemplateName(cfg.Template.Name))
	}

	gen, err := storycards.NewGenerator(opts...)
	if err != nil {
		if errors.Is(err, storycards.ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w%s", err, templateHint(cfg.Assets.BasePath))
		}
		return nil, err
	}
	return gen, nil
}

// templateHint lists the templates available under basePath.
func templateHint(basePath string) string {
	loader, err := storycards.NewAssetLoader(basePath)
	if err != nil {
		return ""
	}
	return hints.ForTemplateNotFound(loader.TemplateNames())
}

// readIssues loads the issue export named by the configuration.
func readIssues(cfg *config.Config) ([]storycards.Issue, error) {
	cols := cfg.Columns.IssueColumns()
	issues, err := storycards.ReadIssuesFile(cfg.Input.CSV, storycards.Columns(cols))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w%s", ErrReadInput, err, hints.ForInputNotFound(cfg.Input.CSV))
		}
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return issues, nil
}

// writeOutput writes content atomically to path, or to stdout for "-".
func writeOutput(path, content string, stdout io.Writer) error {
	if path == stdoutTarget {
		if _, err := io.WriteString(stdout, content); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteFileAtomic(path, []byte(content), outputPerm); err != nil {
		if !fileutil.DirWritable(filepath.Dir(path)) {
			return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
