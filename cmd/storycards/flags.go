package main

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-storycards/internal/config"
	"github.com/alnah/go-storycards/internal/fileutil"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common          commonFlags
	input           string
	output          string
	template        string // name or path
	assetPath       string
	checklistParser string
}

// addCommonFlags adds shared flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addGenerateFlags adds input, output and template flags to a FlagSet.
func addGenerateFlags(fs *flag.FlagSet, f *generateFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "issue export CSV")
	fs.StringVarP(&f.output, "output", "o", "", `output file ("-" = stdout)`)
	fs.StringVarP(&f.template, "template", "t", "", "template name or .tex path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template directory")
	fs.StringVar(&f.checklistParser, "checklist-parser", "", "checklist parser: pattern, markdown")
	addCommonFlags(fs, &f.common)
}

// newGenerateFlagSet creates a FlagSet carrying the generate flags.
// Errors are returned from Parse, never printed by pflag itself.
func newGenerateFlagSet(name string, f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addGenerateFlags(fs, f)
	return fs
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newGenerateFlagSet("generate", f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// mergeFlags applies set CLI flags to cfg. CLI wins over env and file.
func mergeFlags(f *generateFlags, cfg *config.Config) {
	if f.input != "" {
		cfg.Input.CSV = f.input
	}
	if f.output != "" {
		cfg.Output.File = f.output
	}
	if f.template != "" {
		setTemplate(cfg, f.template)
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.checklistParser != "" {
		cfg.Checklist.Parser = f.checklistParser
	}
}

// setTemplate stores a template reference as a path when it looks like one
// (separator or .tex extension), otherwise as a name.
func setTemplate(cfg *config.Config, ref string) {
	if fileutil.IsFilePath(ref) || strings.HasSuffix(ref, ".tex") {
		cfg.Template.Path, cfg.Template.Name = ref, ""
		return
	}
	cfg.Template.Name, cfg.Template.Path = ref, ""
}
