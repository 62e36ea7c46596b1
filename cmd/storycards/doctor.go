package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-storycards/internal/config"
	"github.com/alnah/go-storycards/internal/fileutil"
	"github.com/alnah/go-storycards/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo   `json:"config"`
	Input    inputInfo    `json:"input"`
	Template templateInfo `json:"template"`
	Output   outputInfo   `json:"output"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// configInfo describes the configuration source.
type configInfo struct {
	Source string `json:"source"` // config name/path or "defaults"
	Valid  bool   `json:"valid"`
}

// inputInfo holds issue export check results.
type inputInfo struct {
	Path   string `json:"path"`
	Found  bool   `json:"found"`
	Issues int    `json:"issues"`
}

// templateInfo holds template check results.
type templateInfo struct {
	Name      string   `json:"name"` // name or path
	Loaded    bool     `json:"loaded"`
	Missing   []string `json:"missing_placeholders,omitempty"`
	Available []string `json:"available,omitempty"`
}

// outputInfo holds output target check results.
type outputInfo struct {
	Path     string `json:"path"`
	Writable bool   `json:"writable"`
}

// envInfo holds platform details.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	f := &generateFlags{}
	var jsonOutput bool
	fs := newGenerateFlagSet("doctor", f)
	fs.BoolVar(&jsonOutput, "json", false, "machine-readable output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		printDoctorUsage(env.Stderr)
		return ExitUsage
	}

	result := runDoctor(f, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(flags *generateFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	cfg, ok := checkConfig(result, flags, env)
	if ok {
		checkInput(result, cfg)
		checkTemplate(result, cfg)
		checkOutput(result, cfg)
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig resolves the effective configuration.
func checkConfig(result *doctorResult, flags *generateFlags, env *Environment) (*config.Config, bool) {
	result.Config.Source = flags.common.config
	if result.Config.Source == "" {
		result.Config.Source = env.Getenv(envConfigPath)
	}
	if result.Config.Source == "" {
		result.Config.Source = "defaults"
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return nil, false
	}
	result.Config.Valid = true
	return cfg, true
}

// checkInput verifies the issue export can be read.
func checkInput(result *doctorResult, cfg *config.Config) {
	result.Input.Path = cfg.Input.CSV

	issues, err := readIssues(cfg)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Input: %v", err))
		return
	}
	result.Input.Found = true
	result.Input.Issues = len(issues)
	if len(issues) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Input %s contains no issues", cfg.Input.CSV))
	}
}

// checkTemplate loads the template and reports unused placeholders.
func checkTemplate(result *doctorResult, cfg *config.Config) {
	result.Template.Name = cfg.Template.Name
	if cfg.Template.Path != "" {
		result.Template.Name = cfg.Template.Path
	}

	gen, err := newGenerator(cfg, nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template: %v", err))
		return
	}
	result.Template.Loaded = true
	result.Template.Available = gen.TemplateNames()

	if missing := gen.MissingPlaceholders(); len(missing) > 0 {
		result.Template.Missing = missing
		result.Warnings = append(result.Warnings,
			"Template is incomplete"+hints.ForMissingPlaceholders(missing))
	}
}

// checkOutput verifies the output directory accepts new files.
func checkOutput(result *doctorResult, cfg *config.Config) {
	result.Output.Path = cfg.Output.File
	if cfg.Output.File == stdoutTarget {
		result.Output.Writable = true
		return
	}

	dir := filepath.Dir(cfg.Output.File)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory %s does not exist%s", dir, hints.ForOutputDirectory()))
		return
	}
	if !fileutil.DirWritable(dir) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory %s is not writable%s", dir, hints.ForOutputDirectory()))
		return
	}
	result.Output.Writable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "storycards doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	if r.Config.Valid {
		fmt.Fprintln(w, "Input")
		if r.Input.Found {
			fmt.Fprintf(w, "  [OK] %s (%d issues)\n", r.Input.Path, r.Input.Issues)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s\n", r.Input.Path)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Template")
		switch {
		case !r.Template.Loaded:
			fmt.Fprintf(w, "  [ERROR] %s\n", r.Template.Name)
		case len(r.Template.Missing) > 0:
			fmt.Fprintf(w, "  [WARN] %s (%d placeholder(s) unused)\n", r.Template.Name, len(r.Template.Missing))
		default:
			fmt.Fprintf(w, "  [OK] %s\n", r.Template.Name)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Output")
		if r.Output.Writable {
			fmt.Fprintf(w, "  [OK] %s\n", r.Output.Path)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s\n", r.Output.Path)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
