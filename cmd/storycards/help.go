package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: storycards [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Render story cards from an issue export (default)")
	fmt.Fprintln(w, "  doctor     Check input, template and output before generating")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'storycards help <command>' for details on a specific command.")
}

// printGenerateFlags prints the flags shared by generate, doctor and config.
func printGenerateFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>            Issue export CSV")
	fmt.Fprintln(w, "                                (default target/issues-export/issues.csv)")
	fmt.Fprintln(w, "  -o, --output <path>           Output file, \"-\" for stdout (default storycards.tex)")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <name|path>    Template name or .tex file (default storycard)")
	fmt.Fprintln(w, "      --asset-path <dir>        Directory with templates/<name>.tex")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parsing:")
	fmt.Fprintln(w, "      --checklist-parser <s>    Checklist parser: pattern, markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                   Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                 Show timing and debug logs")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: storycards generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one LaTeX story card per issue and write them to a single file.")
	fmt.Fprintln(w, "Issues without a description body are reported as FAILED and skipped.")
	fmt.Fprintln(w)
	printGenerateFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  STORYCARDS_CONFIG, STORYCARDS_INPUT, STORYCARDS_OUTPUT, STORYCARDS_TEMPLATE,")
	fmt.Fprintln(w, "  STORYCARDS_ASSET_PATH, STORYCARDS_CHECKLIST_PARSER (also read from .env)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: storycards doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the effective configuration, issue export, template and output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                    Machine-readable output")
	printGenerateFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: storycards config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after merging defaults, config file, env vars and flags.")
	fmt.Fprintln(w)
	printGenerateFlags(w)
}

// runHelp prints help for a specific command and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: storycards version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: storycards help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
