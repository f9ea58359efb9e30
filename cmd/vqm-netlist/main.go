// =============================================================================
// VQM Netlist Builder - Main Entry Point
// =============================================================================
//
// This tool turns a recorded stream of grammar actions into a queryable
// netlist database.
//
// THE PIPELINE:
//   1. Replay parses the action trace (one semantic action per line)
//   2. The builder constructs nets, assignments, and instances per module
//   3. Whole-bus uses are split into per-bit records as they arrive
//   4. Finished modules are flattened into relational fact tables
//   5. The CUE validator enforces the export contract (crash on mismatch)
//   6. Tables are written as JSON or MessagePack for downstream tools
//
// WHEN A TRACE FAILS TO REPLAY:
//   The line number in the error points at the offending action. Range
//   violations mean the recording front end is broken, not this tool.
// =============================================================================

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/config"
	"github.com/robert-at-pretension-io/vqm-netlist/internal/facts"
	"github.com/robert-at-pretension-io/vqm-netlist/internal/netlist"
	"github.com/robert-at-pretension-io/vqm-netlist/internal/replay"
	"github.com/robert-at-pretension-io/vqm-netlist/internal/validator"
)

var (
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	args := os.Args[1:]
	verbose := false
	configPath := ""

	// Peel leading options off so commands see only their operands.
	for len(args) > 0 {
		switch args[0] {
		case "-v", "--verbose":
			verbose = true
			args = args[1:]
			continue
		case "-c", "--config":
			if len(args) < 2 {
				printUsage()
				os.Exit(1)
			}
			configPath = args[1]
			args = args[2:]
			continue
		case "-h", "--help", "help":
			printUsage()
			return
		}
		break
	}
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "init":
		runInit()
	case "facts":
		if len(args) != 2 {
			printUsage()
			os.Exit(1)
		}
		runFacts(args[1], configPath, verbose)
	case "check":
		if len(args) != 2 {
			printUsage()
			os.Exit(1)
		}
		runCheck(args[1], configPath, verbose)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: vqm-netlist [options] <command>

Commands:
  init              Create a vqm_netlist.json configuration file
  facts <trace>     Replay an action trace and export netlist fact tables
  check <trace>     Replay an action trace and report warnings

Options:
  -v, --verbose     Enable verbose output
  -c, --config      Specify config file: vqm-netlist -c config.json facts <trace>
  -h, --help        Show this help message

Configuration:
  vqm-netlist looks for configuration in:
    1. ./vqm_netlist.json
    2. ./.vqm_netlist.json
    3. ~/.config/vqm_netlist/config.json

  Run 'vqm-netlist init' to create a default configuration file.`)
}

func runInit() {
	configPath := "vqm_netlist.json"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file %s already exists. Overwrite? [y/N]: ", configPath)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		errColor.Fprintf(os.Stderr, "Error creating config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - Output format (json or msgpack) and destination")
	fmt.Println("  - Contract validation of exported tables")
	fmt.Println("  - Strict handling of duplicate net declarations")
}

func loadConfig(configPath, tracePath string) *config.Config {
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			errColor.Fprintf(os.Stderr, "Error loading config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		return cfg
	}
	cfg, err := config.Load(tracePath)
	if err != nil {
		fmt.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// replayTrace runs the trace through a fresh builder, streaming warnings to
// stderr as they occur.
func replayTrace(tracePath string) (*netlist.Builder, error) {
	f, err := os.Open(tracePath)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	b := netlist.NewBuilder()
	b.WarnFunc = func(w netlist.Warning) {
		warnColor.Fprintf(os.Stderr, "Warning: %s: %s\n", tracePath, w)
	}
	if err := replay.Replay(f, b); err != nil {
		return nil, fmt.Errorf("%s: %w", tracePath, err)
	}
	return b, nil
}

func runFacts(tracePath, configPath string, verbose bool) {
	cfg := loadConfig(configPath, tracePath)
	if err := cfg.Validate(); err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b, err := replayTrace(tracePath)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tables := facts.BuildTables(b.Modules())
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %d modules, %d nets, %d assignments, %d nodes\n",
			tracePath, len(tables.Modules), len(tables.Nets), len(tables.Assignments), len(tables.Nodes))
	}

	if cfg.Output.Validate == nil || *cfg.Output.Validate {
		v, err := validator.New()
		if err != nil {
			errColor.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := v.Validate(tables); err != nil {
			errColor.Fprintf(os.Stderr, "Error: export contract violated: %v\n", err)
			os.Exit(1)
		}
	}

	out := os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			errColor.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch cfg.Output.Format {
	case "msgpack":
		err = facts.EncodeMsgpack(out, tables)
	default:
		pretty := cfg.Output.Pretty == nil || *cfg.Output.Pretty
		err = facts.EncodeJSON(out, tables, pretty)
	}
	if err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCheck(tracePath, configPath string, verbose bool) {
	cfg := loadConfig(configPath, tracePath)

	b, err := replayTrace(tracePath)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		for _, m := range b.Modules() {
			fmt.Printf("module %s: %d nets, %d assignments, %d nodes\n",
				m.Name, len(m.Nets), len(m.Assignments), len(m.Nodes))
		}
	}

	warnings := b.Warnings()
	if len(warnings) == 0 {
		fmt.Printf("%s: OK (%d modules)\n", tracePath, len(b.Modules()))
		return
	}
	fmt.Printf("%s: %d warnings\n", tracePath, len(warnings))
	if cfg.Strict.DuplicateNets {
		errColor.Fprintln(os.Stderr, "Error: duplicate net declarations are fatal in strict mode")
		os.Exit(1)
	}
}
