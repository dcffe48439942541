// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argot parses command invocations against declarative argument
// definitions and prints the resulting namespaces.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argot/pkg/args"
	"github.com/yeetrun/argot/pkg/cli"
	"github.com/yeetrun/argot/pkg/cmddef"
	"tailscale.com/util/must"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
	getenv           = os.Getenv

	verbose bool
)

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Trace every token the parser consumes"`
	NoColor bool `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
}

// parseGlobalFlags consumes the flags that precede the subcommand. Flags
// after it belong to the subcommand or to the invocation being parsed.
func parseGlobalFlags(argv []string) (globalFlagsParsed, []string, error) {
	n := 0
	for n < len(argv) && strings.HasPrefix(argv[n], "-") && argv[n] != "-" && argv[n] != "--" {
		n++
	}
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](argv[:n], yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, append(result.RemainingArgs, argv[n:]...), nil
}

func handlers() map[string]yargs.SubcommandHandler {
	return map[string]yargs.SubcommandHandler{
		"parse": handleParse,
		"batch": handleBatch,
		"repl":  handleRepl,
		"usage": handleUsage,
		"check": handleCheck,
		"types": handleTypes,
	}
}

func run(ctx context.Context, argv []string) error {
	globalFlags, remaining, err := parseGlobalFlags(argv)
	if err != nil {
		return err
	}
	verbose = globalFlags.Verbose
	if globalFlags.NoColor {
		color.NoColor = true
	}
	return yargs.RunSubcommands(ctx, remaining, cli.HelpConfig(), globalFlagsParsed{}, handlers())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		printCLIError(stderr, err)
		stop()
		os.Exit(1)
	}
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.RedString("error:"), err)
}

// loadCatalog builds the command catalog from the definition file named by
// --defs or ARGOT_DEFS, falling back to the built-in example. Command-line
// flags override the file's engine section and the environment.
func loadCatalog(f cli.EngineFlags) (*cmddef.Catalog, error) {
	var cfg *cmddef.Config
	if path := cmddef.DefsPath(f.Defs, getenv); path != "" {
		c, err := cmddef.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = must.Get(cmddef.Example())
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if err := cmddef.ApplyEnv(&opts, getenv); err != nil {
		return nil, err
	}
	if f.Gather {
		opts.Validation = args.GatherAll
	}
	if f.Separator != "" {
		opts.Separator = f.Separator
	}
	if f.Strict {
		opts.StrictIdentifiers = true
	}
	if verbose {
		opts.Logf = log.Printf
	}
	return cfg.Build(opts)
}
