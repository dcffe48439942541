// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/yeetrun/argot/pkg/argtype"
	"github.com/yeetrun/argot/pkg/cli"
	"github.com/yeetrun/argot/pkg/cmddef"
)

// subcommandArgs drops the subcommand name yargs passes to handlers.
func subcommandArgs(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}
	return argv[1:]
}

func handleParse(ctx context.Context, argv []string) error {
	flags, invocation, err := cli.ParseParse(subcommandArgs(argv))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast("parse", invocation, 1); err != nil {
		return err
	}
	tokens := invocation
	if flags.Quoted {
		if tokens, err = shlex.Split(strings.Join(invocation, " ")); err != nil {
			return fmt.Errorf("failed to split invocation: %w", err)
		}
	}
	cat, err := loadCatalog(flags.EngineFlags)
	if err != nil {
		return err
	}
	res := evaluate(cat, tokens)
	if flags.JSON {
		if err := writeJSON(stdout, res); err != nil {
			return err
		}
	} else if res.Error == "" {
		writeNamespace(stdout, res)
	}
	if res.Error != "" {
		return res.err
	}
	return nil
}

func handleUsage(ctx context.Context, argv []string) error {
	flags, rest, err := cli.ParseDefs(subcommandArgs(argv))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("usage", rest, 1); err != nil {
		return err
	}
	cat, err := loadCatalog(cli.EngineFlags{Defs: flags.Defs})
	if err != nil {
		return err
	}
	if len(rest) == 1 {
		cmd, ok := cat.Lookup(rest[0])
		if !ok {
			return fmt.Errorf("%w: %s", cmddef.ErrUnknownCommand, rest[0])
		}
		fmt.Fprint(stdout, cmd.Help())
		return nil
	}
	for _, cmd := range cat.Commands() {
		fmt.Fprintf(stdout, "%s\n", cmd.Usage())
		if cmd.Description != "" {
			fmt.Fprintf(stdout, "    %s\n", cmd.Description)
		}
	}
	return nil
}

func handleCheck(ctx context.Context, argv []string) error {
	flags, rest, err := cli.ParseDefs(subcommandArgs(argv))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("check", rest, 0); err != nil {
		return err
	}
	cat, err := loadCatalog(cli.EngineFlags{Defs: flags.Defs})
	if err != nil {
		return err
	}
	opts := cat.Options()
	fmt.Fprintf(stdout, "%s %d commands (validation %s, strict identifiers %v)\n",
		color.GreenString("ok:"), len(cat.Commands()), opts.Validation, opts.StrictIdentifiers)
	for _, cmd := range cat.Commands() {
		name := cmd.Name
		if len(cmd.Aliases) > 0 {
			name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		fmt.Fprintf(stdout, "  %s\n", name)
	}
	return nil
}

func handleTypes(ctx context.Context, argv []string) error {
	if err := cli.RequireArgsAtMost("types", subcommandArgs(argv), 0); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "types:      %s\n", strings.Join(argtype.Names(), ", "))
	fmt.Fprintf(stdout, "matchers:   %s\n", strings.Join(cmddef.MatcherNames(), ", "))
	fmt.Fprintf(stdout, "sanitizers: %s\n", strings.Join(cmddef.SanitizerNames(), ", "))
	return nil
}
