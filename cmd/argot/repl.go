// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/yeetrun/argot/pkg/cli"
	"github.com/yeetrun/argot/pkg/cmddef"
	"golang.org/x/term"
)

const replPrompt = "argot> "

var isTerminalFn = term.IsTerminal

func handleRepl(ctx context.Context, argv []string) error {
	flags, rest, err := cli.ParseRepl(subcommandArgs(argv))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost("repl", rest, 0); err != nil {
		return err
	}
	cat, err := loadCatalog(flags.EngineFlags)
	if err != nil {
		return err
	}
	f, ok := stdin.(*os.File)
	interactive := ok && isTerminalFn(int(f.Fd()))
	return runRepl(ctx, stdin, stdout, cat, replOptions{JSON: flags.JSON, Prompt: interactive})
}

type replOptions struct {
	JSON   bool
	Prompt bool
}

// runRepl evaluates one invocation per input line until EOF, "exit" or
// "quit". Failed invocations are reported and do not end the session.
func runRepl(ctx context.Context, r io.Reader, w io.Writer, cat *cmddef.Catalog, opts replOptions) error {
	sc := bufio.NewScanner(r)
	for {
		if opts.Prompt {
			fmt.Fprint(w, replPrompt)
		}
		if !sc.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help", "?":
			for _, cmd := range cat.Commands() {
				fmt.Fprintln(w, cmd.Usage())
			}
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			printCLIError(w, err)
			continue
		}
		res := evaluate(cat, tokens)
		switch {
		case opts.JSON:
			if err := writeJSON(w, res); err != nil {
				return err
			}
		case res.Error != "":
			fmt.Fprintf(w, "%s %s\n", color.RedString("%s error:", res.Kind), res.Error)
		default:
			writeNamespace(w, res)
		}
	}
	if opts.Prompt {
		fmt.Fprintln(w)
	}
	return sc.Err()
}
