// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/shlex"
	"github.com/yeetrun/argot/pkg/cli"
	"github.com/yeetrun/argot/pkg/cmddef"
	"github.com/yeetrun/argot/pkg/codecutil"
	"golang.org/x/sync/errgroup"
)

// invocation is one non-comment line of a batch file.
type invocation struct {
	line   int
	tokens []string
	err    error
}

func handleBatch(ctx context.Context, argv []string) error {
	flags, rest, err := cli.ParseBatch(subcommandArgs(argv))
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("'batch' requires exactly 1 argument (a file, or - for stdin), got %d", len(rest))
	}
	cat, err := loadCatalog(flags.EngineFlags)
	if err != nil {
		return err
	}
	var in io.ReadCloser
	if rest[0] == "-" {
		in, err = codecutil.NewReader(io.NopCloser(stdin))
	} else {
		in, err = codecutil.OpenInput(rest[0])
	}
	if err != nil {
		return err
	}
	defer in.Close()

	invs, err := readInvocations(in)
	if err != nil {
		return err
	}
	results, err := evaluateAll(ctx, cat, invs, flags.Jobs)
	if err != nil {
		return err
	}
	failed, err := writeResults(stdout, results, flags.JSON)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d invocations failed", failed, len(results))
	}
	return nil
}

// readInvocations splits r into invocations, one per line, using shell
// quoting rules. Blank lines and lines starting with # are skipped.
func readInvocations(r io.Reader) ([]invocation, error) {
	var invs []invocation
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens, err := shlex.Split(line)
		invs = append(invs, invocation{line: n, tokens: tokens, err: err})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invocations: %w", err)
	}
	return invs, nil
}

// evaluateAll evaluates invs with at most jobs running at once. Results
// are returned in input order.
func evaluateAll(ctx context.Context, cat *cmddef.Catalog, invs []invocation, jobs int) ([]result, error) {
	results := make([]result, len(invs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, inv := range invs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if inv.err != nil {
				results[i] = result{Line: inv.line, err: inv.err, Error: inv.err.Error(), Kind: "syntax"}
				return nil
			}
			res := evaluate(cat, inv.tokens)
			res.Line = inv.line
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeResults(w io.Writer, results []result, asJSON bool) (failed int, err error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
		if asJSON {
			if err := writeJSON(w, res); err != nil {
				return failed, err
			}
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", res.Line, res.Command, summary(res))
	}
	return failed, tw.Flush()
}
