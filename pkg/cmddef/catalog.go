// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmddef

import (
	"errors"
	"fmt"

	"github.com/yeetrun/argot/pkg/args"
	"tailscale.com/util/mak"
)

var (
	// ErrNoCommand is returned by Route for an empty invocation.
	ErrNoCommand = errors.New("no command given")
	// ErrUnknownCommand is returned by Route when the first token names no command.
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is a named argument set and the parser for it.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Set         *args.Set

	parser *args.Parser
}

// Parser returns the command's parser. It is safe for concurrent use.
func (c *Command) Parser() *args.Parser {
	return c.parser
}

// Usage returns the command's synopsis line.
func (c *Command) Usage() string {
	return args.Usage(c.Name, c.Set)
}

// Help returns the command's full help text.
func (c *Command) Help() string {
	return args.Help(c.Name, c.Description, c.Set)
}

// Catalog is a set of commands addressed by name or alias.
type Catalog struct {
	opts     args.Options
	commands []*Command
	byName   map[string]*Command
}

// NewCatalog returns a catalog of cmds whose parsers use opts. Names and
// aliases must be unique across the catalog.
func NewCatalog(opts args.Options, cmds ...*Command) (*Catalog, error) {
	c := &Catalog{opts: opts}
	for _, cmd := range cmds {
		if cmd.Set == nil {
			return nil, fmt.Errorf("command %s has no argument set", cmd.Name)
		}
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			if prev, ok := c.byName[name]; ok {
				return nil, fmt.Errorf("command name %q is used by both %s and %s", name, prev.Name, cmd.Name)
			}
			mak.Set(&c.byName, name, cmd)
		}
		cmd.parser = args.NewParser(cmd.Set, opts)
		c.commands = append(c.commands, cmd)
	}
	return c, nil
}

// Options returns the parser options the catalog was built with.
func (c *Catalog) Options() args.Options {
	return c.opts
}

// Commands returns the commands in definition order.
func (c *Catalog) Commands() []*Command {
	return c.commands
}

// Lookup returns the command with the given name or alias.
func (c *Catalog) Lookup(name string) (*Command, bool) {
	cmd, ok := c.byName[name]
	return cmd, ok
}

// Route picks the command named by the first token and returns it with
// the remaining tokens.
func (c *Catalog) Route(tokens []string) (*Command, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, ErrNoCommand
	}
	cmd, ok := c.Lookup(tokens[0])
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, tokens[0])
	}
	return cmd, tokens[1:], nil
}

// Evaluate routes tokens and evaluates the rest with the command's parser.
func (c *Catalog) Evaluate(tokens []string) (*Command, args.Namespace, error) {
	cmd, rest, err := c.Route(tokens)
	if err != nil {
		return nil, nil, err
	}
	ns, err := cmd.parser.Evaluate(rest)
	if err != nil {
		return cmd, nil, err
	}
	return cmd, ns, nil
}
