// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shayne/yargs"
)

type FlagSpec struct {
	ConsumesValue bool
}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

// EngineFlags are the parser settings shared by the commands that parse
// invocations.
type EngineFlags struct {
	Defs      string
	Gather    bool
	Separator string
	Strict    bool
}

type ParseFlags struct {
	EngineFlags
	JSON   bool
	Quoted bool
}

type BatchFlags struct {
	EngineFlags
	JSON bool
	Jobs int
}

type ReplFlags struct {
	EngineFlags
	JSON bool
}

type DefsFlags struct {
	Defs string
}

type parseFlagsParsed struct {
	Defs      string `flag:"defs" short:"d" help:"Command definition file (ARGOT_DEFS)"`
	Gather    bool   `flag:"gather" short:"g" help:"Report every validation failure (ARGOT_VALIDATION=gather-all)"`
	Separator string `flag:"separator" help:"Separator for gathered failures (ARGOT_SEPARATOR)"`
	Strict    bool   `flag:"strict" help:"Reject unknown identifiers"`
	JSON      bool   `flag:"json" help:"Print the namespace as JSON"`
	Quoted    bool   `flag:"quoted" short:"q" help:"Split the invocation with shell quoting rules"`
}

type batchFlagsParsed struct {
	Defs      string `flag:"defs" short:"d" help:"Command definition file (ARGOT_DEFS)"`
	Gather    bool   `flag:"gather" short:"g" help:"Report every validation failure (ARGOT_VALIDATION=gather-all)"`
	Separator string `flag:"separator" help:"Separator for gathered failures (ARGOT_SEPARATOR)"`
	Strict    bool   `flag:"strict" help:"Reject unknown identifiers"`
	JSON      bool   `flag:"json" help:"Print one JSON object per invocation"`
	Jobs      int    `flag:"jobs" short:"j" default:"4" help:"Invocations parsed concurrently"`
}

type replFlagsParsed struct {
	Defs      string `flag:"defs" short:"d" help:"Command definition file (ARGOT_DEFS)"`
	Gather    bool   `flag:"gather" short:"g" help:"Report every validation failure (ARGOT_VALIDATION=gather-all)"`
	Separator string `flag:"separator" help:"Separator for gathered failures (ARGOT_SEPARATOR)"`
	Strict    bool   `flag:"strict" help:"Reject unknown identifiers"`
	JSON      bool   `flag:"json" help:"Print namespaces as JSON"`
}

type defsFlagsParsed struct {
	Defs string `flag:"defs" short:"d" help:"Command definition file (ARGOT_DEFS)"`
}

var commandInfos = map[string]CommandInfo{
	"parse": {Name: "parse", Description: "Parse one invocation and print its namespace", Usage: "[flags] [--] COMMAND [TOKENS...]", Examples: []string{
		"argot parse greet alice --age 30",
		"argot parse --defs cmds.toml --gather -- deploy web --replicas 3",
		`argot parse --quoted 'greet "alice smith" --loud'`,
	}, Aliases: []string{"p"}},
	"batch": {Name: "batch", Description: "Parse every invocation in a file, one per line", Usage: "[flags] FILE", Examples: []string{
		"argot batch invocations.txt",
		"argot batch --jobs 8 --json invocations.txt.zst",
		"argot batch -",
	}},
	"repl": {Name: "repl", Description: "Read invocations from stdin and parse them interactively"},
	"usage": {Name: "usage", Description: "Show usage for the defined commands", Usage: "[--defs FILE] [COMMAND]", Examples: []string{
		"argot usage",
		"argot usage greet",
	}},
	"check": {Name: "check", Description: "Validate a definition file", Usage: "[--defs FILE]"},
	"types": {Name: "types", Description: "List value types and matchers available to definitions"},
}

var flagSpecs = map[string]map[string]FlagSpec{
	"parse": flagSpecsFromStruct(parseFlagsParsed{}),
	"batch": flagSpecsFromStruct(batchFlagsParsed{}),
	"repl":  flagSpecsFromStruct(replFlagsParsed{}),
	"usage": flagSpecsFromStruct(defsFlagsParsed{}),
	"check": flagSpecsFromStruct(defsFlagsParsed{}),
	"types": {},
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func FlagSpecs() map[string]map[string]FlagSpec {
	return flagSpecs
}

// HelpConfig returns the help metadata for the argot command.
func HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = toSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argot",
			Description: "Parse command invocations against declarative argument definitions",
			Examples: []string{
				"argot parse greet alice --age 30",
				"argot usage",
			},
		},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseParse parses the flags of `argot parse`. Flags end at the first
// positional token or at "--"; everything after is the invocation.
func ParseParse(args []string) (ParseFlags, []string, error) {
	parseArgs, invocation := splitArgsForParsing(args, flagSpecs["parse"])
	parsed, err := parseFlags[parseFlagsParsed](parseArgs)
	if err != nil {
		return ParseFlags{}, nil, err
	}
	flags := ParseFlags{
		EngineFlags: EngineFlags{
			Defs:      parsed.Flags.Defs,
			Gather:    parsed.Flags.Gather,
			Separator: parsed.Flags.Separator,
			Strict:    parsed.Flags.Strict,
		},
		JSON:   parsed.Flags.JSON,
		Quoted: parsed.Flags.Quoted,
	}
	return flags, append(parsed.Args, invocation...), nil
}

// ParseBatch parses the flags of `argot batch`. A lone "-" names stdin.
func ParseBatch(args []string) (BatchFlags, []string, error) {
	args, stdin := extractStdinArg(args)
	parsed, err := parseFlags[batchFlagsParsed](args)
	if err != nil {
		return BatchFlags{}, nil, err
	}
	if parsed.Flags.Jobs < 1 {
		return BatchFlags{}, nil, fmt.Errorf("--jobs must be at least 1, got %d", parsed.Flags.Jobs)
	}
	flags := BatchFlags{
		EngineFlags: EngineFlags{
			Defs:      parsed.Flags.Defs,
			Gather:    parsed.Flags.Gather,
			Separator: parsed.Flags.Separator,
			Strict:    parsed.Flags.Strict,
		},
		JSON: parsed.Flags.JSON,
		Jobs: parsed.Flags.Jobs,
	}
	argsOut := parsed.Args
	if stdin {
		argsOut = append(argsOut, "-")
	}
	return flags, argsOut, nil
}

func extractStdinArg(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	var found bool
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg == "-" {
			found = true
			continue
		}
		out = append(out, arg)
	}
	return out, found
}

func ParseRepl(args []string) (ReplFlags, []string, error) {
	parsed, err := parseFlags[replFlagsParsed](args)
	if err != nil {
		return ReplFlags{}, nil, err
	}
	flags := ReplFlags{
		EngineFlags: EngineFlags{
			Defs:      parsed.Flags.Defs,
			Gather:    parsed.Flags.Gather,
			Separator: parsed.Flags.Separator,
			Strict:    parsed.Flags.Strict,
		},
		JSON: parsed.Flags.JSON,
	}
	return flags, parsed.Args, nil
}

func ParseDefs(args []string) (DefsFlags, []string, error) {
	parsed, err := parseFlags[defsFlagsParsed](args)
	if err != nil {
		return DefsFlags{}, nil, err
	}
	return DefsFlags{Defs: parsed.Flags.Defs}, parsed.Args, nil
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

// splitArgsForParsing splits args into the leading flags described by
// specs and the rest. The rest starts at "--" (dropped), the first
// positional token, or the first flag specs does not know.
func splitArgsForParsing(args []string, specs map[string]FlagSpec) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args[:i], args[i+1:]
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return args[:i], args[i:]
		}
		name := arg
		if idx := strings.Index(name, "="); idx != -1 {
			name = name[:idx]
		}
		spec, ok := specs[name]
		if !ok {
			return args[:i], args[i:]
		}
		if spec.ConsumesValue && !strings.Contains(arg, "=") {
			i++
		}
	}
	return args, nil
}

func flagSpecsFromStruct(v any) map[string]FlagSpec {
	specs := make(map[string]FlagSpec)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return specs
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		spec := FlagSpec{ConsumesValue: consumesValue(field.Type)}
		specs["--"+name] = spec
		if short := field.Tag.Get("short"); short != "" {
			specs["-"+short] = spec
		}
	}
	return specs
}

func consumesValue(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() != reflect.Bool
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}

func RequireArgsAtMost(subcmd string, args []string, count int) error {
	if len(args) > count {
		return fmt.Errorf("'%s' accepts at most %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
