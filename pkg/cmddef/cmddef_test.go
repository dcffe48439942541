// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmddef

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argot/pkg/args"
)

const greetTOML = `
[engine]
validation = "gather-all"
separator = " | "
strict_identifiers = true

[[commands]]
name = "greet"
aliases = ["hi"]

  [[commands.required]]
  name = "name"
  sanitize = "upper"
  matchers = [{ name = "min-length", value = 2, message = "name too short" }]

  [[commands.optional]]
  name = "age"
  identifiers = ["--age", "-a"]
  type = "number"
  arity = 1
  matchers = [{ name = "range", min = 1, max = 120 }]

  [[commands.optional]]
  name = "tags"
  identifiers = ["--tags"]
  arity = "*"
  default = "none"
`

const greetYAML = `
engine:
  validation: gather-all
  separator: " | "
  strict_identifiers: true
commands:
  - name: greet
    aliases: [hi]
    required:
      - name: name
        sanitize: upper
        matchers:
          - {name: min-length, value: 2, message: name too short}
    optional:
      - name: age
        identifiers: ["--age", "-a"]
        type: number
        arity: 1
        matchers:
          - {name: range, min: 1, max: 120}
      - name: tags
        identifiers: ["--tags"]
        arity: "*"
        default: none
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func loadCatalog(t *testing.T, path string) *Catalog {
	t.Helper()
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	cat, err := cfg.Build(opts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return cat
}

func TestLoadFormats(t *testing.T) {
	for _, tt := range []struct {
		file    string
		content string
	}{
		{"defs.toml", greetTOML},
		{"defs.yaml", greetYAML},
		{"defs.yml", greetYAML},
	} {
		t.Run(tt.file, func(t *testing.T) {
			cat := loadCatalog(t, writeFile(t, tt.file, tt.content))

			want := args.Options{Validation: args.GatherAll, Separator: " | ", StrictIdentifiers: true}
			if got := cat.Options(); got.Validation != want.Validation || got.Separator != want.Separator || got.StrictIdentifiers != want.StrictIdentifiers {
				t.Errorf("Options() = %+v, want %+v", got, want)
			}

			cmd, ns, err := cat.Evaluate([]string{"hi", "-a", "42", "bob"})
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if cmd.Name != "greet" {
				t.Errorf("routed to %s, want greet", cmd.Name)
			}
			got := map[string]any{}
			for _, name := range ns.Names() {
				e, _ := ns.Get(name)
				got[name] = e.Values
			}
			wantNS := map[string]any{
				"name": []any{"BOB"},
				"age":  []any{42.0},
				"tags": "none",
			}
			if diff := cmp.Diff(wantNS, got); diff != "" {
				t.Errorf("namespace mismatch (-want +got):\n%s", diff)
			}

			_, _, err = cat.Evaluate([]string{"greet", "b", "--age", "0"})
			if err == nil || err.Error() != "0 is not between 1 and 120 | name too short" {
				t.Errorf("Evaluate() error = %v, want gathered validation failures", err)
			}

			_, _, err = cat.Evaluate([]string{"greet", "bob", "--nope"})
			if !errors.Is(err, args.ErrUnknownIdentifier) {
				t.Errorf("Evaluate() error = %v, want ErrUnknownIdentifier", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"extension", "defs.json", `{}`, "unsupported definition file"},
		{"unknown toml key", "defs.toml", "[engine]\nverbose = true\n", "unknown key engine.verbose"},
		{"unknown yaml key", "defs.yaml", "engine:\n  verbose: true\n", "verbose"},
		{"bad arity", "defs.toml", "[[commands]]\nname = \"x\"\n[[commands.required]]\nname = \"a\"\narity = \"lots\"\n", `invalid arity "lots"`},
		{"zero arity", "defs.yaml", "commands:\n  - name: x\n    required:\n      - {name: a, arity: 0}\n", `invalid arity "0"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown type", `
[[commands]]
name = "x"
[[commands.required]]
name = "a"
type = "complex"
`, `unknown type "complex"`},
		{"unknown matcher", `
[[commands]]
name = "x"
[[commands.required]]
name = "a"
matchers = [{ name = "shiny" }]
`, `unknown matcher "shiny"`},
		{"missing matcher parameter", `
[[commands]]
name = "x"
[[commands.required]]
name = "a"
matchers = [{ name = "range", min = 1 }]
`, "matcher range requires max"},
		{"bad default", `
[[commands]]
name = "x"
[[commands.optional]]
name = "n"
identifiers = ["-n"]
type = "number"
arity = "*"
default = "many"
`, "argument n: default"},
		{"duplicate identifier", `
[[commands]]
name = "x"
[[commands.optional]]
name = "a"
identifiers = ["-a"]
[[commands.optional]]
name = "b"
identifiers = ["-a"]
`, "identifier -a is already in use"},
		{"alias clash", `
[[commands]]
name = "x"
[[commands]]
name = "y"
aliases = ["x"]
`, `command name "x" is used by both x and y`},
		{"unknown sanitizer", `
[[commands]]
name = "x"
[[commands.required]]
name = "a"
sanitize = "rot13"
`, `unknown sanitizer "rot13"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode([]byte(tt.content), TOML)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			_, err = cfg.Build(args.Options{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Build() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	cfg, err := Example()
	if err != nil {
		t.Fatalf("Example() error = %v", err)
	}
	cat, err := cfg.Build(args.Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, _, err := cat.Route(nil); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Route(nil) error = %v, want ErrNoCommand", err)
	}
	if _, _, err := cat.Route([]string{"dance"}); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Route(dance) error = %v, want ErrUnknownCommand", err)
	}
	cmd, rest, err := cat.Route([]string{"cp", "a", "b"})
	if err != nil || cmd.Name != "copy" {
		t.Fatalf("Route(cp) = %v, %v", cmd, err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, rest); diff != "" {
		t.Errorf("Route(cp) rest mismatch (-want +got):\n%s", diff)
	}
	var names []string
	for _, c := range cat.Commands() {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"greet", "copy", "release"}, names); diff != "" {
		t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
	}
}

func TestExampleCatalog(t *testing.T) {
	cfg, err := Example()
	if err != nil {
		t.Fatalf("Example() error = %v", err)
	}
	cat, err := cfg.Build(args.Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	_, ns, err := cat.Evaluate([]string{"copy", "a.txt", "b.txt", "--to", "out", "--mode", "link"})
	if err != nil {
		t.Fatalf("Evaluate(copy) error = %v", err)
	}
	if diff := cmp.Diff([]any{"a.txt", "b.txt"}, ns.Values("sources")); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
	if v, _ := ns.First("mode"); v != "link" {
		t.Errorf("mode = %v, want link", v)
	}

	_, ns, err = cat.Evaluate([]string{"release", "1.2.3", "-l", "a", "-l", "b"})
	if err != nil {
		t.Fatalf("Evaluate(release) error = %v", err)
	}
	if v, _ := ns.First("timeout"); v != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", v)
	}
	if diff := cmp.Diff([]any{"a", "b"}, ns.Values("label")); diff != "" {
		t.Errorf("label mismatch (-want +got):\n%s", diff)
	}

	greet, _ := cat.Lookup("greet")
	if got, want := greet.Usage(), "greet NAME [--age|-a AGE] [--loud]"; got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
	if !strings.Contains(greet.Help(), "who to greet") {
		t.Errorf("Help() = %q, want argument description", greet.Help())
	}
}

func TestEnv(t *testing.T) {
	env := map[string]string{
		EnvDefs:       "/etc/argot.toml",
		EnvValidation: "gather-all",
		EnvSeparator:  ", ",
	}
	getenv := func(k string) string { return env[k] }

	if got := DefsPath("", getenv); got != "/etc/argot.toml" {
		t.Errorf("DefsPath(\"\") = %q, want env value", got)
	}
	if got := DefsPath("local.yaml", getenv); got != "local.yaml" {
		t.Errorf("DefsPath(local.yaml) = %q, want flag value", got)
	}

	var opts args.Options
	if err := ApplyEnv(&opts, getenv); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if opts.Validation != args.GatherAll || opts.Separator != ", " {
		t.Errorf("ApplyEnv() = %+v", opts)
	}

	env[EnvValidation] = "never"
	if err := ApplyEnv(&opts, getenv); err == nil || !strings.Contains(err.Error(), EnvValidation) {
		t.Errorf("ApplyEnv() error = %v, want it to name %s", err, EnvValidation)
	}
}

func TestMatcherNamesBuild(t *testing.T) {
	one := 1.0
	for _, name := range MatcherNames() {
		mc := MatcherConfig{Name: name, Value: &one, Min: &one, Max: &one, Choices: []string{"a"}, Pattern: "a", Time: "2020-01-01"}
		m, err := mc.matcher()
		if err != nil {
			t.Errorf("matcher(%s) error = %v", name, err)
			continue
		}
		if m.Name != name {
			t.Errorf("matcher(%s).Name = %q", name, m.Name)
		}
	}
	if diff := cmp.Diff([]string{"lower", "trim", "upper"}, SanitizerNames()); diff != "" {
		t.Errorf("SanitizerNames() mismatch (-want +got):\n%s", diff)
	}
}
