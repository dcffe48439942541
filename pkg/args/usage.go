// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"fmt"
	"strings"
)

// Usage returns a one-line synopsis of command, e.g.
//
//	greet NAME [--age|-a AGE] [--loud]
func Usage(command string, s *Set) string {
	parts := []string{command}
	for _, a := range s.required {
		parts = append(parts, placeholder(a))
	}
	for _, o := range s.optional {
		ids := strings.Join(o.Identifiers, "|")
		var part string
		if o.IsFlag() {
			part = "[" + ids + "]"
		} else {
			part = "[" + ids + " " + placeholder(&o.Argument) + "]"
		}
		if o.AllowDuplicates {
			part += "..."
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func placeholder(a *Argument) string {
	name := strings.ToUpper(a.Name)
	switch ar := a.Arity.normalize(); ar {
	case AtLeastOne:
		return name + "..."
	case AllOrDefault:
		return "[" + name + "...]"
	case 1:
		return name
	default:
		return strings.TrimSpace(strings.Repeat(name+" ", int(ar)))
	}
}

// Help returns a multi-line description of command and its arguments.
func Help(command, description string, s *Set) string {
	var b strings.Builder

	b.WriteString(command)
	if description != "" {
		b.WriteString(" - ")
		b.WriteString(description)
	}
	b.WriteString("\n\n")

	b.WriteString("USAGE:\n")
	b.WriteString(fmt.Sprintf("    %s\n", Usage(command, s)))

	if len(s.required) > 0 {
		b.WriteString("\nARGUMENTS:\n")
		for _, a := range s.required {
			b.WriteString(helpLine(placeholder(a), a))
		}
	}

	if len(s.optional) > 0 {
		b.WriteString("\nOPTIONS:\n")
		for _, o := range s.optional {
			label := strings.Join(o.Identifiers, ", ")
			if !o.IsFlag() {
				label += " " + placeholder(&o.Argument)
			}
			b.WriteString(helpLine(label, &o.Argument))
		}
	}
	return b.String()
}

func helpLine(label string, a *Argument) string {
	line := fmt.Sprintf("    %-24s %-8s", label, a.valueType().Name())
	if a.Description != "" {
		line += " " + a.Description
	}
	if a.Arity.normalize() == AllOrDefault && a.Default != nil {
		line += fmt.Sprintf(" (default: %v)", a.Default)
	}
	return strings.TrimRight(line, " ") + "\n"
}
