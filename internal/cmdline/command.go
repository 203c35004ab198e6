// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdline

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a parsed command.
// The zero value is KindInvalid, so a Command that was never classified is
// never mistaken for something runnable.
type Kind int

const (
	// KindInvalid is a command that cannot be run: malformed or not found.
	KindInvalid Kind = iota
	// KindBlank is an empty segment. It does nothing.
	KindBlank
	// KindExternal is a program started as a child process.
	KindExternal
	// KindExit is the exit builtin.
	KindExit
	// KindChangeDir is the cd builtin.
	KindChangeDir
	// KindSetPath is the path builtin.
	KindSetPath
)

// Builtins maps the name of each builtin to its kind.
var Builtins = map[string]Kind{
	"exit": KindExit,
	"cd":   KindChangeDir,
	"path": KindSetPath,
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindBlank:
		return "Blank"
	case KindExternal:
		return "External"
	case KindExit:
		return "Exit"
	case KindChangeDir:
		return "ChangeDir"
	case KindSetPath:
		return "SetPath"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsBuiltin reports whether commands of this kind run inside the shell.
func (k Kind) IsBuiltin() bool {
	return k == KindExit || k == KindChangeDir || k == KindSetPath
}

// Command is one unit of work parsed from a segment of an input line.
type Command struct {
	Kind       Kind     // Classification, never left unset after Parse.
	Args       []string // Program or builtin name followed by its arguments.
	ExePath    string   // Resolved executable, only set for KindExternal.
	OutputFile string   // Redirection target for stdout and stderr, if any.
	Text       string   // The trimmed source segment.
	Err        error    // Why the command is KindInvalid.
}

// Name returns the program or builtin name, or "" for a command without arguments.
func (c *Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}

	return c.Args[0]
}

// String renders the command on one line for debug output.
func (c *Command) String() string {
	sb := strings.Builder{}
	sb.WriteString(c.Kind.String())

	if len(c.Args) > 0 {
		fmt.Fprintf(&sb, " args=%q", c.Args)
	}

	if c.ExePath != "" {
		fmt.Fprintf(&sb, " exe=%q", c.ExePath)
	}

	if c.OutputFile != "" {
		fmt.Fprintf(&sb, " out=%q", c.OutputFile)
	}

	if c.Err != nil {
		fmt.Fprintf(&sb, " err=%q", c.Err.Error())
	}

	return sb.String()
}

// CommandLine is the batch of commands parsed from one input line.
// The commands share the lifetime of the line they were parsed from.
type CommandLine struct {
	Raw      string
	Commands []Command
}

// Len returns the number of commands in the batch.
func (cl *CommandLine) Len() int {
	return len(cl.Commands)
}

// String renders one line per command, prefixed by its index.
func (cl *CommandLine) String() string {
	sb := strings.Builder{}

	for i := range cl.Commands {
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "[%d] %s", i, cl.Commands[i].String())
	}

	return sb.String()
}
