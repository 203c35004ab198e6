// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdline turns one raw input line into a batch of classified commands.
//
// A line is split on '&' into independent segments. Each segment is split once
// on '>' into an argument part and an optional redirection part, both of which
// are tokenized on whitespace. There is no quoting, escaping or expansion.
package cmdline

import (
	"context"
	"errors"
	"strings"

	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
)

const (
	// CommandSeparator separates the commands of a batch.
	CommandSeparator = "&"
	// RedirectMarker separates the arguments from the output file.
	RedirectMarker = ">"
	// MaxArgs is the largest number of arguments, program name included, a command may have.
	MaxArgs = 64
	// whitespace delimits tokens.
	whitespace = " \t\n\r\v\f"
)

var (
	// ErrTooManyArgs is set on a command with more than MaxArgs arguments.
	ErrTooManyArgs = errors.New("too many arguments")
	// ErrRedirectNoTarget is set on a command whose redirection names no file.
	ErrRedirectNoTarget = errors.New("redirection without a target")
	// ErrRedirectTooManyTargets is set on a command whose redirection names more than one file.
	ErrRedirectTooManyTargets = errors.New("redirection with more than one target")
	// ErrRedirectNoCommand is set on a redirection with nothing to redirect.
	ErrRedirectNoCommand = errors.New("redirection without a command")
	// ErrCommandNotFound is set on an external command that is not in the search path.
	ErrCommandNotFound = errors.New("command not found")
)

// Resolver finds the executable for a program name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, bool)
}

// Parse splits line into its commands and classifies each of them.
// External programs are resolved with r while parsing, so the whole batch is
// resolved before any of it runs.
// Parse never fails: problems are reported per command as KindInvalid.
func Parse(ctx context.Context, line string, r Resolver) *CommandLine {
	segments := strings.Split(line, CommandSeparator)
	cl := &CommandLine{
		Raw:      line,
		Commands: make([]Command, 0, len(segments)),
	}

	for _, seg := range segments {
		cl.Commands = append(cl.Commands, parseCommand(ctx, seg, r))
	}

	ctxlog.Debug(ctx, "parsed command line", "commands", cl.Len(), "dump", cl.String())

	return cl
}

func parseCommand(ctx context.Context, seg string, r Resolver) Command {
	cmd := Command{Text: strings.Trim(seg, whitespace)}

	argPart, redirPart, hasRedir := strings.Cut(seg, RedirectMarker)

	args, overflow := tokenize(argPart, MaxArgs)
	cmd.Args = args

	if overflow {
		return invalid(cmd, ErrTooManyArgs)
	}

	if hasRedir {
		targets, extra := tokenize(redirPart, 1)

		switch {
		case len(targets) == 0:
			return invalid(cmd, ErrRedirectNoTarget)
		case extra:
			return invalid(cmd, ErrRedirectTooManyTargets)
		}

		cmd.OutputFile = targets[0]
	}

	if len(cmd.Args) == 0 {
		if hasRedir {
			return invalid(cmd, ErrRedirectNoCommand)
		}

		cmd.Kind = KindBlank

		return cmd
	}

	if kind, ok := Builtins[cmd.Args[0]]; ok {
		cmd.Kind = kind
		return cmd
	}

	exe, ok := r.Resolve(ctx, cmd.Args[0])
	if !ok {
		return invalid(cmd, ErrCommandNotFound)
	}

	cmd.Kind = KindExternal
	cmd.ExePath = exe

	return cmd
}

func invalid(c Command, err error) Command {
	c.Kind = KindInvalid
	c.Err = err
	c.ExePath = ""

	return c
}

// tokenize returns at most limit whitespace separated tokens of src.
// The boolean is true if src holds more than limit tokens.
// Tokens are substrings of src, nothing is copied.
func tokenize(src string, limit int) ([]string, bool) {
	var tokens []string

	s := scanner{src: src}

	for {
		tok, ok := s.next()
		if !ok {
			return tokens, false
		}

		if len(tokens) == limit {
			return tokens, true
		}

		tokens = append(tokens, tok)
	}
}

// scanner walks a string one whitespace separated token at a time.
type scanner struct {
	src string
	pos int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) next() (string, bool) {
	s.skipSpace()

	if s.pos >= len(s.src) {
		return "", false
	}

	start := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) {
		s.pos++
	}

	return s.src[start:s.pos], true
}

func isSpace(b byte) bool {
	return strings.IndexByte(whitespace, b) >= 0
}
