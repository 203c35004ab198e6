// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builtin runs the commands that the shell executes itself:
// exit, cd and path.
package builtin

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/utcsh/internal/cmdline"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/searchpath"
)

var (
	// ErrExitArgs is returned when exit is given any argument.
	ErrExitArgs = errors.New("exit takes no arguments")
	// ErrChdirArgs is returned when cd is not given exactly one directory.
	ErrChdirArgs = errors.New("cd takes exactly one argument")
	// ErrChdir is returned when the working directory could not be changed.
	ErrChdir = errors.New("could not change directory")
	// ErrNotBuiltin is returned when Dispatch is given a command that is not a builtin.
	ErrNotBuiltin = errors.New("not a builtin command")
)

// ExitFunc terminates the process. Tests replace it.
var ExitFunc = os.Exit

// Dispatcher runs builtin commands against the shell's state.
type Dispatcher struct {
	Paths *searchpath.List // The list replaced by the path builtin.
	Exit  func(int)        // Called by the exit builtin, ExitFunc if nil.
}

// New returns a dispatcher that edits paths.
func New(paths *searchpath.List) *Dispatcher {
	return &Dispatcher{Paths: paths}
}

// Dispatch runs cmd, which must be one of the builtin kinds.
// A successful exit never returns.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd *cmdline.Command) error {
	logger := ctxlog.Logger(ctx).With("builtin", cmd.Name())

	switch cmd.Kind {
	case cmdline.KindExit:
		if len(cmd.Args) != 1 {
			return ErrExitArgs
		}

		logger.Debug("exiting")

		exit := d.Exit
		if exit == nil {
			exit = ExitFunc
		}

		exit(0)

		return nil

	case cmdline.KindChangeDir:
		if len(cmd.Args) != 2 { //nolint:mnd
			return ErrChdirArgs
		}

		if err := os.Chdir(cmd.Args[1]); err != nil {
			return errors.Join(ErrChdir, err)
		}

		logger.Debug("changed directory", "dir", cmd.Args[1])

		return nil

	case cmdline.KindSetPath:
		if err := d.Paths.Replace(cmd.Args[1:]); err != nil {
			logger.Debug("search path replaced with errors", "error", err)
		}

		logger.Debug("search path replaced", "path", d.Paths.String())

		return nil
	}

	return fmt.Errorf("%w: %s", ErrNotBuiltin, cmd.Kind)
}
