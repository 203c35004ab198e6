// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
)

// OutputFileMode is the permission used when a redirection target is created.
const OutputFileMode os.FileMode = 0o644

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrOpenOutputFile is reported when a redirection target could not be opened.
	// The process is still started, writing to the shell's own output.
	ErrOpenOutputFile = errors.New("could not open output file")
	// ErrWaitProcess is recorded when waiting for a child fails.
	ErrWaitProcess = errors.New("could not wait for process")
)

// OSCommand starts one external program.
type OSCommand struct {
	Label      string   // Label used in logs and traces.
	Path       string   // Resolved executable.
	Args       []string // Argument vector, program name included.
	OutputFile string   // Receives stdout and stderr when set.
	Stdout     *os.File // Output used without redirection, os.Stdout if nil.
	Stderr     *os.File // Error output used without redirection, os.Stderr if nil.
	Reporter   Reporter // Told at once when the output file cannot be opened.
}

// Process is a started child.
type Process struct {
	Pid   int
	Label string
	ps    *os.Process
}

// Start spawns the program and returns without waiting for it.
// The child reads from the null device and runs in the current working
// directory with the shell's environment.
func (c *OSCommand) Start(ctx context.Context) (*Process, error) {
	logger := ctxlog.Logger(ctx).
		With("runnableType", "OSCommand").
		With("label", c.Label)

	logger.Debug("command info", "path", c.Path, "args", c.Args, "outputFile", c.OutputFile)

	devNull, err := os.OpenFile(os.DevNull, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	defer devNull.Close() //nolint:errcheck

	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	if c.OutputFile != "" {
		f, err := os.OpenFile(c.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputFileMode)
		if err != nil {
			logger.Debug("output file not opened, using shell output", "error", err)
			report(ctx, c.Reporter, errors.Join(ErrOpenOutputFile, err))
		} else {
			defer f.Close() //nolint:errcheck

			stdout, stderr = f, f
		}
	}

	logger.Debug("starting process")

	ps, err := os.StartProcess(c.Path, c.Args, &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{devNull, stdout, stderr},
	})
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	return &Process{Pid: ps.Pid, Label: c.Label, ps: ps}, nil
}

// Wait blocks until the child exits and returns its exit code.
// The exit code is -1 if the child did not exit normally.
func (p *Process) Wait(ctx context.Context) (int, error) {
	logger := ctxlog.Logger(ctx).With("label", p.Label).With("pid", p.Pid)

	logger.Debug("waiting for process to finish")

	state, err := p.ps.Wait()
	if err != nil {
		return -1, errors.Join(ErrWaitProcess, err)
	}

	logger.Debug("process finished", "exitCode", state.ExitCode(), "state", state.String())

	return state.ExitCode(), nil
}
