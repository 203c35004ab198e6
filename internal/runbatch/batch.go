// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/utcsh/internal/cmdline"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
)

// ErrInvalidCommand is recorded for a command that could not be parsed or resolved.
var ErrInvalidCommand = errors.New("invalid command")

// Batch runs the commands of one input line.
type Batch struct {
	Commands   []cmdline.Command
	Dispatcher Dispatcher // Runs the builtins.
	Reporter   Reporter   // Receives every failed command once.
	Stdout     *os.File   // Shell output handed to unredirected children, os.Stdout if nil.
	Stderr     *os.File   // Shell error output handed to unredirected children, os.Stderr if nil.
}

// NewBatch returns a batch for the commands of cl.
func NewBatch(cl *cmdline.CommandLine, d Dispatcher, r Reporter) *Batch {
	return &Batch{
		Commands:   cl.Commands,
		Dispatcher: d,
		Reporter:   r,
	}
}

// Run launches every command in order, then waits for them in the same order.
// It returns one Result per command.
func (b *Batch) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).With("runnableType", "Batch")

	results := make(Results, len(b.Commands))
	procs := make([]*Process, len(b.Commands))

	logger.Debug("launch phase", "commands", len(b.Commands))

	for i := range b.Commands {
		results[i], procs[i] = b.launch(ctx, &b.Commands[i])
	}

	logger.Debug("wait phase")

	for i, res := range results {
		switch {
		case procs[i] != nil:
			code, err := procs[i].Wait(ctx)
			res.ExitCode = code

			if err != nil {
				logger.Info("wait failed", "label", res.Label, "error", err)
				res.Error = err
				res.Status = ResultStatusError
			}

		case res.Status == ResultStatusError:
			report(ctx, b.Reporter, res.Error)
		}
	}

	return results
}

func (b *Batch) launch(ctx context.Context, cmd *cmdline.Command) (*Result, *Process) {
	res := &Result{
		Label:  cmd.Text,
		Kind:   cmd.Kind,
		Status: ResultStatusSuccess,
	}

	switch {
	case cmd.Kind == cmdline.KindExternal:
		oc := &OSCommand{
			Label:      cmd.Text,
			Path:       cmd.ExePath,
			Args:       cmd.Args,
			OutputFile: cmd.OutputFile,
			Stdout:     b.Stdout,
			Stderr:     b.Stderr,
			Reporter:   b.Reporter,
		}

		ps, err := oc.Start(ctx)
		if err != nil {
			res.fail(err)
			return res, nil
		}

		res.Pid = ps.Pid

		return res, ps

	case cmd.Kind.IsBuiltin():
		if b.Dispatcher == nil {
			res.fail(errors.New("no dispatcher for builtin commands")) //nolint:err113
			return res, nil
		}

		if err := b.Dispatcher.Dispatch(ctx, cmd); err != nil {
			res.fail(err)
		}

	case cmd.Kind == cmdline.KindBlank:
		res.Status = ResultStatusIgnored

	default:
		res.fail(errors.Join(ErrInvalidCommand, cmd.Err))
	}

	return res, nil
}

func (r *Result) fail(err error) {
	r.Error = err
	r.Status = ResultStatusError
}
