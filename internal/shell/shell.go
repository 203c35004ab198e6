// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell is the read, parse and execute loop.
package shell

import (
	"context"
	"errors"
	"io"

	"github.com/matt-FFFFFF/utcsh/internal/cmdline"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/runbatch"
)

// ErrNoInput is returned when the input ended before a single line was read.
var ErrNoInput = errors.New("no input")

// Shell runs every input line as a batch of commands.
type Shell struct {
	Reader     LineReader
	Prompt     string
	Resolver   cmdline.Resolver
	Dispatcher runbatch.Dispatcher
	Reporter   runbatch.Reporter
	Trace      io.Writer // Receives the results of every line when set.
}

// Run reads and executes lines until the input is exhausted.
// It returns the number of lines processed.
func (s *Shell) Run(ctx context.Context) (int, error) {
	logger := ctxlog.Logger(ctx)
	lines := 0

	for {
		line, err := s.Reader.ReadLine(s.Prompt)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return lines, err
		}

		lines++

		logger.Debug("read line", "number", lines, "line", line)

		s.Execute(ctx, line)
	}

	logger.Debug("end of input", "lines", lines)

	if lines == 0 {
		return 0, ErrNoInput
	}

	return lines, nil
}

// Execute parses line and runs its commands.
func (s *Shell) Execute(ctx context.Context, line string) runbatch.Results {
	cl := cmdline.Parse(ctx, line, s.Resolver)
	results := runbatch.NewBatch(cl, s.Dispatcher, s.Reporter).Run(ctx)

	if s.Trace != nil {
		if err := results.Write(s.Trace); err != nil {
			ctxlog.Info(ctx, "error writing trace", "error", err)
		}
	}

	return results
}
