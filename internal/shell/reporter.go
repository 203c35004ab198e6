// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"io"

	"github.com/matt-FFFFFF/utcsh/internal/builtin"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/runbatch"
)

// ErrorMessage is written once for every failed command.
const ErrorMessage = "An error has occurred\n"

// ShortWriteExitCode is the exit status used when ErrorMessage cannot be written in full.
const ShortWriteExitCode = 2

var _ runbatch.Reporter = (*ErrorReporter)(nil)

// ErrorReporter writes ErrorMessage for every reported error.
type ErrorReporter struct {
	W    io.Writer
	Exit func(int) // Called on a short write, builtin.ExitFunc if nil.
}

// Report writes ErrorMessage in a single write. The cause is only logged.
func (e *ErrorReporter) Report(ctx context.Context, err error) {
	ctxlog.Info(ctx, "command failed", "error", err)

	n, werr := io.WriteString(e.W, ErrorMessage)
	if n == len(ErrorMessage) {
		return
	}

	ctxlog.Error(ctx, "short write of error message", "written", n, "error", werr)

	exit := e.Exit
	if exit == nil {
		exit = builtin.ExitFunc
	}

	exit(ShortWriteExitCode)
}
