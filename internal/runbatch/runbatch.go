// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"

	"github.com/matt-FFFFFF/utcsh/internal/cmdline"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
)

// Reporter receives every command-level failure.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, err error)

// Report calls f(ctx, err).
func (f ReporterFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// Dispatcher runs builtin commands.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd *cmdline.Command) error
}

// logOnly stands in for a missing Reporter.
var logOnly = ReporterFunc(func(ctx context.Context, err error) {
	ctxlog.Debug(ctx, "command failed", "error", err)
})

// report sends err to r, or only logs it when r is nil.
func report(ctx context.Context, r Reporter, err error) {
	if r == nil {
		r = logOnly
	}

	r.Report(ctx, err)
}
