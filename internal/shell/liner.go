// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/peterh/liner"
)

var _ LineReader = (*InteractiveReader)(nil)

// InteractiveReader reads lines from the terminal with editing and history.
type InteractiveReader struct {
	line        *liner.State
	historyFile string
	ctx         context.Context //nolint:containedctx
}

// TerminalSupported reports whether the terminal can be used for line editing.
func TerminalSupported() bool {
	return liner.TerminalSupported()
}

// NewInteractiveReader takes over the terminal. History is loaded from
// historyFile if it is set and saved back to it by Close.
func NewInteractiveReader(ctx context.Context, historyFile string) *InteractiveReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &InteractiveReader{line: line, historyFile: historyFile, ctx: ctx}

	if historyFile == "" {
		return r
	}

	f, err := os.Open(historyFile)
	if err != nil {
		ctxlog.Debug(ctx, "no history loaded", "file", historyFile, "error", err)
		return r
	}

	defer f.Close() //nolint:errcheck

	if n, err := line.ReadHistory(f); err != nil {
		ctxlog.Info(ctx, "error reading history", "file", historyFile, "error", err)
	} else {
		ctxlog.Debug(ctx, "history loaded", "file", historyFile, "entries", n)
	}

	return r
}

// ReadLine prompts for a line. Ctrl-C discards the line being edited and
// returns an empty line. Ctrl-D returns io.EOF.
func (r *InteractiveReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)

	switch {
	case err == nil:
	case errors.Is(err, liner.ErrPromptAborted):
		return "", nil
	case errors.Is(err, io.EOF):
		return "", io.EOF
	default:
		return "", errors.Join(ErrReadLine, err)
	}

	if input != "" {
		r.line.AppendHistory(input)
	}

	return input, nil
}

// Close saves the history and gives the terminal back.
func (r *InteractiveReader) Close() error {
	if r.historyFile != "" {
		if err := r.saveHistory(); err != nil {
			ctxlog.Info(r.ctx, "error writing history", "file", r.historyFile, "error", err)
		}
	}

	return r.line.Close() //nolint:wrapcheck
}

func (r *InteractiveReader) saveHistory() error {
	f, err := os.OpenFile(r.historyFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if _, err := r.line.WriteHistory(f); err != nil {
		_ = f.Close()
		return err //nolint:wrapcheck
	}

	return f.Close() //nolint:wrapcheck
}
