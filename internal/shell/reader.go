// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrReadLine is returned when input cannot be read.
var ErrReadLine = errors.New("failed to read line")

// LineReader supplies one input line at a time.
// ReadLine returns io.EOF when the input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

var _ LineReader = (*BufferedReader)(nil)

// BufferedReader reads lines from any reader, such as a batch file or a pipe.
type BufferedReader struct {
	r      *bufio.Reader
	c      io.Closer
	prompt io.Writer
}

// NewBufferedReader reads lines from r. If promptTo is not nil the prompt is
// written to it before every line.
// If r is an io.Closer it is closed by Close.
func NewBufferedReader(r io.Reader, promptTo io.Writer) *BufferedReader {
	br := &BufferedReader{
		r:      bufio.NewReader(r),
		prompt: promptTo,
	}

	if c, ok := r.(io.Closer); ok {
		br.c = c
	}

	return br
}

// ReadLine returns the next line without its line terminator.
// A final line without a newline is still returned.
func (b *BufferedReader) ReadLine(prompt string) (string, error) {
	if b.prompt != nil {
		if _, err := io.WriteString(b.prompt, prompt); err != nil {
			return "", errors.Join(ErrReadLine, err)
		}
	}

	line, err := b.r.ReadString('\n')

	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", io.EOF
	default:
		return "", fmt.Errorf("%w: %w", ErrReadLine, err)
	}

	return strings.TrimSuffix(line, "\n"), nil
}

// Close closes the underlying reader if it can be closed.
func (b *BufferedReader) Close() error {
	if b.c == nil {
		return nil
	}

	return b.c.Close() //nolint:wrapcheck
}
