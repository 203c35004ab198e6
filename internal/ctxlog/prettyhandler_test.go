// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errWriteFailed
}

func newRecord(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)

	return r
}

func TestNewPrettyHandler(t *testing.T) {
	handler := NewPrettyHandler(nil)
	require.NotNil(t, handler)
	assert.NotNil(t, handler.h)
	assert.NotNil(t, handler.b)
	assert.NotNil(t, handler.m)
	assert.NotNil(t, handler.writer, "writer should default to stderr")
	assert.False(t, handler.colour)

	handler = NewPrettyHandler(&slog.HandlerOptions{}, WithColour(), WithOutputEmptyAttrs())
	assert.True(t, handler.colour)
	assert.True(t, handler.outputEmptyAttrs)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		record      slog.Record
		opts        []Option
		contains    []string
		notContains []string
	}{
		{
			name:     "message with attributes",
			record:   newRecord(slog.LevelInfo, "command started", slog.String("path", "/bin/ls"), slog.Int("pid", 42)),
			contains: []string{"[03:04:05.006]", "INFO:", "command started", `"path"`, `"/bin/ls"`, `"pid"`, "42"},
		},
		{
			name:        "no attributes",
			record:      newRecord(slog.LevelWarn, "plain"),
			contains:    []string{"WARN:", "plain"},
			notContains: []string{"{"},
		},
		{
			name:     "empty attributes forced",
			record:   newRecord(slog.LevelWarn, "plain"),
			opts:     []Option{WithOutputEmptyAttrs()},
			contains: []string{"plain {}"},
		},
		{
			name:     "colour",
			record:   newRecord(slog.LevelError, "boom"),
			opts:     []Option{WithColour()},
			contains: []string{"\033[31mERROR:\033[0m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			opts := append([]Option{WithDestinationWriter(buf)}, tt.opts...)
			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			require.NoError(t, handler.Handle(context.Background(), tt.record))

			out := buf.String()
			assert.True(t, strings.HasSuffix(out, "\n"))

			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}

			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(&slog.HandlerOptions{}, WithDestinationWriter(buf))

	logger := slog.New(handler).With("label", "ls -l").WithGroup("proc")
	logger.Info("started", "pid", 7)

	out := buf.String()
	assert.Contains(t, out, `"label"`)
	assert.Contains(t, out, `"ls -l"`)
	assert.Contains(t, out, `"proc"`)
	assert.Contains(t, out, `"pid"`)
}

func TestPrettyHandler_ReplaceAttrDropsTime(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(buf))

	require.NoError(t, handler.Handle(context.Background(), newRecord(slog.LevelInfo, "hello")))
	assert.Equal(t, "INFO: hello\n", buf.String())
}

func TestPrettyHandler_WriteError(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{}, WithDestinationWriter(failingWriter{}))

	err := handler.Handle(context.Background(), newRecord(slog.LevelInfo, "hello"))
	require.ErrorIs(t, err, ErrIoWrite)
	require.ErrorIs(t, err, errWriteFailed)
}

func TestSuppressDefaults(t *testing.T) {
	replace := suppressDefaults(nil)

	for _, key := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey} {
		assert.True(t, replace(nil, slog.String(key, "x")).Equal(slog.Attr{}), key)
	}

	a := slog.String("custom", "kept")
	assert.True(t, replace(nil, a).Equal(a))

	upper := suppressDefaults(func(_ []string, a slog.Attr) slog.Attr {
		return slog.String(a.Key, strings.ToUpper(a.Value.String()))
	})
	assert.Equal(t, "KEPT", upper(nil, a).Value.String())
}
