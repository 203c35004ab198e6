// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger for the shell.
// It uses the slog package for structured logging and supports different log levels.
//
// The default is a pretty handler writing to standard error, so log lines never
// end up in the output of a command or in a redirection target.
// The level comes from the UTCSH_LOG_LEVEL environment variable and can be
// overridden on the command line.
package ctxlog
