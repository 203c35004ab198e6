// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/utcsh/internal/builtin"
	"github.com/matt-FFFFFF/utcsh/internal/commandinpath"
	"github.com/matt-FFFFFF/utcsh/internal/config"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/shell"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	configFlag      = "config"
	pathFlag        = "path"
	promptFlag      = "prompt"
	traceFlag       = "trace"
	logLevelFlag    = "log-level"
	logFormatFlag   = "log-format"
	verboseFlag     = "verbose"
	logFormatPretty = "pretty"
	logFormatJSON   = "json"
)

// ErrUnknownLogFormat is returned for a --log-format other than pretty or json.
var ErrUnknownLogFormat = errors.New("unknown log format, want pretty or json")

// cliExitStr is what the user sees when utcsh cannot start or read any input.
var cliExitStr = strings.TrimSuffix(shell.ErrorMessage, "\n")

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage: "Load settings from a YAML or HCL file. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringSliceFlag{
			Name:  pathFlag,
			Usage: "Set the initial search path. Specify multiple times for multiple directories.",
		},
		&cli.StringFlag{
			Name:     promptFlag,
			Usage:    "Set the interactive prompt",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        traceFlag,
			Aliases:     []string{"t"},
			Usage:       "Print the result of every command to stderr after each line",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     logLevelFlag,
			Usage:    "Set the log level: DEBUG, INFO, WARN or ERROR. Overrides " + ctxlog.LogLevelEnvVar,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        verboseFlag,
			Aliases:     []string{"v"},
			Usage:       "Log at INFO level, including errors found while scanning the search path",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     logFormatFlag,
			Usage:    "Set the log format: pretty or json",
			Value:    logFormatPretty,
			OnlyOnce: true,
		},
	}
}

// beforeFunc installs the logger selected by the flags.
func beforeFunc(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var logger *slog.Logger

	switch f := cmd.String(logFormatFlag); f {
	case logFormatPretty:
		logger = ctxlog.DefaultLogger
	case logFormatJSON:
		logger = ctxlog.JSONLogger
	default:
		return ctx, fmt.Errorf("%w: %q", ErrUnknownLogFormat, f)
	}

	if cmd.IsSet(logLevelFlag) {
		lvl, err := ctxlog.ParseLevel(cmd.String(logLevelFlag))
		if err != nil {
			return ctx, err //nolint:wrapcheck
		}

		ctxlog.LevelVar.Set(lvl)
	}

	if cmd.Bool(verboseFlag) && ctxlog.LevelVar.Level() > slog.LevelInfo {
		ctxlog.LevelVar.Set(slog.LevelInfo)
	}

	return ctxlog.New(ctx, logger), nil
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("starting shell")

	if cmd.Args().Len() > 1 {
		logger.Debug("expected at most one batch file", "args", cmd.Args().Slice())
		return cli.Exit(cliExitStr, 1)
	}

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		logger.Debug(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	paths, err := cfg.SearchPath()
	if err != nil {
		logger.Debug(fmt.Sprintf("Invalid search path: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	input, err := newReader(ctx, cmd.Args().First(), cfg.HistoryFile)
	if err != nil {
		logger.Debug(fmt.Sprintf("Failed to open input: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	reader := &onceCloser{LineReader: input}
	defer reader.Close() //nolint:errcheck

	// Leaving through exit must still restore the terminal and save history.
	exit := closeThenExit(ctx, reader, builtin.ExitFunc)

	dispatcher := builtin.New(paths)
	dispatcher.Exit = exit

	sh := &shell.Shell{
		Reader:     reader,
		Prompt:     cfg.Prompt,
		Resolver:   commandinpath.New(paths),
		Dispatcher: dispatcher,
		Reporter:   &shell.ErrorReporter{W: cmd.Root().ErrWriter, Exit: exit},
	}

	if cfg.Trace {
		sh.Trace = cmd.Root().ErrWriter
	}

	lines, err := sh.Run(ctx)
	if err != nil {
		logger.Debug(fmt.Sprintf("Shell stopped: %s", err.Error()), "lines", lines)
		return cli.Exit(cliExitStr, 1)
	}

	logger.Debug("end of input", "lines", lines)

	return nil
}

// loadConfig merges the config file and the flags over the defaults.
func loadConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()

	if src := cmd.String(configFlag); src != "" {
		var err error

		cfg, err = config.Load(ctx, src)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	if cmd.IsSet(pathFlag) {
		cfg.Path = cmd.StringSlice(pathFlag)
	}

	if cmd.IsSet(promptFlag) {
		cfg.Prompt = cmd.String(promptFlag)
	}

	if cmd.IsSet(traceFlag) {
		cfg.Trace = cmd.Bool(traceFlag)
	}

	return cfg, cfg.Validate() //nolint:wrapcheck
}

// onceCloser closes its reader at most once.
type onceCloser struct {
	shell.LineReader
	once sync.Once
	err  error
}

func (o *onceCloser) Close() error {
	o.once.Do(func() {
		o.err = o.LineReader.Close()
	})

	return o.err
}

// closeThenExit returns an exit function that closes c before calling exit.
func closeThenExit(ctx context.Context, c io.Closer, exit func(int)) func(int) {
	return func(code int) {
		if err := c.Close(); err != nil {
			ctxlog.Debug(ctx, "error closing input before exit", "error", err)
		}

		exit(code)
	}
}

// newReader reads the batch file if one is named, otherwise standard input,
// with line editing when it is a terminal.
func newReader(ctx context.Context, batchFile, historyFile string) (shell.LineReader, error) {
	if batchFile != "" {
		f, err := os.Open(batchFile)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return shell.NewBufferedReader(f, nil), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) && shell.TerminalSupported() {
		ctxlog.Debug(ctx, "interactive session")
		return shell.NewInteractiveReader(ctx, historyFile), nil
	}

	return shell.NewBufferedReader(os.Stdin, nil), nil
}
