// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the utcsh command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/utcsh"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// newRootCmd returns the root command for the CLI.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "utcsh",
		Description: `utcsh is a small command interpreter.
Each input line holds commands separated by '&', which run concurrently.
A command may end with '> file' to send its output and errors to file.
The builtins are exit, cd and path.

Without a batch file utcsh reads from standard input, with line editing when
standard input is a terminal. The config file may be a local path or any
source understood by Hashicorp's go-getter, see https://github.com/hashicorp/go-getter.`,
		Usage:     "utcsh [batch-file]",
		ArgsUsage: "[batch-file]",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Version: fmt.Sprintf("%s (commit: %s)", utcsh.Version, utcsh.Commit),
		Flags:   flags(),
		Before:  beforeFunc,
		Action:  actionFunc,
	}
}

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	err := newRootCmd().Run(ctx, os.Args) // Exit codes are handled by cli framework
	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
