// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package commandinpath

import (
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

func osAccess(path string) error {
	if err := unix.Access(path, unix.X_OK); err != nil {
		return &fs.PathError{Op: "access", Path: path, Err: err}
	}

	// access(2) succeeds on searchable directories, which cannot be spawned.
	info, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if info.IsDir() {
		return &fs.PathError{Op: "access", Path: path, Err: fs.ErrPermission}
	}

	return nil
}
