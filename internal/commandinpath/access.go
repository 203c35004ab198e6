// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandinpath

import (
	"io/fs"

	"github.com/spf13/afero"
)

// AccessFunc returns nil if the file at path may be executed by the current user.
type AccessFunc func(fsys afero.Fs, path string) error

// ExecAccess asks the operating system when fsys is the real filesystem and
// falls back to ModeAccess for any other afero filesystem.
func ExecAccess(fsys afero.Fs, path string) error {
	if _, ok := fsys.(*afero.OsFs); ok {
		return osAccess(path)
	}

	return ModeAccess(fsys, path)
}

// ModeAccess accepts regular files with at least one execute bit set.
func ModeAccess(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return &fs.PathError{Op: "access", Path: path, Err: fs.ErrPermission}
	}

	return nil
}
