// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath resolves a bare program name to the full path of an
// executable by scanning the directories of a search-path list.
package commandinpath

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/searchpath"
	"github.com/spf13/afero"
)

// Resolver looks up executables in the directories of a search-path list.
type Resolver struct {
	Paths  *searchpath.List // The directories to scan, in order.
	Fs     afero.Fs         // The filesystem directories are read from.
	Access AccessFunc       // Reports whether a file may be executed.
}

// New creates a resolver over the real filesystem.
func New(paths *searchpath.List) *Resolver {
	return &Resolver{
		Paths:  paths,
		Fs:     afero.NewOsFs(),
		Access: ExecAccess,
	}
}

// Resolve returns the fully qualified path of the executable called name.
//
// A name starting with a slash is returned unchanged without checking that it
// exists; a bad absolute path surfaces when the process is started.
// Otherwise each directory of the search path is listed in order and the
// first entry called name that the current user may execute wins.
// Scanning stops at the first empty entry or after searchpath.MaxEntries
// directories.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.HasPrefix(name, "/") {
		return name, true
	}

	for i, dir := range r.Paths.Entries() {
		if dir == "" || i >= searchpath.MaxEntries {
			break
		}

		if p, ok := r.findInDir(ctx, dir, name); ok {
			ctxlog.Debug(ctx, "resolved command", "name", name, "path", p)
			return p, true
		}
	}

	ctxlog.Debug(ctx, "command not found in search path", "name", name, "path", r.Paths.String())

	return "", false
}

func (r *Resolver) findInDir(ctx context.Context, dir, name string) (string, bool) {
	d, err := r.fs().Open(dir)
	if err != nil {
		report(ctx, dir, err)
		return "", false
	}

	defer d.Close() //nolint:errcheck

	// Readdirnames returns whatever it managed to read alongside the error.
	names, err := d.Readdirnames(-1)
	if err != nil {
		report(ctx, dir, err)
	}

	access := r.Access
	if access == nil {
		access = ExecAccess
	}

	for _, n := range names {
		if n != name {
			continue
		}

		full := filepath.Join(dir, n)
		if err := access(r.fs(), full); err != nil {
			report(ctx, full, err)
			continue
		}

		return full, true
	}

	return "", false
}

func (r *Resolver) fs() afero.Fs {
	if r.Fs == nil {
		r.Fs = afero.NewOsFs()
	}

	return r.Fs
}

// IsBenign reports whether err is an expected lookup failure: the entry is
// missing, not a directory or not accessible to the current user.
func IsBenign(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR)
}

func report(ctx context.Context, path string, err error) {
	if IsBenign(err) {
		ctxlog.Debug(ctx, "skipping search path entry", "path", path, "error", err)
		return
	}

	ctxlog.Info(ctx, "error while scanning search path", "path", path, "error", err)
}
