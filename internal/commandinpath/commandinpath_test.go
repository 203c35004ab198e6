// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandinpath

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/searchpath"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskOnFire = errors.New("disk on fire")

// brokenDirFs fails to open one directory with a non-benign error.
type brokenDirFs struct {
	afero.Fs
	dir string
}

func (b *brokenDirFs) Open(name string) (afero.File, error) {
	if name == b.dir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errDiskOnFire}
	}

	return b.Fs.Open(name) //nolint:wrapcheck
}

func newMemFs(t *testing.T) afero.Fs {
	t.Helper()

	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/bin", 0o755))
	require.NoError(t, memFs.MkdirAll("/usr/bin", 0o755))
	require.NoError(t, memFs.MkdirAll("/opt/tools/ls", 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/bin/ls", []byte("#!"), 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/usr/bin/ls", []byte("#!"), 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/usr/bin/env", []byte("#!"), 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/usr/bin/readme", []byte("text"), 0o644))
	require.NoError(t, afero.WriteFile(memFs, "/bin/readme", []byte("#!"), 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/bin/notadir", []byte("#!"), 0o755))

	return memFs
}

func debugContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.New(context.Background(), logger)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		command  string
		wantPath string
		wantOk   bool
	}{
		{
			name:     "found in first directory",
			paths:    []string{"/bin", "/usr/bin"},
			command:  "ls",
			wantPath: "/bin/ls",
			wantOk:   true,
		},
		{
			name:     "search order wins",
			paths:    []string{"/usr/bin", "/bin"},
			command:  "ls",
			wantPath: "/usr/bin/ls",
			wantOk:   true,
		},
		{
			name:     "found in later directory",
			paths:    []string{"/bin", "/usr/bin"},
			command:  "env",
			wantPath: "/usr/bin/env",
			wantOk:   true,
		},
		{
			name:     "non executable skipped in favour of later match",
			paths:    []string{"/usr/bin", "/bin"},
			command:  "readme",
			wantPath: "/bin/readme",
			wantOk:   true,
		},
		{
			name:    "non executable only",
			paths:   []string{"/usr/bin"},
			command: "readme",
		},
		{
			name:    "directory with matching name is not executable",
			paths:   []string{"/opt/tools"},
			command: "ls",
		},
		{
			name:     "missing and non-directory entries are skipped",
			paths:    []string{"/does/not/exist", "/bin/notadir", "/usr/bin"},
			command:  "env",
			wantPath: "/usr/bin/env",
			wantOk:   true,
		},
		{
			name:    "empty entry terminates the scan",
			paths:   []string{"/bin", "", "/usr/bin"},
			command: "env",
		},
		{
			name:    "empty search path",
			paths:   []string{},
			command: "ls",
		},
		{
			name:     "absolute path returned unchanged",
			paths:    []string{},
			command:  "/no/such/program",
			wantPath: "/no/such/program",
			wantOk:   true,
		},
		{
			name:    "empty name",
			paths:   []string{"/bin"},
			command: "",
		},
		{
			name:    "relative path with slash is not a directory entry",
			paths:   []string{"/"},
			command: "bin/ls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := searchpath.New(tt.paths...)
			require.NoError(t, err)

			r := &Resolver{Paths: paths, Fs: newMemFs(t), Access: ModeAccess}

			got, ok := r.Resolve(context.Background(), tt.command)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantPath, got)
		})
	}
}

func TestResolve_ReplacedPathIsTotal(t *testing.T) {
	paths := searchpath.Default()
	r := &Resolver{Paths: paths, Fs: newMemFs(t), Access: ModeAccess}

	_, ok := r.Resolve(context.Background(), "ls")
	require.True(t, ok)

	require.NoError(t, paths.Replace([]string{"/tmp/bin"}))

	_, ok = r.Resolve(context.Background(), "ls")
	assert.False(t, ok, "old default directory must no longer be searched")
}

func TestResolve_ErrorPartition(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := debugContext(buf)

	paths, err := searchpath.New("/broken", "/nope", "/usr/bin")
	require.NoError(t, err)

	r := &Resolver{
		Paths:  paths,
		Fs:     &brokenDirFs{Fs: newMemFs(t), dir: "/broken"},
		Access: ModeAccess,
	}

	got, ok := r.Resolve(ctx, "env")
	require.True(t, ok, "a failing directory must not abort the search")
	assert.Equal(t, "/usr/bin/env", got)

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"error while scanning search path\" path=/broken")
	assert.Contains(t, out, "level=DEBUG msg=\"skipping search path entry\" path=/nope")
}

func TestIsBenign(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, true},
		{"not exist", &fs.PathError{Op: "open", Path: "/x", Err: syscall.ENOENT}, true},
		{"not a directory", &fs.PathError{Op: "open", Path: "/x", Err: syscall.ENOTDIR}, true},
		{"fs sentinel", fs.ErrNotExist, true},
		{"bad file descriptor", &fs.PathError{Op: "readdirent", Path: "/x", Err: syscall.EBADF}, false},
		{"other", errDiskOnFire, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBenign(tt.err))
		})
	}
}

func TestResolve_RealFilesystem(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute permission bits are not meaningful on windows")
	}

	tempDir := t.TempDir()
	exe := filepath.Join(tempDir, "mockcommand")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	plain := filepath.Join(tempDir, "mockdata")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0o644))

	paths, err := searchpath.New("/non/existent/path", tempDir)
	require.NoError(t, err)

	r := New(paths)

	got, ok := r.Resolve(context.Background(), "mockcommand")
	require.True(t, ok)
	assert.Equal(t, exe, got)

	_, ok = r.Resolve(context.Background(), "mockdata")
	assert.False(t, ok)

	_, ok = r.Resolve(context.Background(), "nonexistentcommand")
	assert.False(t, ok)
}

func TestModeAccess(t *testing.T) {
	memFs := newMemFs(t)

	require.NoError(t, ModeAccess(memFs, "/bin/ls"))
	require.ErrorIs(t, ModeAccess(memFs, "/usr/bin/readme"), fs.ErrPermission)
	require.ErrorIs(t, ModeAccess(memFs, "/opt/tools/ls"), fs.ErrPermission)
	require.ErrorIs(t, ModeAccess(memFs, "/missing"), fs.ErrNotExist)
}
