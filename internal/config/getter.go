// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
)

// ErrGetConfigFile is returned when a remote config file cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

const (
	goGetterPathSeparator   = "//"
	goGetterRefSeparator    = "?"
	goGetterForcedSeparator = "::"
	schemeSeparator         = "://"
	minimumGetterParts      = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// IsRemote reports whether src is a go-getter source rather than a local path.
func IsRemote(src string) bool {
	return strings.Contains(src, goGetterForcedSeparator) || strings.Contains(src, schemeSeparator)
}

// getURL retrieves the content from the specified URL using Hashicorp's go-getter.
// It returns the content and the name of the fetched file.
// It removes the temporary directory after reading its content.
func getURL(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", ErrGetConfigFile
	}

	tmpDir, err := os.MkdirTemp("", "utcsh-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src: src,
		Pwd: wd,
	}

	var dst string

	// A "//" subdirectory means a whole repository or archive; fetch the
	// directory and read the file from it.
	if newURL, fileName := splitFileNameFromGetterURL(src); newURL != "" && fileName != "" {
		req.Src = newURL
		req.Dst = filepath.Join(tmpDir, "g")
		req.GetMode = getter.ModeDir
		dst = filepath.Join(req.Dst, fileName)
	} else {
		fileName := fileNameFromURL(src)
		if fileName == "" {
			return nil, "", fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, src)
		}

		req.Dst = filepath.Join(tmpDir, fileName)
		req.GetMode = getter.ModeFile
		dst = req.Dst
	}

	if _, err := cli.Get(ctx, req); err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	bytes, err := os.ReadFile(dst)
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return bytes, filepath.Base(dst), nil
}

// fileNameFromURL returns the last element of the URL path, ignoring any
// forced getter prefix and query.
func fileNameFromURL(src string) string {
	if _, after, ok := strings.Cut(src, goGetterForcedSeparator); ok {
		src = after
	}

	u, err := url.Parse(src)
	if err != nil {
		return ""
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}

	return base
}

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// It returns the new getter URL without the file name and the file name itself.
// It will append any ref query parameter to the new URL if it exists.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref, fileName string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	if strings.Contains(parts[len(parts)-1], goGetterRefSeparator) {
		refSplit := strings.Split(parts[len(parts)-1], goGetterRefSeparator)
		if len(refSplit) > 1 {
			ref = strings.Join(refSplit[1:], "")
		}

		parts[len(parts)-1] = refSplit[0]
	}

	if filepath.Clean(parts[len(parts)-1]) == filepath.Dir(parts[len(parts)-1]) {
		return "", ""
	}

	fileName = filepath.Base(parts[len(parts)-1])
	parts[len(parts)-1] = filepath.Dir(parts[len(parts)-1])

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
