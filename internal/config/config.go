// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional start-up file of the shell.
//
// The file is YAML (.yaml, .yml) or HCL (.hcl) and may be a local path or any
// source understood by go-getter. Every field is optional:
//
//	path:         [/bin, /usr/bin]   # initial search path
//	prompt:       "utcsh> "          # interactive prompt
//	history_file: ~/.utcsh_history   # interactive line history
//	trace:        false              # print a result tree after every line
//
// HCL files can refer to the environment as env.NAME.
package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/utcsh/internal/ctxlog"
	"github.com/matt-FFFFFF/utcsh/internal/searchpath"
	"github.com/spf13/afero"
)

// DefaultPrompt is printed before every interactive line.
const DefaultPrompt = "utcsh> "

var (
	// ErrReadConfigFile is returned when a local config file cannot be read.
	ErrReadConfigFile = errors.New("failed to read config file")
	// ErrUnknownFormat is returned for a file that is neither YAML nor HCL.
	ErrUnknownFormat = errors.New("unknown config file format, want .yaml, .yml or .hcl")
	// ErrDecodeConfig is returned when the file content cannot be decoded.
	ErrDecodeConfig = errors.New("failed to decode config file")
	// ErrInvalidConfig is returned when the decoded values are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrTooManyPathEntries is returned when path holds more than searchpath.MaxEntries entries.
	ErrTooManyPathEntries = fmt.Errorf("path holds more than %d entries", searchpath.MaxEntries)
	// ErrPathEntryTooLong is returned for a path entry longer than searchpath.MaxEntryLen.
	ErrPathEntryTooLong = fmt.Errorf("path entry longer than %d bytes", searchpath.MaxEntryLen)
)

// Config is the start-up configuration of the shell.
type Config struct {
	Path        []string // Initial search path.
	Prompt      string   // Interactive prompt.
	HistoryFile string   // Interactive history file, none if empty.
	Trace       bool     // Print the results of every line to stderr.
}

// file is the on-disk shape. Nil fields were not set.
type file struct {
	Path        []string `yaml:"path"         hcl:"path,optional"`
	Prompt      *string  `yaml:"prompt"       hcl:"prompt,optional"`
	HistoryFile *string  `yaml:"history_file" hcl:"history_file,optional"`
	Trace       *bool    `yaml:"trace"        hcl:"trace,optional"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		Path:   []string{searchpath.DefaultDir},
		Prompt: DefaultPrompt,
	}
}

// Load reads the config file at src and merges it over the defaults.
// Local paths are read through FsFactory, anything else is fetched with go-getter.
func Load(ctx context.Context, src string) (*Config, error) {
	var (
		data []byte
		name = src
		err  error
	)

	if IsRemote(src) {
		ctxlog.Debug(ctx, "fetching config file", "src", src)

		data, name, err = getURL(ctx, src)
		if err != nil {
			return nil, err
		}
	} else {
		ctxlog.Debug(ctx, "reading config file", "path", src)

		data, err = afero.ReadFile(FsFactory(), src)
		if err != nil {
			return nil, errors.Join(ErrReadConfigFile, err)
		}
	}

	return Parse(ctx, name, data)
}

// Parse decodes data, choosing the format from the extension of filename,
// and merges it over the defaults.
func Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	f := &file{}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, f, yaml.Strict()); err != nil {
			return nil, errors.Join(ErrDecodeConfig, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, data, evalContext(), f); err != nil {
			return nil, errors.Join(ErrDecodeConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}

	cfg := Default()
	cfg.merge(f)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "loaded config",
		"path", cfg.Path,
		"prompt", cfg.Prompt,
		"historyFile", cfg.HistoryFile,
		"trace", cfg.Trace)

	return cfg, nil
}

func (c *Config) merge(f *file) {
	if f.Path != nil {
		c.Path = f.Path
	}

	if f.Prompt != nil {
		c.Prompt = *f.Prompt
	}

	if f.HistoryFile != nil {
		c.HistoryFile = *f.HistoryFile
	}

	if f.Trace != nil {
		c.Trace = *f.Trace
	}
}

// Validate reports every out of range value.
func (c *Config) Validate() error {
	var merr *multierror.Error

	if len(c.Path) > searchpath.MaxEntries {
		merr = multierror.Append(merr, fmt.Errorf("%w: got %d", ErrTooManyPathEntries, len(c.Path)))
	}

	for i, p := range c.Path {
		if len(p) > searchpath.MaxEntryLen {
			merr = multierror.Append(merr, fmt.Errorf("%w: entry %d", ErrPathEntryTooLong, i))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// SearchPath returns a search path list holding the configured directories.
func (c *Config) SearchPath() (*searchpath.List, error) {
	l, err := searchpath.New(c.Path...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return l, nil
}
