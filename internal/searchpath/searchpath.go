// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package searchpath holds the ordered list of directories that the shell
// consults when resolving a bare program name.
//
// The list is bounded: it holds at most MaxEntries directories and each
// directory name is at most MaxEntryLen bytes long. It is only ever replaced
// wholesale, never edited in place.
package searchpath

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// MaxEntries is the maximum number of directories in the list.
	MaxEntries = 100
	// MaxEntryLen is the maximum length in bytes of a single directory name.
	MaxEntryLen = 2047
	// DefaultDir is the single directory installed at start-up.
	DefaultDir = "/bin"
)

var (
	// ErrTooManyEntries is returned when more than MaxEntries directories are supplied.
	// The first MaxEntries are still installed.
	ErrTooManyEntries = fmt.Errorf("search path holds at most %d entries", MaxEntries)
	// ErrEntryTooLong is returned when a directory name exceeds MaxEntryLen.
	// The list is left unchanged.
	ErrEntryTooLong = fmt.Errorf("search path entry exceeds %d bytes", MaxEntryLen)
	// ErrNilList is returned when Replace is called on a nil list.
	ErrNilList = errors.New("search path list is nil")
)

// List is the ordered, bounded list of search directories.
// A List is not safe for concurrent use; the shell only touches it from its
// control goroutine.
type List struct {
	entries []string
}

// New returns a list holding the given entries.
// Invalid input is handled the same way as Replace handles it.
func New(entries ...string) (*List, error) {
	l := &List{}
	err := l.Replace(entries)

	return l, err
}

// Default returns a list holding only DefaultDir.
func Default() *List {
	return &List{entries: []string{DefaultDir}}
}

// Replace installs entries as the new list.
//
// If any entry is longer than MaxEntryLen, nothing changes and ErrEntryTooLong
// is returned. If there are more than MaxEntries entries, the first MaxEntries
// are installed and ErrTooManyEntries is returned. An empty slice is valid and
// empties the list.
func (l *List) Replace(entries []string) error {
	if l == nil {
		return ErrNilList
	}

	var err error

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
		err = ErrTooManyEntries
	}

	for i, e := range entries {
		if len(e) > MaxEntryLen {
			return fmt.Errorf("%w: entry %d", ErrEntryTooLong, i)
		}
	}

	l.entries = slices.Clone(entries)

	return err
}

// Entries returns a copy of the directories in search order.
func (l *List) Entries() []string {
	if l == nil {
		return nil
	}

	return slices.Clone(l.entries)
}

// Len returns the number of directories in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.entries)
}

// String renders the list as a colon separated string.
func (l *List) String() string {
	if l == nil {
		return ""
	}

	return strings.Join(l.entries, ":")
}
