// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"io"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/utcsh/internal/cmdline"
)

// ResultStatus is the outcome of one command.
type ResultStatus int

const (
	// ResultStatusSuccess means the command ran. A non-zero exit code is still a success.
	ResultStatusSuccess ResultStatus = iota
	// ResultStatusError means the command failed and was reported.
	ResultStatusError
	// ResultStatusIgnored means there was nothing to run.
	ResultStatusIgnored
)

func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "Success"
	case ResultStatusError:
		return "Error"
	case ResultStatusIgnored:
		return "Ignored"
	}

	return fmt.Sprintf("ResultStatus(%d)", int(s))
}

// Result represents the outcome of running one command of a batch.
type Result struct {
	Label    string       // Source text of the command
	Kind     cmdline.Kind // Kind of the command
	Pid      int          // Process id, zero unless a child was started
	ExitCode int          // Exit code of the child, zero otherwise
	Error    error        // Error, if any
	Status   ResultStatus // Outcome
}

// Results holds one Result per command, in batch order.
type Results []*Result

// HasError reports whether any command failed.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Status == ResultStatusError {
			return true
		}
	}

	return false
}

// Err returns the failures of all commands as one error, or nil.
func (r Results) Err() error {
	var merr *multierror.Error

	for v := range slices.Values(r) {
		if v.Error == nil {
			continue
		}

		merr = multierror.Append(merr, fmt.Errorf("%s: %w", v.Label, v.Error))
	}

	return merr.ErrorOrNil()
}

// Write outputs the results as a status tree to the specified writer.
func (r Results) Write(w io.Writer) error {
	return WriteResults(w, r)
}
