// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/utcsh/internal/color"
)

// WriteResults writes one status line per result to w, followed by an
// indented error line for failed commands.
func WriteResults(w io.Writer, results Results) error {
	sb := strings.Builder{}

	for _, r := range results {
		writeResult(&sb, r)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	return nil
}

func writeResult(sb *strings.Builder, r *Result) {
	var (
		statusStr string
		labelCol  color.Code
	)

	switch r.Status {
	case ResultStatusIgnored:
		statusStr = color.Colorize("~", color.FgYellow)
		labelCol = color.FgYellow
	case ResultStatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelCol = color.FgRed
	default:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelCol = color.FgGreen
	}

	label := r.Label
	if label == "" {
		label = "[blank]"
	}

	fmt.Fprintf(sb, "%s %s", statusStr, color.Colorize(label, color.Bold, labelCol))

	if r.Pid != 0 {
		fmt.Fprintf(sb, " (pid: %d)", r.Pid)
	}

	if r.ExitCode != 0 {
		fmt.Fprintf(sb, " (exit code: %d)", r.ExitCode)
	}

	sb.WriteString("\n")

	if r.Error != nil {
		fmt.Fprintf(sb, "  %s %s\n", color.Colorize("➜ Error:", color.FgRed), r.Error.Error())
	}
}
