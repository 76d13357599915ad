// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cairn/internal/errors"
	"cairn/internal/parser"
	"cairn/internal/semantic"
)

const (
	accountContractF = "account-contract"

	accountContractUsage = "Hold the contract to the reserved account entry point rules"
)

// CheckCmd returns the command that runs the declaration checks over a
// single contract source.
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.cairo>",
		Short: "Validate the declarations of a contract source",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Bool(accountContractF, false, accountContractUsage)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	isAccount, err := cmd.Flags().GetBool(accountContractF)
	if err != nil {
		return err
	}

	startTime := time.Now()
	path := args[0]

	_, clean, err := analyzeFile(path, isAccount, os.Stdout)
	if err != nil {
		return err
	}

	formattedDuration := formatDuration(time.Since(startTime))

	if !clean {
		color.Red("Validation failed after %s", formattedDuration)
		os.Exit(1)
	}

	color.Green("Successfully validated %s in %s", path, formattedDuration)
	return nil
}

// analyzeFile parses and checks one contract source, writing every
// diagnostic to w. clean reports whether the file passed; the analysis
// is nil when the parse already failed.
func analyzeFile(path string, isAccount bool, w io.Writer) (analysis *semantic.Analysis, clean bool, err error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file: %w", err)
	}

	result := parser.Parse(path, string(source))

	// Report scanner errors
	for _, scanErr := range result.ScanErrors {
		fmt.Fprint(w, FormatScanError(path, scanErr, string(source)))
	}

	// Report parser errors
	for _, parseErr := range result.ParseErrors {
		fmt.Fprint(w, FormatParseError(path, parseErr, string(source)))
	}

	// Declaration checks only run on a clean parse
	if !result.Clean() {
		return nil, false, nil
	}

	analyzer := semantic.NewAnalyzer(semantic.Options{IsAccountContract: isAccount})
	analysis = analyzer.Analyze(result.File)

	errorReporter := errors.NewErrorReporter(path, string(source))
	semanticErrors := analyzer.GetErrors()
	for _, semErr := range semanticErrors {
		fmt.Fprint(w, errorReporter.FormatError(semErr))
	}

	return analysis, len(semanticErrors) == 0, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

func FormatScanError(path string, err parser.ScanError, source string) string {
	return formatError(path, err.Message, err.Position, err.Length, source)
}

func FormatParseError(path string, err parser.ParseError, source string) string {
	return formatError(path, err.Message, err.Position, 1, source)
}

func formatError(path, message string, pos parser.Position, length int, source string) string {
	lines := strings.Split(source, "\n")

	var lineContent string
	if pos.Line-1 < len(lines) && pos.Line-1 >= 0 {
		lineContent = lines[pos.Line-1]
	} else {
		lineContent = ""
	}

	// Prepare the underline
	marker := strings.Repeat(" ", max(0, pos.Column-1)) +
		strings.Repeat("^", max(1, length))

	// Color setup
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	// Compute width for line number column
	lineNumberWidth := len(fmt.Sprintf("%d", pos.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3 // minimum width for visual alignment
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	return fmt.Sprintf(
		"%s: %s\n%s┌─ %s:%d:%d\n%s│\n%3d│%s\n%s│%s\n\n",
		red("error"),
		message,
		indent,
		path, pos.Line, pos.Column,
		indent,
		pos.Line, lineContent,
		indent,
		bold(marker),
	)
}
