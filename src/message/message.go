// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package message contains functions to print messages to the screen
package message

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/pterm/pterm"
)

const (
	// termWidth sets the width of full width elements like headers
	termWidth = 100
)

// Fatalf prints a fatal error message and exits with a 1 with a given format.
func Fatalf(err any, format string, a ...any) {
	message := paragraph(format, a...)
	debugPrinter(2, err)
	errorPrinter(2).Println(message)
	debugPrinter(2, string(debug.Stack()))
	os.Exit(1)
}

func debugf(format string, a ...any) {
	message := fmt.Sprintf(format, a...)
	debugPrinter(2, message)
}

func warnf(format string, a ...any) {
	pterm.Println()
	message := paragraph(format, a...)
	pterm.Warning.Println(message)
}

func successf(format string, a ...any) {
	pterm.Println()
	message := paragraph(format, a...)
	pterm.Success.Println(message)
}

func errorf(format string, a ...any) {
	pterm.Println()
	message := paragraph(format, a...)
	pterm.Error.Println(message)
}

func infof(format string, a ...any) {
	pterm.Println()
	message := paragraph(format, a...)
	pterm.Info.Println(message)
}

// paragraph formats text into a paragraph matching the TermWidth
func paragraph(format string, a ...any) string {
	return pterm.DefaultParagraph.WithMaxWidth(termWidth).Sprintf(format, a...)
}

func debugPrinter(offset int, a ...any) {
	showLines := logLevel == DebugLevel || logLevel == TraceLevel
	printer := pterm.Debug.WithShowLineNumber(showLines).WithLineNumberOffset(offset)
	now := time.Now().Format(time.RFC3339)
	// prepend to a
	a = append([]any{now, " - "}, a...)

	printer.Println(a...)

	// Always write to the log file
	if logFile != nil {
		pterm.Debug.
			WithShowLineNumber(true).
			WithLineNumberOffset(offset).
			WithDebugger(false).
			WithWriter(logFile).
			Println(a...)
	}
}

func errorPrinter(offset int) *pterm.PrefixPrinter {
	return pterm.Error.WithShowLineNumber(logLevel > 2).WithLineNumberOffset(offset)
}
